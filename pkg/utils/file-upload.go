package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// ValidateImageUpload checks the actual content of an uploaded file against
// the allowed image MIME types by sniffing its first 512 bytes. The declared
// Content-Type header of the part is ignored on purpose. Returns the detected
// content type.
func ValidateImageUpload(fileHeader *multipart.FileHeader, allowedTypes []string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	if n == 0 {
		return "", errors.New("file is empty")
	}

	contentType := http.DetectContentType(buffer[:n])
	for _, t := range allowedTypes {
		if t == contentType {
			return contentType, nil
		}
	}
	return "", fmt.Errorf("invalid file type: %s", contentType)
}

// FileExtensionForContentType returns the file extension (with leading dot)
// for the image content types this service accepts.
func FileExtensionForContentType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
