package editor

import (
	"strings"
	"time"

	"github.com/vvaraldi/Infraction-Orford/pkg/refdata"
	infractionTypes "github.com/vvaraldi/Infraction-Orford/pkg/types/infraction"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ValidationError collects every violation of one submission, so the user
// sees the full list at once instead of fixing fields one at a time.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Issues, "; ")
}

// validate enforces the required-field policy: offence date, offence time,
// fault code and sector are mandatory, and the offender must be identified by
// either a name or a scanned code payload. A trail must belong to its sector
// and the off-piste flag needs a trail to qualify.
func (d *Draft) validate(hasScanPayload bool) error {
	issues := []string{}

	if d.OffenceDate == "" {
		issues = append(issues, "offence date is required")
	} else if _, err := time.Parse(dateLayout, d.OffenceDate); err != nil {
		issues = append(issues, "offence date is not a valid date")
	}

	if d.OffenceTime == "" {
		issues = append(issues, "offence time is required")
	} else if _, err := time.Parse(timeLayout, d.OffenceTime); err != nil {
		issues = append(issues, "offence time is not a valid time")
	}

	if d.Fault == "" {
		issues = append(issues, "fault type is required")
	} else if !infractionTypes.IsValidFault(d.Fault) {
		issues = append(issues, "unknown fault type")
	}

	if d.Sector == "" {
		issues = append(issues, "sector is required")
	} else if !refdata.IsValidSector(d.Sector) {
		issues = append(issues, "unknown sector")
	} else if d.Trail != "" && !refdata.IsValidTrail(d.Sector, d.Trail) {
		issues = append(issues, "trail does not belong to the selected sector")
	}

	if d.OffPiste && d.Trail == "" {
		issues = append(issues, "off-piste flag requires a trail")
	}

	if strings.TrimSpace(d.OffenderName) == "" && !hasScanPayload {
		issues = append(issues, "offender name or a scanned code is required")
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// offenceInstant merges the separate date and time fields into one instant in
// the given location. Only call after validate passed.
func (d *Draft) offenceInstant(location *time.Location) time.Time {
	merged, err := time.ParseInLocation(dateLayout+" "+timeLayout, d.OffenceDate+" "+d.OffenceTime, location)
	if err != nil {
		return time.Time{}
	}
	return merged
}
