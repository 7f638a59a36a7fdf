package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	"github.com/vvaraldi/Infraction-Orford/pkg/db"
	"github.com/vvaraldi/Infraction-Orford/pkg/filestore"
	"github.com/vvaraldi/Infraction-Orford/pkg/utils"

	infractionDB "github.com/vvaraldi/Infraction-Orford/pkg/db/infraction"
	patrollerDB "github.com/vvaraldi/Infraction-Orford/pkg/db/patroller"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_INFRACTION_DB_USERNAME = "INFRACTION_DB_USERNAME"
	ENV_INFRACTION_DB_PASSWORD = "INFRACTION_DB_PASSWORD"
	ENV_USER_DB_USERNAME       = "USER_DB_USERNAME"
	ENV_USER_DB_PASSWORD       = "USER_DB_PASSWORD"

	ENV_PATROLLER_JWT_SIGN_KEY = "PATROLLER_JWT_SIGN_KEY"

	ENV_FILESTORE_S3_ACCESS_KEY = "FILESTORE_S3_ACCESS_KEY"
	ENV_FILESTORE_S3_SECRET_KEY = "FILESTORE_S3_SECRET_KEY"
)

const (
	FILESTORE_BACKEND_LOCAL = "local"
	FILESTORE_BACKEND_S3    = "s3"
)

type PatrolApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`
	} `json:"gin_config" yaml:"gin_config"`

	PatrollerJWTConfig struct {
		SignKey   string        `json:"sign_key" yaml:"sign_key"`
		ExpiresIn time.Duration `json:"expires_in" yaml:"expires_in"`
	} `json:"patroller_jwt_config" yaml:"patroller_jwt_config"`

	// DB configs
	DBConfigs struct {
		InfractionDB db.DBConfigYaml `json:"infraction_db" yaml:"infraction_db"`
		UserDB       db.DBConfigYaml `json:"user_db" yaml:"user_db"`
	} `json:"db_configs" yaml:"db_configs"`

	FilestoreConfig struct {
		Backend       string `json:"backend" yaml:"backend"`
		LocalPath     string `json:"local_path" yaml:"local_path"`
		PublicBaseURL string `json:"public_base_url" yaml:"public_base_url"`

		S3 struct {
			Endpoint  string `json:"endpoint" yaml:"endpoint"`
			AccessKey string `json:"access_key" yaml:"access_key"`
			SecretKey string `json:"secret_key" yaml:"secret_key"`
			Bucket    string `json:"bucket" yaml:"bucket"`
			UseSSL    bool   `json:"use_ssl" yaml:"use_ssl"`
		} `json:"s3" yaml:"s3"`
	} `json:"filestore_config" yaml:"filestore_config"`
}

var conf PatrolApiConfig

var (
	infractionDBService *infractionDB.InfractionDBService
	patrollerDBService  *patrollerDB.PatrollerDBService
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(conf.Logging)

	// Override secrets from environment variables
	secretsOverride()

	// Init DBs
	initDBs()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	checkFilestoreConfig()
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_INFRACTION_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.InfractionDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_INFRACTION_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.InfractionDB.Password = dbPassword
	}

	if dbUsername := os.Getenv(ENV_USER_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.UserDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_USER_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.UserDB.Password = dbPassword
	}

	if signKey := os.Getenv(ENV_PATROLLER_JWT_SIGN_KEY); signKey != "" {
		conf.PatrollerJWTConfig.SignKey = signKey
	}

	if accessKey := os.Getenv(ENV_FILESTORE_S3_ACCESS_KEY); accessKey != "" {
		conf.FilestoreConfig.S3.AccessKey = accessKey
	}

	if secretKey := os.Getenv(ENV_FILESTORE_S3_SECRET_KEY); secretKey != "" {
		conf.FilestoreConfig.S3.SecretKey = secretKey
	}
}

func initDBs() {
	var err error
	infractionDBService, err = infractionDB.NewInfractionDBService(db.DBConfigFromYamlObj(conf.DBConfigs.InfractionDB))
	if err != nil {
		slog.Error("Error connecting to Infraction DB", slog.String("error", err.Error()))
		panic(err)
	}

	patrollerDBService, err = patrollerDB.NewPatrollerDBService(db.DBConfigFromYamlObj(conf.DBConfigs.UserDB))
	if err != nil {
		slog.Error("Error connecting to User DB", slog.String("error", err.Error()))
		panic(err)
	}
}

func checkFilestoreConfig() {
	switch conf.FilestoreConfig.Backend {
	case FILESTORE_BACKEND_LOCAL:
		fsPath := conf.FilestoreConfig.LocalPath
		if fsPath == "" {
			slog.Error("Filestore path not set")
			panic("Filestore path not set")
		}
		if _, err := os.Stat(fsPath); os.IsNotExist(err) {
			slog.Error("Filestore path does not exist", slog.String("path", fsPath))
			panic("Filestore path does not exist")
		}
	case FILESTORE_BACKEND_S3:
		if conf.FilestoreConfig.S3.Endpoint == "" || conf.FilestoreConfig.S3.Bucket == "" {
			slog.Error("S3 filestore config incomplete")
			panic("S3 filestore config incomplete")
		}
	default:
		slog.Error("unknown filestore backend", slog.String("backend", conf.FilestoreConfig.Backend))
		panic("unknown filestore backend")
	}
}

func initFilestore() (filestore.Store, error) {
	if conf.FilestoreConfig.Backend == FILESTORE_BACKEND_S3 {
		return filestore.NewS3Store(filestore.S3Config{
			Endpoint:      conf.FilestoreConfig.S3.Endpoint,
			AccessKey:     conf.FilestoreConfig.S3.AccessKey,
			SecretKey:     conf.FilestoreConfig.S3.SecretKey,
			Bucket:        conf.FilestoreConfig.S3.Bucket,
			UseSSL:        conf.FilestoreConfig.S3.UseSSL,
			PublicBaseURL: conf.FilestoreConfig.PublicBaseURL,
		})
	}
	return filestore.NewLocalStore(conf.FilestoreConfig.LocalPath, conf.FilestoreConfig.PublicBaseURL), nil
}
