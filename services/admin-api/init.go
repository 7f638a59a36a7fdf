package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	"github.com/vvaraldi/Infraction-Orford/pkg/db"
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
)

type AdminApiConfig struct {
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
}

var conf AdminApiConfig

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
