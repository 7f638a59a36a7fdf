package main

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/vvaraldi/Infraction-Orford/pkg/db"
	"github.com/vvaraldi/Infraction-Orford/pkg/utils"

	infractionDB "github.com/vvaraldi/Infraction-Orford/pkg/db/infraction"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_INFRACTION_DB_USERNAME = "INFRACTION_DB_USERNAME"
	ENV_INFRACTION_DB_PASSWORD = "INFRACTION_DB_PASSWORD"
)

type MigrationConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		InfractionDB db.DBConfigYaml `json:"infraction_db" yaml:"infraction_db"`
	} `json:"db_configs" yaml:"db_configs"`

	TaskConfigs struct {
		CreateIndexes          bool `json:"create_indexes" yaml:"create_indexes"`
		MigrateLegacyAdminData bool `json:"migrate_legacy_admin_data" yaml:"migrate_legacy_admin_data"`
	} `json:"task_configs" yaml:"task_configs"`
}

var conf MigrationConfig

var infractionDBService *infractionDB.InfractionDBService

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
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_INFRACTION_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.InfractionDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_INFRACTION_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.InfractionDB.Password = dbPassword
	}
}

func initDBs() {
	dbConfig := db.DBConfigFromYamlObj(conf.DBConfigs.InfractionDB)
	dbConfig.RunIndexCreation = conf.TaskConfigs.CreateIndexes

	var err error
	infractionDBService, err = infractionDB.NewInfractionDBService(dbConfig)
	if err != nil {
		slog.Error("Error connecting to Infraction DB", slog.String("error", err.Error()))
		panic(err)
	}
}
