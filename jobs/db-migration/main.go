package main

import (
	"log/slog"
	"time"
)

func main() {
	migrationTasks()
}

func migrationTasks() {
	// Move legacy admin-overlay field spellings to the canonical schema
	if conf.TaskConfigs.MigrateLegacyAdminData {
		start := time.Now()
		slog.Info("Migrating legacy admin fields")
		if err := infractionDBService.MigrateLegacyAdminFields(); err != nil {
			slog.Error("Error migrating legacy admin fields", slog.String("error", err.Error()))
			return
		}
		slog.Info("Legacy admin fields migrated", slog.String("duration", time.Since(start).String()))
	}
}
