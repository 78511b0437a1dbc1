// internal/core/domain/backup.go
package domain

import "time"

// BackupVersion is the format version written into JSON backups.
const BackupVersion = "1.0"

// Backup is the full JSON export of the store.
type Backup struct {
	Batches    []Batch   `json:"lotes"`
	Engines    []Engine  `json:"motores"`
	ExportDate time.Time `json:"exportDate"`
	Version    string    `json:"version"`
}

// NewBackup stamps a backup with the current time and version.
func NewBackup(batches []Batch, engines []Engine) Backup {
	if batches == nil {
		batches = []Batch{}
	}
	if engines == nil {
		engines = []Engine{}
	}
	return Backup{
		Batches:    batches,
		Engines:    engines,
		ExportDate: time.Now().UTC(),
		Version:    BackupVersion,
	}
}
