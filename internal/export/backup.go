// internal/export/backup.go
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ammerola/retifica-be/internal/core/domain"
)

// WriteBackup writes backup as indented JSON.
func WriteBackup(w io.Writer, backup domain.Backup) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

// ReadBackup decodes a backup written by WriteBackup.
func ReadBackup(r io.Reader) (domain.Backup, error) {
	var backup domain.Backup
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return domain.Backup{}, fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != domain.BackupVersion {
		return domain.Backup{}, fmt.Errorf("unsupported backup version %q", backup.Version)
	}
	return backup, nil
}

// Render writes data in format; kind selects the CSV report.
func Render(w io.Writer, format Format, kind Kind, data Dataset) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, kind, data)
	case FormatXLSX:
		return WriteXLSX(w, data)
	case FormatJSON:
		return WriteBackup(w, domain.NewBackup(data.Batches, data.Engines))
	}
	return fmt.Errorf("unknown export format %q", format)
}
