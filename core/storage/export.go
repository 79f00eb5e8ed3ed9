package storage

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const exportTimeFormat = "20060102T150405"

// ExportName produces a unique artifact file name for an export taken at ts.
// The uuid fragment keeps two exports within the same second from colliding.
func ExportName(ts time.Time) string {
	return fmt.Sprintf("export_%s_%s.json", ts.UTC().Format(exportTimeFormat), uuid.NewString()[:8])
}

// WriteExport serializes v into a fresh timestamped artifact under dir and
// returns the artifact's base name. Export artifacts are never read back.
func WriteExport(dir string, v any) (string, error) {
	name := ExportName(time.Now())
	if err := WriteJSONAtomic(filepath.Join(dir, name), v); err != nil {
		return "", err
	}
	return name, nil
}
