package gallery

import (
	"strings"
	"time"

	"github.com/AndreJorgeSenaiBA/Repox/internal/catalog"
	"github.com/AndreJorgeSenaiBA/Repox/internal/tree"
)

// UnknownProfile is the profile of files at the repository root
const UnknownProfile = "unknown"

// DateLayout is the format of FileRecord.ObservedDate
const DateLayout = "2006-01-02"

// FileRecord is one gallery item
type FileRecord struct {
	ID           string           `json:"id"`
	Category     catalog.Category `json:"category"`
	DownloadURL  string           `json:"downloadUrl"`
	Title        string           `json:"title"`
	Name         string           `json:"name"`
	Path         string           `json:"path"`
	Profile      string           `json:"profile"`
	Extension    string           `json:"extension"`
	ObservedDate string           `json:"observedDate"`
	SizeBytes    int64            `json:"sizeBytes"`
}

// ProfileOf returns the first segment of a repository path, or
// UnknownProfile for a file at the root.
func ProfileOf(path string) string {
	if i := strings.Index(path, "/"); i >= 0 {
		return path[:i]
	}
	return UnknownProfile
}

// Build turns accepted files into records, keeping their order
func Build(files []tree.File, table *catalog.Table, now time.Time) []FileRecord {
	date := now.UTC().Format(DateLayout)

	records := make([]FileRecord, 0, len(files))
	for _, f := range files {
		records = append(records, FileRecord{
			ID:           f.SHA,
			Category:     table.Category(f.Name),
			DownloadURL:  f.DownloadURL,
			Title:        catalog.Title(f.Name),
			Name:         f.Name,
			Path:         f.Path,
			Profile:      ProfileOf(f.Path),
			Extension:    catalog.Extension(f.Name),
			ObservedDate: date,
			SizeBytes:    f.Size,
		})
	}
	return records
}
