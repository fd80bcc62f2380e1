package gallery

import (
	"log/slog"
	"sort"

	"github.com/AndreJorgeSenaiBA/Repox/internal/catalog"
)

// ProfileStats counts one profile's files
type ProfileStats struct {
	Name       string                   `json:"name"`
	FileCount  int                      `json:"fileCount"`
	Categories map[catalog.Category]int `json:"categories"`
}

// Stats summarizes a record list per profile and per category
type Stats struct {
	Total      int                      `json:"total"`
	Profiles   map[string]*ProfileStats `json:"profiles"`
	Categories map[catalog.Category]int `json:"categories"`
}

// Aggregate computes Stats from records alone
func Aggregate(records []FileRecord) Stats {
	stats := Stats{
		Total:      len(records),
		Profiles:   make(map[string]*ProfileStats),
		Categories: make(map[catalog.Category]int),
	}

	for _, r := range records {
		p, ok := stats.Profiles[r.Profile]
		if !ok {
			p = &ProfileStats{
				Name:       r.Profile,
				Categories: make(map[catalog.Category]int),
			}
			stats.Profiles[r.Profile] = p
		}
		p.FileCount++
		p.Categories[r.Category]++

		stats.Categories[r.Category]++
	}

	return stats
}

// ProfileNames returns the profile names in sorted order
func (s Stats) ProfileNames() []string {
	names := make([]string, 0, len(s.Profiles))
	for name := range s.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CategoryCounts returns the per-category totals keyed by plain strings
func (s Stats) CategoryCounts() map[string]int {
	out := make(map[string]int, len(s.Categories))
	for cat, n := range s.Categories {
		out[string(cat)] = n
	}
	return out
}

// Log writes the summary, one line per profile and one for the category totals
func (s Stats) Log(log *slog.Logger) {
	log.Info("profiles found", "count", len(s.Profiles), "files", s.Total)
	for _, name := range s.ProfileNames() {
		p := s.Profiles[name]
		log.Info("profile", "name", name, "files", p.FileCount, "categories", p.Categories)
	}
	log.Info("file categories", "categories", s.Categories)
}
