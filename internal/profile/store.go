package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
)

// savedAtLayouts covers timestamps written by this build (RFC 3339) and
// zone-less ISO-8601 stamps found in profiles saved by older builds.
var savedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// Store persists profiles as one JSON file each inside a directory.
type Store struct {
	dir string
	log *zap.Logger
}

// NewStore opens (and creates, if needed) the profile directory.
func NewStore(dir string, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create profile directory: %w", err)
	}
	return &Store{dir: dir, log: log}, nil
}

// Dir returns the directory backing this store.
func (s *Store) Dir() string { return s.dir }

// Save writes p to path, stamping saved_at and overwriting any existing
// file. This is the quick-save path for profiles that already have a
// backing file.
func (s *Store) Save(path string, p *Profile) error {
	p.SavedAt = time.Now().Format(time.RFC3339)
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	s.log.Info("profile saved", zap.String("name", p.Name), zap.String("path", path))
	return nil
}

// SaveNew derives a fresh filename from the profile name and writes to
// it. Names sanitize to letters, digits, spaces, hyphens and
// underscores, with spaces collapsed to underscores; a timestamped
// fallback covers names that sanitize to nothing. Collisions get a
// numeric suffix rather than overwriting.
func (s *Store) SaveNew(p *Profile) (string, error) {
	safe := SanitizeName(p.Name)
	if safe == "" {
		safe = "config_" + time.Now().Format("20060102_150405")
	}

	path := filepath.Join(s.dir, safe+".json")
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		path = filepath.Join(s.dir, fmt.Sprintf("%s_%d.json", safe, counter))
	}

	if err := s.Save(path, p); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads and parses one profile file. Absent fields fall back to
// the documented defaults via the model's UnmarshalJSON hooks.
func (s *Store) Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", filepath.Base(path), err)
	}
	return &p, nil
}

// Delete removes the backing file for a saved profile.
func (s *Store) Delete(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	s.log.Info("profile deleted", zap.String("path", path))
	return nil
}

// Summary is one row of the saved-profile listing.
type Summary struct {
	Path        string
	Name        string
	Description string
	Points      int
	SavedAt     string
}

// List enumerates the JSON files in the store directory in filename
// order. Files that fail to parse are skipped with a warning so one
// corrupt profile does not hide the rest.
func (s *Store) List() ([]Summary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	var out []Summary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		p, err := s.Load(path)
		if err != nil {
			s.log.Warn("skipping unreadable profile", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		name := p.Name
		if name == "" {
			name = entry.Name()
		}
		out = append(out, Summary{
			Path:        path,
			Name:        name,
			Description: p.Description,
			Points:      len(p.ClickPoints),
			SavedAt:     formatSavedAt(p.SavedAt),
		})
	}
	return out, nil
}

// SanitizeName strips a free-text profile name down to characters safe
// for a filename on every supported OS.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")
}

func formatSavedAt(raw string) string {
	if raw == "" {
		return "Unknown"
	}
	for _, layout := range savedAtLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02 15:04")
		}
	}
	return raw
}
