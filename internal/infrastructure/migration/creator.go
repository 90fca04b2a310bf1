package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"
)

const migrationUpTemplate = `-- Migration: {{.Name}}
-- Created: {{.Timestamp}}

`

const migrationDownTemplate = `-- Migration: {{.Name}} (Rollback)
-- Created: {{.Timestamp}}

`

// MigrationFile describes a generated up/down pair
type MigrationFile struct {
	Version   uint
	Name      string
	Timestamp string
	UpPath    string
	DownPath  string
}

// CreateMigration writes an empty up/down pair numbered one past the highest
// existing version, e.g. 000002_add_ledger_groups.up.sql
func CreateMigration(migrationsDir, name string) (*MigrationFile, error) {
	slug := sanitizeName(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	existing, err := ListMigrations(migrationsDir)
	if err != nil {
		return nil, err
	}
	var next uint = 1
	if len(existing) > 0 {
		next = existing[len(existing)-1].Version + 1
	}

	base := fmt.Sprintf("%06d_%s", next, slug)
	mf := &MigrationFile{
		Version:   next,
		Name:      slug,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		UpPath:    filepath.Join(migrationsDir, base+".up.sql"),
		DownPath:  filepath.Join(migrationsDir, base+".down.sql"),
	}

	if err := writeFromTemplate(mf.UpPath, migrationUpTemplate, mf); err != nil {
		return nil, fmt.Errorf("failed to create up migration: %w", err)
	}
	if err := writeFromTemplate(mf.DownPath, migrationDownTemplate, mf); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, fmt.Errorf("failed to create down migration: %w", err)
	}
	return mf, nil
}

func writeFromTemplate(path, tmplContent string, data *MigrationFile) error {
	tmpl, err := template.New("migration").Parse(tmplContent)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	return tmpl.Execute(f, data)
}

// sanitizeName lowercases name and joins its words with single underscores
func sanitizeName(name string) string {
	result := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			result = append(result, c)
		case c >= 'A' && c <= 'Z':
			result = append(result, c+'a'-'A')
		case c == ' ' || c == '-' || c == '_':
			if len(result) > 0 && result[len(result)-1] != '_' {
				result = append(result, '_')
			}
		}
	}
	return strings.TrimSuffix(string(result), "_")
}

// Entry is one migration found on disk
type Entry struct {
	Version uint
	Name    string
}

// ListMigrations returns the migrations in dir ordered by version. Files that
// do not start with a numeric version are ignored.
func ListMigrations(dir string) ([]Entry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var entries []Entry
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".up.sql") {
			continue
		}
		base := strings.TrimSuffix(f.Name(), ".up.sql")
		prefix, name, ok := strings.Cut(base, "_")
		if !ok {
			continue
		}
		version, err := strconv.ParseUint(prefix, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Version: uint(version), Name: name})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Version < entries[j].Version })
	return entries, nil
}
