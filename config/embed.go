package config

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed defaults
var defaultsFS embed.FS

// OverrideDir, when set, is searched before the embedded defaults.
var OverrideDir string

// Load reads a config file such as "tuning.yaml" or "trees/motion.yaml".
func Load(name string) ([]byte, error) {
	clean := cleanPath(name)
	if OverrideDir != "" {
		if data, err := os.ReadFile(diskPath(clean)); err == nil {
			return data, nil
		}
	}
	return defaultsFS.ReadFile("defaults/" + clean)
}

// ModTime reports the override file's modification time, if it exists.
func ModTime(name string) (time.Time, bool) {
	if OverrideDir == "" {
		return time.Time{}, false
	}
	info, err := os.Stat(diskPath(cleanPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// List returns the names of the files under dir, override files first.
func List(dir string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	if OverrideDir != "" {
		entries, err := os.ReadDir(diskPath(cleanPath(dir)))
		if err == nil {
			for _, e := range entries {
				if !e.IsDir() {
					name := cleanPath(dir) + "/" + e.Name()
					seen[name] = true
					out = append(out, name)
				}
			}
		}
	}
	entries, err := fs.ReadDir(defaultsFS, "defaults/"+cleanPath(dir))
	if err != nil {
		if len(out) > 0 {
			return out, nil
		}
		return nil, err
	}
	for _, e := range entries {
		name := cleanPath(dir) + "/" + e.Name()
		if !e.IsDir() && !seen[name] {
			out = append(out, name)
		}
	}
	return out, nil
}

func cleanPath(path string) string {
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "defaults/"); ok {
		s = after
	}
	return strings.TrimSuffix(s, "/")
}

func diskPath(clean string) string {
	return filepath.Join(OverrideDir, filepath.FromSlash(clean))
}
