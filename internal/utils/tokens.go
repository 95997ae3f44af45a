package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

const refreshTokenKey = "REFRESH_TOKEN"

// EnvTokenStore persists the refresh token back into the .env file the
// daemon was configured from.
type EnvTokenStore struct {
	Path string
}

func (s EnvTokenStore) SaveRefreshToken(token string) error {
	if _, err := os.Stat(s.Path); err != nil {
		return fmt.Errorf("env file %s: %w", s.Path, err)
	}
	return WriteEnvValues(s.Path, map[string]string{refreshTokenKey: token})
}

// WriteEnvValues sets values in the env file at path, creating it when it
// does not exist yet. Only the lines of the given keys are rewritten;
// comments, ordering and other entries stay as the operator left them.
// Keys not yet in the file are appended.
func WriteEnvValues(path string, values map[string]string) error {
	mode := fs.FileMode(0644)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if fi, serr := os.Stat(path); serr == nil {
			mode = fi.Mode().Perm()
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var lines []string
	if len(data) > 0 {
		lines = strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	}

	written := make(map[string]bool, len(values))
	for i, line := range lines {
		key := envLineKey(line)
		v, ok := values[key]
		if !ok {
			continue
		}
		rendered, err := renderEnvLine(key, v)
		if err != nil {
			return err
		}
		if strings.HasSuffix(line, "\r") {
			rendered += "\r"
		}
		lines[i] = rendered
		written[key] = true
	}

	missing := make([]string, 0, len(values))
	for k := range values {
		if !written[k] {
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)
	for _, k := range missing {
		rendered, err := renderEnvLine(k, values[k])
		if err != nil {
			return err
		}
		lines = append(lines, rendered)
	}

	out := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(out), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// envLineKey returns the variable a KEY=value (or KEY: value) line sets,
// or "" for blanks and comments.
func envLineKey(line string) string {
	s := strings.TrimSpace(line)
	if s == "" || strings.HasPrefix(s, "#") {
		return ""
	}
	s = strings.TrimPrefix(s, "export ")
	idx := strings.IndexAny(s, "=:")
	if idx <= 0 {
		return ""
	}
	return strings.TrimSpace(s[:idx])
}

func renderEnvLine(key, value string) (string, error) {
	line, err := godotenv.Marshal(map[string]string{key: value})
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", key, err)
	}
	return line, nil
}
