// Package secrets loads credential material from files referenced by the
// configuration. Secrets never travel through flags or config values
// directly; only file paths do.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where a secret lives.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// File points to a file containing the secret value.
	File string
}

// Load resolves the secret from its source, trimming surrounding
// whitespace. An unset path or an empty file is an error; the caller decides
// whether that is fatal or a degraded mode.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file == "" {
		return "", fmt.Errorf("%s is not configured", name)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
	}

	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", fmt.Errorf("%s file %q is empty", name, file)
	}

	return secret, nil
}
