// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys and credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value. Environment variables take precedence so cloud
// deployments can skip the directory entirely.
//
// Supported key files: s2-api-key, core-api-key, google-api-key, google-cse-id, contact-email.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// envNames maps secret file names to the environment variables that
// override them.
var envNames = map[string]string{
	"s2-api-key":     "S2_API_KEY",
	"core-api-key":   "CORE_API_KEY",
	"google-api-key": "GOOGLE_API_KEY",
	"google-cse-id":  "GOOGLE_CSE_ID",
	"contact-email":  "CONTACT_EMAIL",
}

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Get returns the value for a secret key, preferring the matching
// environment variable over the loaded directory contents.
func Get(secrets map[string]string, key string) string {
	if env, ok := envNames[key]; ok {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	return secrets[key]
}
