// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads registry API keys from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key name and the
// file contents (trimmed) are the value.
//
// Recognized key files: tmview-api-key, euipo-api-key, wipo-api-key, national-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/trademark-engine/pkg/types"
)

// Key file names for each registry.
const (
	TMviewKey   = "tmview-api-key"
	EUIPOKey    = "euipo-api-key"
	WIPOKey     = "wipo-api-key"
	NationalKey = "national-api-key"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged as warnings but do not abort. A nil logger
// discards the warnings.
func Load(dir string, logger *zap.Logger) (map[string]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
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
			logger.Warn("could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// ApplyRegistryKeys fills each registry's API key from secrets. A key
// already set in configuration takes precedence.
func ApplyRegistryKeys(cfg *types.SourcesConfig, secrets map[string]string) {
	for key, reg := range map[string]*types.RegistryConfig{
		TMviewKey:   &cfg.TMview,
		EUIPOKey:    &cfg.EUIPO,
		WIPOKey:     &cfg.WIPO,
		NationalKey: &cfg.National,
	} {
		if reg.APIKey == "" {
			reg.APIKey = secrets[key]
		}
	}
}
