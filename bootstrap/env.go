package bootstrap

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Environment variables read by the loader.
const (
	// EnvConfigPath overrides the definitions file located by LoadDir.
	EnvConfigPath = "HANGAR_CONFIG"

	// EnvScope selects the ambient scope once loading is done. It wins over
	// the file's own "scope".
	EnvScope = "HANGAR_SCOPE"
)

// loadEnvironment applies the .env files to the process environment and
// returns a snapshot of it. Missing files are skipped; values already set
// in the process are not overridden.
func loadEnvironment(files []string, logger *zap.Logger) (map[string]string, error) {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug("env file not found", zap.String("file", file))
				continue
			}
			return nil, err
		}
		logger.Debug("env file loaded", zap.String("file", file))
	}

	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if ok {
			vars[key] = value
		}
	}
	return vars, nil
}
