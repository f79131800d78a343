// Package env loads environment variables from a .env file in the working
// directory, so endpoint URLs with API keys can stay out of shell history
// and version control.
package env

import (
	"os"
	"strings"
)

// Load reads KEY=VALUE pairs from ./.env and sets them with os.Setenv.
// Empty lines and lines starting with # are skipped; surrounding single or
// double quotes on values are stripped. A missing .env file is not an error:
// the tool works fine from the system environment alone.
//
// Example:
//
//	RPC_URL=https://mainnet.infura.io/v3/YOUR_KEY
func Load() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		os.Setenv(strings.TrimSpace(key), strings.Trim(strings.TrimSpace(value), `"'`))
	}
}
