package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DotEnvPath is the dotenv file consulted for overrides, relative to the
// working directory.
const DotEnvPath = ".env"

// LoadDotEnv reads the dotenv file at p and returns key/value pairs.
//
// Parsing rules:
// - Lines starting with '#' are ignored.
// - Empty lines are ignored.
// - Lines must be of form KEY=VALUE, optionally prefixed with "export ".
// - Whitespace around KEY and VALUE is trimmed.
// - One pair of matching surrounding quotes is removed from VALUE, so paths
//   containing spaces can be quoted.
func LoadDotEnv(p string) (map[string]string, error) {
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("cannot open dotenv file %s: %w", p, err)
	}
	defer f.Close()

	out := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		k, v, ok := strings.Cut(line, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			continue
		}
		out[k] = unquote(strings.TrimSpace(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read dotenv file %s: %w", p, err)
	}
	return out, nil
}

// GetConfigValue returns the effective value for key, using process environment variables
// first and falling back to the .env file.
func GetConfigValue(key string) (string, error) {
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	dotenv, err := LoadDotEnv(DotEnvPath)
	if err != nil {
		return "", err
	}
	return dotenv[key], nil
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}
