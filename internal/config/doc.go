// Package config loads and merges the application configuration from
// environment variables, command-line flags, and an optional JSON file.
//
// Sources are merged in priority order (first non-zero value wins):
// environment, flags, JSON file. After merging, built-in defaults are
// applied and the result is validated.
package config
