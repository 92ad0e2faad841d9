// Package config loads and validates application settings from defaults,
// an optional config file, an optional .env file and LEXIQUIZ_* environment
// variables.
package config
