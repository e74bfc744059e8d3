// Package config loads calculator settings from defaults, a YAML or TOML file,
// and CALC_ environment variables, in that order of precedence.
package config
