// Package config loads server settings from environment variables with
// kelseyhightower/envconfig. Every field has a default, so an empty
// environment yields a working server; cmd/server flags override the port
// and development mode on top.
package config
