// Package config loads runtime configuration from multiple sources (YAML files,
// environment variables, CLI flags) with precedence: CLI flags > YAML config >
// Environment variables > Defaults. The resolved build mode and endpoint URLs
// feed the client configuration table; everything else configures the server.
package config
