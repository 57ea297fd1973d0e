// Package config loads the service configuration from defaults, an optional
// config.yaml and TASKS_-prefixed environment variables, then validates it.
package config
