// Package config manages user-level settings stored at ~/.praxis/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the workspace root and the external catalog path, with PRAXIS_* environment
// variables taking precedence.
package config
