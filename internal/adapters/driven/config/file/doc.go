// Package file persists fff configuration as a TOML file under the user
// config directory.
package file
