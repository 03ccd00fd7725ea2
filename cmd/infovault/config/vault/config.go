package vaultconfig

import (
	"io/fs"

	"github.com/mitchellh/go-homedir"
	"github.com/nspcc-dev/infovault/cmd/infovault/config"
)

const (
	subsection = "vault"

	// PermissionsDefault is a default permission mode of the vault
	// directories and records.
	PermissionsDefault fs.FileMode = 0o640
)

// BaseLocation returns the value of "base_location" config parameter
// from "vault" section. Leading "~" is expanded to the user's home
// directory.
//
// Returns empty string if the value is missing or invalid.
func BaseLocation(c *config.Config) string {
	return expandPath(config.StringSafe(c.Sub(subsection), "base_location"))
}

// Name returns the value of "name" config parameter from "vault" section.
//
// Returns empty string if the value is missing or invalid.
func Name(c *config.Config) string {
	return config.StringSafe(c.Sub(subsection), "name")
}

// ExternalPath returns the value of "external_path" config parameter
// from "vault" section. Leading "~" is expanded to the user's home
// directory.
//
// Returns empty string if the value is missing or invalid.
func ExternalPath(c *config.Config) string {
	return expandPath(config.StringSafe(c.Sub(subsection), "external_path"))
}

// Permissions returns the value of "permissions" config parameter
// from "vault" section.
//
// Returns PermissionsDefault if the value is missing or invalid.
func Permissions(c *config.Config) fs.FileMode {
	if v := config.FileMode(c.Sub(subsection), "permissions"); v != 0 {
		return v
	}

	return PermissionsDefault
}

// NoSync returns the value of "no_sync" config parameter
// from "vault" section.
//
// Returns false if the value is missing or invalid.
func NoSync(c *config.Config) bool {
	return config.BoolSafe(c.Sub(subsection), "no_sync")
}

// Compression returns the value of "compression" config parameter
// from "vault" section.
//
// Returns false if the value is missing or invalid.
func Compression(c *config.Config) bool {
	return config.BoolSafe(c.Sub(subsection), "compression")
}

// CacheSize returns the value of "cache_size" config parameter
// from "vault" section.
//
// Returns 0 if the value is missing or invalid.
func CacheSize(c *config.Config) int {
	return int(config.UintSafe(c.Sub(subsection), "cache_size"))
}

func expandPath(p string) string {
	if p == "" {
		return p
	}

	res, err := homedir.Expand(p)
	if err != nil {
		return p
	}

	return res
}
