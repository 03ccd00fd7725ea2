package common

import (
	"fmt"
	"os"

	"github.com/nspcc-dev/infovault/cmd/infovault/config"
	loggerconfig "github.com/nspcc-dev/infovault/cmd/infovault/config/logger"
	vaultconfig "github.com/nspcc-dev/infovault/cmd/infovault/config/vault"
	"github.com/nspcc-dev/infovault/pkg/util/logger"
	"github.com/nspcc-dev/infovault/pkg/vault"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Errf returns formatted error in errFmt format if err is not nil.
func Errf(errFmt string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf(errFmt, err)
}

// ReadConfig reads the config file passed via ConfigFlag. Config without
// file is built from the environment only.
func ReadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString(ConfigFlag)

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("invalid config file: %w", err)
		}
	}

	c, err := config.Read(config.Prm{}, config.WithConfigFile(path))
	if err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return c, nil
}

// NewLogger builds logger from "logger" config section.
func NewLogger(c *config.Config) (*zap.Logger, error) {
	var prm logger.Prm

	if err := prm.SetLevelString(loggerconfig.Level(c)); err != nil {
		return nil, fmt.Errorf("invalid logger level: %w", err)
	}

	if err := prm.SetEncoding(loggerconfig.Encoding(c)); err != nil {
		return nil, fmt.Errorf("invalid logger encoding: %w", err)
	}

	return logger.NewLogger(&prm)
}

// VaultOptions returns vault options from "vault" config section.
func VaultOptions(c *config.Config, log *zap.Logger) []vault.Option {
	return []vault.Option{
		vault.WithLogger(log),
		vault.WithBaseLocation(vaultconfig.BaseLocation(c)),
		vault.WithName(vaultconfig.Name(c)),
		vault.WithExternalPath(vaultconfig.ExternalPath(c)),
		vault.WithPermissions(vaultconfig.Permissions(c)),
		vault.WithNoSync(vaultconfig.NoSync(c)),
		vault.WithCompression(vaultconfig.Compression(c)),
		vault.WithCacheSize(vaultconfig.CacheSize(c)),
	}
}

// OpenVault reads the config and returns initialized vault.
// Vault must be closed by the caller.
func OpenVault(cmd *cobra.Command) (*vault.Vault, error) {
	c, err := ReadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := NewLogger(c)
	if err != nil {
		return nil, err
	}

	v := vault.New(VaultOptions(c, log)...)

	if err := v.Init(); err != nil {
		return nil, fmt.Errorf("could not init vault: %w", err)
	}

	return v, nil
}
