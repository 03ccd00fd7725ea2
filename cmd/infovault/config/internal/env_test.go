package internal_test

import (
	"testing"

	"github.com/nspcc-dev/infovault/cmd/infovault/config/internal"
	"github.com/stretchr/testify/require"
)

func TestEnv(t *testing.T) {
	require.Equal(t,
		"INFOVAULT_VAULT_BASE_LOCATION",
		internal.Env("vault", "base_location"),
	)
}
