package config

import (
	"os"
	"testing"

	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessDefaults(t *testing.T) {
	t.Setenv("INTERNAL_TOKEN", "t")

	var cfg Config
	require.NoError(t, envconfig.Process("", &cfg))
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "supabase", cfg.StoreDriver)
}

func TestProcessStoreDriverSelection(t *testing.T) {
	t.Setenv("INTERNAL_TOKEN", "t")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/wm")

	var cfg Config
	require.NoError(t, envconfig.Process("", &cfg))
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, "postgres://localhost/wm", cfg.DatabaseURL)
}

func TestProcessRequiresToken(t *testing.T) {
	t.Setenv("INTERNAL_TOKEN", "x") // registers restore
	os.Unsetenv("INTERNAL_TOKEN")

	var cfg Config
	assert.Error(t, envconfig.Process("", &cfg))
}
