package wiring_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/smartmate/internal/app"
	"go.trai.ch/smartmate/internal/core/domain"
	_ "go.trai.ch/smartmate/internal/wiring"
)

// TestGraftDependencies ensures that the dependency injection graph is valid
// at compile/test time.
func TestGraftDependencies(t *testing.T) {
	// graft.AssertDepsValid infers the dependency ID from the package name of
	// the type used in Dep[T]. Several nodes provide interfaces from the shared
	// ports package, so every one of them would be expected under "ports".
	t.Skip("Skipping Graft validation due to static analysis limitation with shared ports package")
	graft.AssertDepsValid(t, "../../internal")
}

func TestGraftResolvesComponents(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, domain.ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("api:\n  base_url: http://127.0.0.1:1\n"), 0o600))

	t.Setenv(domain.EnvConfig, configPath)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))

	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components)
	assert.NotNil(t, components.App)
	assert.NotNil(t, components.Logger)
	components.App.Close()
}
