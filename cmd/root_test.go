package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRootCmd_Exists verifies the root command is set up.
func TestRootCmd_Exists(t *testing.T) {
	require.NotNil(t, rootCmd, "Root command should exist")
	assert.Equal(t, "regiodb", rootCmd.Use,
		"Command name should be regiodb")
}

// TestRootCmd_HelpText verifies help text content.
func TestRootCmd_HelpText(t *testing.T) {
	assert.Contains(t, rootCmd.Long, "regiodb",
		"Help should mention regiodb")
	assert.Contains(t, rootCmd.Long, "warehouse",
		"Help should mention the warehouse")
	assert.Contains(t, rootCmd.Long, "Regionaldatenbank",
		"Help should mention the national service")
	assert.Contains(t, rootCmd.Long, "Landesdatenbank",
		"Help should mention the state service")
}

// TestRootCmd_Subcommands verifies every phase is registered.
func TestRootCmd_Subcommands(t *testing.T) {
	want := []string{
		"create", "migrate", "seed", "tables",
		"pipeline", "verify", "remediate",
	}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range want {
		assert.True(t, registered[name],
			"Subcommand %s should be registered", name)
	}
}
