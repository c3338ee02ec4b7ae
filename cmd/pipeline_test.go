package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetPipelineCmd_Exists verifies getPipelineCmd returns
// a valid command.
func TestGetPipelineCmd_Exists(t *testing.T) {
	cmd := getPipelineCmd()
	require.NotNil(t, cmd, "Pipeline command should exist")
	assert.Equal(t, "pipeline", cmd.Use,
		"Command name should be pipeline")
	assert.NotNil(t, cmd.RunE, "RunE should be set")
}

// TestGetPipelineCmd_Flags verifies the year and cache flags.
func TestGetPipelineCmd_Flags(t *testing.T) {
	cmd := getPipelineCmd()

	tableFlag := cmd.Flags().Lookup("table")
	require.NotNil(t, tableFlag, "--table flag should exist")
	assert.Equal(t, "t", tableFlag.Shorthand)

	for _, name := range []string{
		"years", "from", "to", "refresh", "skip-totals",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(name),
			"--%s flag should exist", name)
	}
}

// TestGetPipelineCmd_TableRequired verifies the command refuses
// to run without a table id.
func TestGetPipelineCmd_TableRequired(t *testing.T) {
	cmd := getPipelineCmd()
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	assert.Error(t, err,
		"Pipeline without --table should fail flag validation")
}
