package common

import (
	"bytes"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagValidator(t *testing.T) {
	v := NewFlagValidator()
	assert.NoError(t, v.GetError())

	v.ValidateInt("crowd", 20, 10, 100).ValidateChoice("problem", "nqueens", []string{"nqueens", "phrase"})
	assert.False(t, v.HasErrors())

	v.ValidateInt("crowd", 5, 10, 100)
	require.True(t, v.HasErrors())
	assert.EqualError(t, v.GetError(), "validation error: crowd must be between 10 and 100, got: 5")

	v.ValidateChoice("problem", "tsp", []string{"nqueens", "phrase"}).AddError("custom")
	err := v.GetError()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation errors:")
	assert.Contains(t, err.Error(), "problem must be one of [nqueens, phrase], got: tsp")
	assert.Contains(t, err.Error(), "  - custom")
}

func TestCommonFlagsAndVisited(t *testing.T) {
	fs := flag.NewFlagSet("genetic-trace", flag.ContinueOnError)
	cf := RegisterCommonFlags(fs)
	fs.Int("crowd", 100, "")

	require.NoError(t, fs.Parse([]string{"-config", "run.yaml", "-crowd", "40"}))
	assert.Equal(t, "run.yaml", *cf.ConfigFile)
	assert.Equal(t, ".env", *cf.EnvFile)
	assert.False(t, *cf.Quiet)
	assert.Equal(t, map[string]bool{"config": true, "crowd": true}, VisitedFlags(fs))
}

func TestUsageAndVersion(t *testing.T) {
	fs := flag.NewFlagSet("genetic-trace", flag.ContinueOnError)
	RegisterCommonFlags(fs)

	var buf bytes.Buffer
	NewUsageFormatter("Genetic Trace", "evolve solutions").
		AddExample("genetic-trace -problem nqueens -queens 8", "Solve 8 queens").
		PrintUsage(&buf, fs)

	out := buf.String()
	assert.Contains(t, out, "Genetic Trace - evolve solutions")
	assert.Contains(t, out, "# Solve 8 queens")
	assert.Contains(t, out, "-config")

	buf.Reset()
	PrintVersion(&buf, "genetic-trace")
	assert.Contains(t, buf.String(), "genetic-trace v"+ProjectVersion)
	assert.Contains(t, buf.String(), "Development build")
	assert.Contains(t, GetFullVersion(), ProjectVersion)
	assert.True(t, IsDevBuild())
}
