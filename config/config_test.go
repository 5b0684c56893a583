package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iai-group/breakdowns/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_ENV", "nonexistent")
	require.NoError(t, os.Chdir(t.TempDir()))

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "breakdowns", cfg.Pipeline.Name)
	assert.Equal(t, "info", cfg.Pipeline.LogLvl)
	assert.Equal(t, []string{"system_failure", "dialogue_of_the_deaf", "conversation_flow"},
		cfg.Detection.Components)
	assert.Equal(t, "agent", cfg.Detection.Role)
	assert.Equal(t, "transition", cfg.Detection.Signal)
	assert.Equal(t, 3, cfg.Detection.PatternLen)
	assert.Equal(t, "data/outputs", cfg.Paths.Outputs)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	t.Setenv("CONFIG_ENV", "test")

	cfgDir := filepath.Join(dir, "config", "test")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	content := `pipeline:
  log_level: debug
detection:
  components: [system_failure]
  role: user
  qualified_acts: true
  signal: slots
  pattern_len: 5
paths:
  outputs: /tmp/out
`
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(content), 0o644))

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Pipeline.LogLvl)
	assert.Equal(t, []string{"system_failure"}, cfg.Detection.Components)
	assert.Equal(t, "user", cfg.Detection.Role)
	assert.True(t, cfg.Detection.QualifiedActs)
	assert.Equal(t, "slots", cfg.Detection.Signal)
	assert.Equal(t, 5, cfg.Detection.PatternLen)
	assert.Equal(t, "/tmp/out", cfg.Paths.Outputs)
}
