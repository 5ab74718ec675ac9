package config_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ganglion/config"
	"github.com/hupe1980/ganglion/engine"
)

var durationData = map[string]struct {
	input    string
	expected time.Duration
	error    bool
}{
	"milliseconds": {input: "callSlowAsyncActionAfter: 250", expected: 250 * time.Millisecond},
	"string":       {input: "callSlowAsyncActionAfter: 1s", expected: time.Second},
	"zero":         {input: "callSlowAsyncActionAfter: 0", expected: 0},
	"invalid":      {input: "callSlowAsyncActionAfter: soon", error: true},
	"not-scalar":   {input: "callSlowAsyncActionAfter: [1]", error: true},
}

func TestParse_Duration(t *testing.T) {
	for name, tc := range durationData {
		t.Run(name, func(t *testing.T) {
			f, err := config.Parse([]byte(tc.input))
			if tc.error {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, f.CallSlowAsyncActionAfter.IsSet())
			assert.Equal(t, tc.expected, f.CallSlowAsyncActionAfter.Duration)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	f, err := config.Parse(nil)
	require.NoError(t, err)

	opts := engine.Options{Config: engine.DefaultConfig}
	f.Apply(&opts)

	assert.Equal(t, engine.DefaultConfig.CallSlowAsyncActionAfter, opts.Config.CallSlowAsyncActionAfter)
	assert.Equal(t, engine.DefaultConfig.HistoryCapacity, opts.Config.HistoryCapacity)
	assert.Empty(t, opts.Config.Context)
}

func TestParse_Rejects(t *testing.T) {
	for name, input := range map[string]string{
		"unknown-key":       "retries: 3",
		"negative-capacity": "history:\n  capacity: -1",
		"bad-level":         "logging:\n  level: loud",
		"bad-format":        "logging:\n  format: xml",
		"context-not-map":   "context: [1, 2]",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(input))
			assert.Error(t, err)
		})
	}
}

func TestFile_Apply(t *testing.T) {
	f, err := config.Load(strings.NewReader(`
callSlowAsyncActionAfter: 20ms
context:
  tenant: acme
history:
  capacity: 5
`))
	require.NoError(t, err)

	opts := engine.Options{Config: engine.DefaultConfig}
	opts.Config.Context = map[string]any{"region": "eu"}
	f.Apply(&opts)

	assert.Equal(t, 20*time.Millisecond, opts.Config.CallSlowAsyncActionAfter)
	assert.Equal(t, 5, opts.Config.HistoryCapacity)
	assert.Equal(t, map[string]any{"region": "eu", "tenant": "acme"}, opts.Config.Context)
	assert.Nil(t, engine.DefaultConfig.Context)
}

func TestFile_Logger(t *testing.T) {
	f, err := config.Parse([]byte("logging:\n  level: warn\n  format: json\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := f.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown %d", 1)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "shown 1", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ganglion.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history:\n  capacity: 42\n"), 0o600))

	f, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 42, f.History.Capacity)

	_, err = config.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
