package cmd

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/josephlewis42/resultsh/core/config"
	"github.com/josephlewis42/resultsh/core/env"
	"github.com/josephlewis42/resultsh/core/logger"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFlags(t *testing.T, cfg, eventLog string) {
	t.Helper()

	oldCfg, oldEvents := cfgPath, eventLogPath
	cfgPath, eventLogPath = cfg, eventLog
	t.Cleanup(func() {
		cfgPath, eventLogPath = oldCfg, oldEvents
	})
}

func TestLoadConfig_default(t *testing.T) {
	withFlags(t, "", "")

	got, err := loadConfig(afero.NewMemMapFs())

	require.NoError(t, err)
	assert.Equal(t, config.Default(), got)
}

func TestLoadConfig_missing(t *testing.T) {
	withFlags(t, "/etc/resultsh", "")

	_, err := loadConfig(afero.NewMemMapFs())

	assert.Error(t, err)
}

func TestLoadConfig_initialized(t *testing.T) {
	memFs := afero.NewMemMapFs()
	withFlags(t, "/etc/resultsh", "")
	require.NoError(t, afero.WriteFile(memFs, filepath.Join(cfgPath, config.ConfigurationName), []byte("prompt: '% '\n"), 0644))

	got, err := loadConfig(memFs)

	require.NoError(t, err)
	assert.Equal(t, "% ", got.Prompt)
	assert.Equal(t, "result", got.StatusVariable)
}

func TestOpenEventLog(t *testing.T) {
	memFs := afero.NewMemMapFs()
	withFlags(t, "", "/var/log/events.jsonl")

	events, closeEvents, err := openEventLog(memFs)
	require.NoError(t, err)
	require.NoError(t, events.Record(&logger.AssignmentEvent{Name: "FOO", Accepted: true}))
	require.NoError(t, closeEvents())

	fd, err := memFs.Open(eventLogPath)
	require.NoError(t, err)
	defer fd.Close()

	var got []*logger.LogEntry
	require.NoError(t, logger.ReadJSONLinesLog(fd, func(le *logger.LogEntry) {
		got = append(got, le)
	}))
	require.Len(t, got, 1)
	assert.Equal(t, events.SessionID(), got[0].SessionID)
	assert.Equal(t, "FOO", got[0].Assignment.Name)
}

func TestOpenEventLog_disabled(t *testing.T) {
	withFlags(t, "", "")

	events, closeEvents, err := openEventLog(afero.NewMemMapFs())

	require.NoError(t, err)
	assert.Nil(t, events)
	assert.NoError(t, closeEvents())
}

func TestEnvFileRejected(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, "/vars.env", []byte("EMPTY=\nA=1\nB=2\n"), 0644))

	cases := map[string]struct {
		report  bool
		wantLog string
	}{
		"silent":   {false, "resultsh: B: variable capacity exceeded (2)\n"},
		"reported": {true, "resultsh: B: variable capacity exceeded (2)\nresultsh: \"EMPTY\"=\"\": malformed assignment\n"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			logged := &bytes.Buffer{}
			log.SetOutput(logged)
			t.Cleanup(func() { log.SetOutput(os.Stderr) })

			cfg := config.Default()
			cfg.ReportAssignmentErrors = tc.report
			vars := env.NewStore(cfg.StatusVariable, 2)

			require.NoError(t, env.LoadFile(memFs, vars, "/vars.env", envFileRejected(cfg)))
			assert.Equal(t, "1", vars.Get("A"))
			assert.Equal(t, tc.wantLog, logged.String())
		})
	}
}
