package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/proyo/internal/progress"
)

// execute runs the root command against an isolated database and config.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(cfgPath); err != nil {
		conf := "[coach]\nenabled = false\n\n[logging]\nfile = \"" + filepath.Join(dir, "proyo.log") + "\"\n"
		require.NoError(t, os.WriteFile(cfgPath, []byte(conf), 0o644))
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--db", filepath.Join(dir, "proyo.db"), "--config", cfgPath}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommandFlow(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, dir, "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "proyo onboard")

	out, err := execute(t, dir, "onboard", "Ana", "--objective", "Ser constante")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome, Ana!")

	_, err = execute(t, dir, "onboard", "Otra")
	require.Error(t, err)

	out, err = execute(t, dir, "checkin", "--priorities", "leer", "--time", "09:30")
	require.NoError(t, err)
	assert.Contains(t, out, "Checked in at 09:30")

	_, err = execute(t, dir, "task", "no existe")
	assert.Error(t, err)

	out, err = execute(t, dir, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Achievements")
	assert.Contains(t, out, "tasks)")

	out, err = execute(t, dir, "export", "--format", "yaml")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "userState")
}

func TestParseDays(t *testing.T) {
	tests := []struct {
		in   string
		want [7]bool
	}{
		{"all", [7]bool{true, true, true, true, true, true, true}},
		{"weekdays", [7]bool{true, true, true, true, true}},
		{"weekends", [7]bool{5: true, 6: true}},
		{"mon,Wednesday, fri", [7]bool{0: true, 2: true, 4: true}},
	}
	for _, tt := range tests {
		got, err := parseDays(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := parseDays("mon,funday")
	assert.Error(t, err)
}

func TestFormatDays(t *testing.T) {
	assert.Equal(t, "every day", formatDays([7]bool{true, true, true, true, true, true, true}))
	assert.Equal(t, "mon,fri", formatDays([7]bool{0: true, 4: true}))
}

func TestEncodeState(t *testing.T) {
	st := progress.State{Snapshot: progress.Snapshot{UserName: "Ana", TotalXP: 42}}

	data, err := encodeState(st, "json")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "\n"))
	assert.Contains(t, string(data), `"totalXp": 42`)

	data, err = encodeState(st, "yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "totalXp: 42")

	_, err = encodeState(st, "xml")
	assert.Error(t, err)
}

func TestDecodePlan(t *testing.T) {
	plan, err := decodePlan([]byte(`
positiveActions:
  - {description: Leer, xp: 5}
  - {description: Mal signo, xp: -5}
negativeActions:
  - {description: Trasnochar, xp: -10}
kpis:
  - {area: Salud, indicator: Correr, completed: true}
`))
	require.NoError(t, err)
	assert.Equal(t, []progress.Action{{Description: "Leer", XP: 5}}, plan.PositiveActions)
	assert.Equal(t, []progress.Action{{Description: "Trasnochar", XP: -10}}, plan.NegativeActions)
	require.Len(t, plan.KPIs, 1)
	assert.False(t, plan.KPIs[0].Completed)

	exported, err := encodeState(progress.State{Snapshot: progress.Snapshot{
		PositiveActions: []progress.Action{{Description: "Leer", XP: 5}},
	}}, "json")
	require.NoError(t, err)
	plan, err = decodePlan(exported)
	require.NoError(t, err)
	assert.Len(t, plan.PositiveActions, 1)

	_, err = decodePlan([]byte("kpis: []"))
	assert.Error(t, err)
}
