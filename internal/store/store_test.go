package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/proyo/internal/progress"
)

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "proyo.db"), opts...)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleState() progress.State {
	s := progress.Onboard("ana", progress.Goals{Objective: "Constancia"}, progress.DefaultPlan())
	s, _ = progress.CheckIn(s, progress.CheckinData{DailyGoal: "Leer", CheckinTime: "06:40"})
	s, _ = progress.ToggleTask(s, "Entrenamiento")
	s, _ = progress.Penalize(s, progress.Action{Description: "Gasto impulsivo", XP: -10},
		time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, name := range []string{snapshotsTable, llmEventsTable, sequenceTable} {
		var got string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", name,
		).Scan(&got)
		if err != nil {
			t.Errorf("table %s: %v", name, err)
		}
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proyo.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.StateRepo().Save(ctx, sampleState()))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.StateRepo().Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ana", got.Snapshot.UserName)
}

func TestStateRepo_LoadEmpty(t *testing.T) {
	got, err := openTestStore(t).StateRepo().Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStateRepo_RoundTrip(t *testing.T) {
	repo := openTestStore(t).StateRepo()
	ctx := context.Background()
	want := sampleState()

	require.NoError(t, repo.Save(ctx, want))
	got, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)

	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestStateRepo_LoadReturnsNewest(t *testing.T) {
	repo := openTestStore(t).StateRepo()
	ctx := context.Background()

	s := sampleState()
	for _, name := range []string{"uno", "dos", "tres"} {
		require.NoError(t, repo.Save(ctx, progress.SetName(s, name)))
	}

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Tres", got.Snapshot.UserName)
}

func TestStateRepo_SavePrunes(t *testing.T) {
	repo := openTestStore(t, WithKeepSnapshots(3)).StateRepo()
	ctx := context.Background()

	for range 7 {
		require.NoError(t, repo.Save(ctx, sampleState()))
	}
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStateRepo_PruneWithFewerThanKeep(t *testing.T) {
	repo := openTestStore(t).StateRepo()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleState()))
	require.NoError(t, repo.Save(ctx, sampleState()))
	require.NoError(t, repo.Prune(ctx, 5))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStateRepo_Clear(t *testing.T) {
	repo := openTestStore(t).StateRepo()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleState()))
	require.NoError(t, repo.Clear(ctx))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStateRepo_IncompatibleTreatedAsAbsent(t *testing.T) {
	tests := []struct {
		name    string
		version int
		data    string
	}{
		{"future version", currentDocument + 1, `{"userState":{"userName":"Ana"}}`},
		{"not json", currentDocument, `{{{`},
		{"wrong shape", currentDocument, `{"userState":{"totalXp":"lots"}}`},
		{"no user", currentDocument, `{"userState":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTestStore(t)
			query, args := entsql.Dialect(dialect.SQLite).
				Insert(snapshotsTable).
				Columns("sequence", "timestamp", "version", "data").
				Values(1, time.Now().UTC(), tt.version, tt.data).
				Query()
			_, err := s.DB().Exec(query, args...)
			require.NoError(t, err)

			got, err := s.StateRepo().Load(context.Background())
			require.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestDecodeState_Incompatible(t *testing.T) {
	_, err := decodeState(99, []byte(`{}`))
	assert.ErrorIs(t, err, ErrIncompatible)
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var prev int64
	for i := range 5 {
		seq, err := s.seq.Next(ctx)
		require.NoError(t, err)
		if i > 0 {
			assert.Equal(t, prev+1, seq)
		}
		prev = seq
	}
}

func TestEventRepo_LLMRequests(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "plan", InputTokens: 100, OutputTokens: 40, LatencyMs: 900, Success: true},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "sentiment", InputTokens: 20, OutputTokens: 3, Success: false, ErrorMessage: "rate limited"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "proactive", InputTokens: 50, OutputTokens: 30, Success: true},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	all, err := repo.QueryLLMRequests(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "proactive", all[0].Purpose, "newest first")
	assert.Equal(t, "rate limited", all[1].ErrorMessage)
	assert.False(t, all[1].Success)
	assert.False(t, all[0].Timestamp.IsZero())

	limited, err := repo.QueryLLMRequests(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)

	older, err := repo.QueryLLMRequests(ctx, QueryOpts{Before: all[0].Sequence})
	require.NoError(t, err)
	assert.Len(t, older, 2)

	usage, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	want := []LLMUsage{
		{Model: "gemini-2.0-flash", Requests: 2, Failures: 1, InputTokens: 120, OutputTokens: 43},
		{Model: "gpt-4o-mini", Requests: 1, Failures: 0, InputTokens: 50, OutputTokens: 30},
	}
	if diff := cmp.Diff(want, usage); diff != "" {
		t.Errorf("usage mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("PROYO_DB", filepath.Join(dir, "custom", "x.db"))
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "custom", "x.db"), p)
	assert.DirExists(t, filepath.Join(dir, "custom"))

	t.Setenv("PROYO_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "proyo", "proyo.db"), p)
}
