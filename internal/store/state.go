package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"go.uber.org/zap"

	"github.com/abhisek/proyo/internal/progress"
)

// StateRepo persists progress state as JSON snapshots. Every Save appends a
// snapshot; Load returns the newest one. Older snapshots are pruned to the
// configured retention.
type StateRepo struct {
	db     *sql.DB
	seq    *sequenceCounter
	logger *zap.Logger
	keep   int
}

// Load returns the most recently saved state, or nil if nothing is stored.
// A stored document that no longer decodes is treated as absent.
func (r *StateRepo) Load(ctx context.Context) (*progress.State, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("version", "data").
		From(entsql.Table(snapshotsTable)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Query()

	var (
		version int
		data    []byte
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&version, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	st, err := decodeState(version, data)
	if errors.Is(err, ErrIncompatible) {
		r.logger.Warn("ignoring stored state", zap.Int("version", version), zap.Error(err))
		return nil, nil
	}
	return st, err
}

// Save stores s as the newest snapshot and prunes old ones.
func (r *StateRepo) Save(ctx context.Context, s progress.State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(snapshotsTable).
		Columns("sequence", "timestamp", "version", "data").
		Values(seqNum, time.Now().UTC(), currentDocument, string(data)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	return r.Prune(ctx, r.keep)
}

// Clear deletes every stored snapshot.
func (r *StateRepo) Clear(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).Delete(snapshotsTable).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear snapshots: %w", err)
	}
	return nil
}

// Prune deletes all but the keep most recent snapshots.
func (r *StateRepo) Prune(ctx context.Context, keep int) error {
	if keep < 1 {
		keep = 1
	}

	// Find the sequence of the newest snapshot that falls outside the window.
	query, args := entsql.Dialect(dialect.SQLite).
		Select("sequence").
		From(entsql.Table(snapshotsTable)).
		OrderBy(entsql.Desc("sequence")).
		Offset(keep).
		Limit(1).
		Query()

	var threshold int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep snapshots exist
	}
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	query, args = entsql.Dialect(dialect.SQLite).
		Delete(snapshotsTable).
		Where(entsql.LTE("sequence", threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// Count returns the number of stored snapshots.
func (r *StateRepo) Count(ctx context.Context) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table(snapshotsTable)).
		Query()
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count snapshots: %w", err)
	}
	return n, nil
}

func decodeState(version int, data []byte) (*progress.State, error) {
	if version != currentDocument {
		return nil, fmt.Errorf("%w: document version %d", ErrIncompatible, version)
	}
	var st progress.State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompatible, err)
	}
	if st.Snapshot.UserName == "" {
		return nil, fmt.Errorf("%w: missing user name", ErrIncompatible)
	}
	return &st, nil
}
