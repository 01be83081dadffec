package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/soumaysikchi/portfolio/internal/game"
)

// HighScoreKey is the kv entry holding the best Code Rush score.
const HighScoreKey = "portfolio-highscore"

const (
	GameCodeRush  = "code-rush"
	GameDevTrials = "dev-trials"
)

// HighScore returns the stored best score, or 0 when none was saved.
func (s *Store) HighScore(ctx context.Context) (int, error) {
	v, err := s.Get(ctx, HighScoreKey)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse high score %q: %w", v, err)
	}
	return n, nil
}

// SaveHighScore raises the stored high score to score. A lower score
// leaves the stored value untouched, so concurrent sessions can only
// move it up.
func (s *Store) SaveHighScore(ctx context.Context, score int) error {
	if score < 0 {
		return fmt.Errorf("negative high score %d", score)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, unixepoch())
		ON CONFLICT (key) DO UPDATE SET
			value = CAST(MAX(CAST(kv.value AS INTEGER), CAST(excluded.value AS INTEGER)) AS TEXT),
			updated_at = excluded.updated_at`,
		HighScoreKey, strconv.Itoa(score))
	if err != nil {
		return fmt.Errorf("save high score: %w", err)
	}
	return nil
}

// RecordResult stores a finished Code Rush run.
func (s *Store) RecordResult(ctx context.Context, r game.Result) error {
	return s.insertResult(ctx, GameCodeRush, r)
}

// RecordTrials stores a completed Dev Trials playthrough.
func (s *Store) RecordTrials(ctx context.Context, runID string, total int, endedAt time.Time) error {
	return s.insertResult(ctx, GameDevTrials, game.Result{RunID: runID, Score: total, EndedAt: endedAt})
}

func (s *Store) insertResult(ctx context.Context, kind string, r game.Result) error {
	if r.RunID == "" {
		return fmt.Errorf("result run id is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO game_results (run_id, game, score, game_speed, ticks, ended_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.RunID, kind, r.Score, r.GameSpeed, int64(r.Ticks), r.EndedAt.Unix())
	if err != nil {
		return fmt.Errorf("record %s result: %w", kind, err)
	}
	return nil
}
