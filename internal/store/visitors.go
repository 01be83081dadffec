package store

import (
	"context"
	"fmt"
	"time"
)

// Visit is one tracked page view. HashedIP is never the raw address.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	VisitedAt time.Time `json:"visited_at"`
}

type ResultRow struct {
	RunID     string    `json:"run_id"`
	Game      string    `json:"game"`
	Score     int       `json:"score"`
	GameSpeed float64   `json:"game_speed"`
	EndedAt   time.Time `json:"ended_at"`
}

type Stats struct {
	TotalVisitors    int64       `json:"total_visitors"`
	UniqueVisitors   int64       `json:"unique_visitors"`
	VisitorsToday    int64       `json:"visitors_today"`
	VisitorsThisWeek int64       `json:"visitors_this_week"`
	GamesPlayed      int64       `json:"games_played"`
	HighScore        int         `json:"high_score"`
	TopResults       []ResultRow `json:"top_results"`
	RecentVisitors   []Visit     `json:"recent_visitors"`
}

func (s *Store) RecordVisit(ctx context.Context, v Visit) error {
	if v.HashedIP == "" {
		return fmt.Errorf("visit hashed ip is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, visited_at) VALUES (?, ?, ?, ?)`,
		v.HashedIP, v.UserAgent, v.Path, v.VisitedAt.Unix())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// CleanupVisitors deletes visits older than before and reports how many
// rows went.
func (s *Store) CleanupVisitors(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE visited_at < ?`, before.Unix())
	if err != nil {
		return 0, fmt.Errorf("cleanup visitors: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cleanup visitors: %w", err)
	}
	return n, nil
}

// Stats aggregates the admin dashboard numbers. Day and week windows are
// computed relative to now in now's location.
func (s *Store) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	stats := &Stats{TopResults: []ResultRow{}, RecentVisitors: []Visit{}}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := now.Add(-7 * 24 * time.Hour)

	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(DISTINCT hashed_ip),
			COALESCE(SUM(visited_at >= ?), 0),
			COALESCE(SUM(visited_at >= ?), 0)
		FROM visitors`,
		dayStart.Unix(), weekStart.Unix(),
	).Scan(&stats.TotalVisitors, &stats.UniqueVisitors, &stats.VisitorsToday, &stats.VisitorsThisWeek)
	if err != nil {
		return nil, fmt.Errorf("visitor counts: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM game_results`).Scan(&stats.GamesPlayed); err != nil {
		return nil, fmt.Errorf("games played: %w", err)
	}
	if stats.HighScore, err = s.HighScore(ctx); err != nil {
		return nil, err
	}

	if stats.TopResults, err = s.topResults(ctx, 10); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = s.recentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) topResults(ctx context.Context, limit int) ([]ResultRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, game, score, game_speed, ended_at
		FROM game_results
		ORDER BY score DESC, ended_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("top results: %w", err)
	}
	defer rows.Close()

	out := []ResultRow{}
	for rows.Next() {
		var r ResultRow
		var ended int64
		if err := rows.Scan(&r.RunID, &r.Game, &r.Score, &r.GameSpeed, &ended); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.EndedAt = time.Unix(ended, 0).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) recentVisitors(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, path, visited_at
		FROM visitors
		ORDER BY visited_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	out := []Visit{}
	for rows.Next() {
		var v Visit
		var at int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &at); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		v.VisitedAt = time.Unix(at, 0).UTC()
		out = append(out, v)
	}
	return out, rows.Err()
}
