package usecase

import "context"

// LeaderboardEntry is a single ranked row. Ranks are dense 1..N with ties
// broken by sample order, not by score equality.
type LeaderboardEntry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// LeaderboardUsecase regenerates a ranked list of pseudo-random entries on
// each call. Nothing is persisted.
type LeaderboardUsecase interface {
	Generate(ctx context.Context, size int) ([]LeaderboardEntry, error)
}
