package impl

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sort"
	"sync"

	"releaf/config"
	"releaf/internal/usecase"
)

// Defaults matching the mobile client's generator.
const (
	defaultLeaderboardSize = 12
	defaultMinScore        = 200
	defaultMaxScore        = 2000
)

// namePool is the fixed pool the generated entries draw from.
var namePool = []string{
	"Ava", "Liam", "Noah", "Emma", "Olivia", "Mia", "Sophia", "Isabella", "Ethan", "Lucas",
	"Amelia", "Mason", "James", "Charlotte", "Elijah", "Harper", "Benjamin", "Henry", "Evelyn", "Jack",
}

// leaderboardService implements the LeaderboardUsecase interface. Nothing is
// persisted; every call regenerates the board.
type leaderboardService struct {
	size     int
	minScore int
	maxScore int
	logger   *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewLeaderboardService is the constructor for leaderboardService.
func NewLeaderboardService(cfg *config.Config, logger *slog.Logger) usecase.LeaderboardUsecase {
	size, minScore, maxScore := defaultLeaderboardSize, defaultMinScore, defaultMaxScore
	if lb := cfg.Leaderboard; lb != nil {
		if lb.Size > 0 {
			size = lb.Size
		}
		if lb.MinScore > 0 {
			minScore = lb.MinScore
		}
		if lb.MaxScore > minScore {
			maxScore = lb.MaxScore
		}
	}

	return newLeaderboardService(size, minScore, maxScore, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), logger)
}

// newLeaderboardService allows tests to inject a seeded source.
func newLeaderboardService(size, minScore, maxScore int, rng *rand.Rand, logger *slog.Logger) *leaderboardService {
	return &leaderboardService{
		size:     size,
		minScore: minScore,
		maxScore: maxScore,
		rng:      rng,
		logger:   logger,
	}
}

// Generate samples names without replacement, assigns each a bounded random
// score and ranks them.
func (srv *leaderboardService) Generate(_ context.Context, size int) ([]usecase.LeaderboardEntry, error) {
	if size <= 0 || size > len(namePool) {
		size = srv.size
	}
	if size > len(namePool) {
		size = len(namePool)
	}

	srv.mu.Lock()
	sampled := append([]string(nil), namePool...)
	srv.rng.Shuffle(len(sampled), func(i, j int) {
		sampled[i], sampled[j] = sampled[j], sampled[i]
	})
	sampled = sampled[:size]

	scores := make([]int, size)
	for i := range scores {
		scores[i] = srv.minScore + srv.rng.IntN(srv.maxScore-srv.minScore)
	}
	srv.mu.Unlock()

	return rankEntries(sampled, scores), nil
}

// rankEntries sorts descending by score and assigns dense ranks 1..N. The sort
// is stable, so ties keep their sample order.
func rankEntries(names []string, scores []int) []usecase.LeaderboardEntry {
	entries := make([]usecase.LeaderboardEntry, len(names))
	for i, name := range names {
		entries[i] = usecase.LeaderboardEntry{Name: name, Score: scores[i]}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}
