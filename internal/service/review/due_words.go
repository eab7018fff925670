package review

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"

	"github.com/google/uuid"

	"github.com/wordnest/wordnest-backend/internal/domain"
	"github.com/wordnest/wordnest-backend/pkg/ctxutil"
)

// DueWord pairs a due word definition with the ledger row that made it due.
type DueWord struct {
	Word     *domain.WordDefinition
	Progress *domain.UserWordProgress
}

// DueWords returns the user's review queue for today.
//
// A word is due when at least GapForStreak(correct_count) whole days
// have passed since its last review date; a freshly registered word is
// due immediately. The queue is shuffled uniformly and then stably
// sorted by importance descending, with importance below 3 treated as
// no importance at all. High-importance words therefore lead the queue
// while words of equal weight appear in random order.
func (s *Service) DueWords(ctx context.Context, input DueWordsInput) ([]DueWord, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.clock()

	ledger, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	var due []*domain.UserWordProgress
	for _, p := range ledger {
		if IsDue(p.CorrectCount, p.LastReviewDate(), now) {
			due = append(due, p)
		}
	}
	if len(due) == 0 {
		return []DueWord{}, nil
	}

	wordIDs := make([]uuid.UUID, len(due))
	for i, p := range due {
		wordIDs[i] = p.WordID
	}

	words, err := s.words.GetByIDs(ctx, wordIDs)
	if err != nil {
		return nil, fmt.Errorf("get words: %w", err)
	}
	wordsByID := make(map[uuid.UUID]*domain.WordDefinition, len(words))
	for _, w := range words {
		wordsByID[w.ID] = w
	}

	queue := make([]DueWord, 0, len(due))
	for _, p := range due {
		word, ok := wordsByID[p.WordID]
		if !ok {
			// Ledger row survived its word definition; skip rather
			// than fail the whole queue.
			s.log.Warn("progress references missing word",
				slog.String("word_id", p.WordID.String()))
			continue
		}
		queue = append(queue, DueWord{Word: word, Progress: p})
	}

	orderQueue(queue)

	if input.Limit > 0 && len(queue) > input.Limit {
		queue = queue[:input.Limit]
	}
	return queue, nil
}

// orderQueue shuffles the queue uniformly, then stably sorts it by
// importance rank descending. The shuffle is what randomizes ties: the
// stable sort preserves the shuffled order within each rank.
func orderQueue(queue []DueWord) {
	rand.Shuffle(len(queue), func(i, j int) {
		queue[i], queue[j] = queue[j], queue[i]
	})
	sort.SliceStable(queue, func(i, j int) bool {
		return importanceRank(queue[i].Word) > importanceRank(queue[j].Word)
	})
}

// importanceRank collapses importance below 3 to zero so that only
// genuinely important words outrank the shuffled rest.
func importanceRank(w *domain.WordDefinition) int {
	if w.Importance < 3 {
		return 0
	}
	return w.Importance
}
