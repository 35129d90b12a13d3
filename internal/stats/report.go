package stats

import (
	"context"

	"github.com/verte-zerg/lexdrill/internal/model"
)

// HistoryStore is the part of the store the report reads from.
type HistoryStore interface {
	ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error)
	ListWordAggregates(ctx context.Context, sessionIDs []string) ([]model.WordAggregate, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions         []model.SessionAggregate
	WindowSessionIDs []string
	WordAggsAll      []model.WordAggregate
	WordAggsWindow   []model.WordAggregate
	HardWords        []model.WordAggregate
}

// BuildReport loads and prepares data for stats rendering. Hardest words are
// picked from the last CurveWindow sessions.
func BuildReport(ctx context.Context, st HistoryStore, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}

	windowIDs := lastSessionIDs(sessions, cfg.CurveWindow)
	wordAggsAll, err := st.ListWordAggregates(ctx, sessionIDs(sessions))
	if err != nil {
		return Report{}, err
	}
	wordAggsWindow, err := st.ListWordAggregates(ctx, windowIDs)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Sessions:         sessions,
		WindowSessionIDs: windowIDs,
		WordAggsAll:      wordAggsAll,
		WordAggsWindow:   wordAggsWindow,
		HardWords:        HardestWords(wordAggsWindow, cfg.Top),
	}, nil
}

func sessionIDs(sessions []model.SessionAggregate) []string {
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	return ids
}

func lastSessionIDs(sessions []model.SessionAggregate, window int) []string {
	if window <= 0 || len(sessions) <= window {
		return sessionIDs(sessions)
	}
	return sessionIDs(sessions[len(sessions)-window:])
}
