package assistant

import (
	"context"
	"log/slog"

	"github.com/vbaranceanu/book-advisor/pkg/advisor"
	"github.com/vbaranceanu/book-advisor/pkg/filter"
	"github.com/vbaranceanu/book-advisor/pkg/library"
	"github.com/vbaranceanu/book-advisor/pkg/retrieval"
)

// PoliteBlockResponse is the fixed reply for denylisted input. Input
// rejection is an alternate response path, never an error.
const PoliteBlockResponse = "I get that you might be upset. Please rephrase without offensive language and I'll be happy to help. 💬"

const noPickResponse = "I couldn't confidently pick a title. Could you share more about genre, tone, or themes you enjoy?"

const defaultClarification = "Could you clarify your preferences (genre, period, tone)?"

// SummaryRouter is the direct-summary short-circuit path.
type SummaryRouter interface {
	Route(ctx context.Context, query string) (answer string, handled bool)
}

// Recommender is the retrieval-augmented recommendation path.
type Recommender interface {
	Recommend(ctx context.Context, query string) (advisor.Recommendation, []retrieval.Passage, error)
}

// Assistant wires the per-turn pipeline: content filter gates
// everything, the router attempts the direct-summary short-circuit,
// otherwise the engine recommends and the reply is assembled with the
// stored detailed summary and source list.
type Assistant struct {
	Filter  *filter.Filter
	Library *library.Library
	Router  SummaryRouter
	Engine  Recommender
	Logger  *slog.Logger
}

func New(f *filter.Filter, lib *library.Library, router SummaryRouter, engine Recommender) *Assistant {
	return &Assistant{
		Filter:  f,
		Library: lib,
		Router:  router,
		Engine:  engine,
		Logger:  slog.Default(),
	}
}

// Reply runs one conversational turn. The only error it returns is a
// hard collaborator failure on the recommendation path, which the
// caller should render as a retryable "please try again".
func (a *Assistant) Reply(ctx context.Context, query string) (string, error) {
	if a.Filter.IsInappropriate(query) {
		a.Logger.Info("Blocked inappropriate input")
		return PoliteBlockResponse, nil
	}

	if answer, handled := a.Router.Route(ctx, query); handled {
		return answer, nil
	}

	rec, passages, err := a.Engine.Recommend(ctx, query)
	if err != nil {
		return "", err
	}

	if rec.NeedsClarification {
		q := rec.ClarificationQuestion
		if q == "" {
			q = defaultClarification
		}
		return q, nil
	}

	if len(rec.Titles) == 0 {
		return noPickResponse, nil
	}

	// A title absent from the library renders as the "(n/a)" summary
	// block rather than being trusted as a verbatim hit.
	detailed, ok := a.Library.Lookup(rec.Titles[0])
	if !ok {
		a.Logger.Warn("Recommended title has no stored summary", "title", rec.Titles[0])
		detailed = ""
	}

	sources := advisor.UniqueSources(passages, 3)
	return advisor.BuildFinalText(rec.Titles, rec.Pitch, rec.Reasons, detailed, sources), nil
}
