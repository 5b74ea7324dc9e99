// Package analyzer orchestrates the analysis pipeline: assemble the
// multimodal message, invoke the remote agent, extract the structured
// verdict, persist it to the leaderboard.
//
// The published contract is that Analyze never fails except for a missing
// display name: any invocation or extraction failure is absorbed and the
// caller receives a fixed, themed degraded result instead. Persistence
// failures are logged and swallowed — the user-facing result is
// authoritative even when durability is not.
package analyzer

import (
	"context"
	"encoding/json"

	"github.com/roastboard/roastboard/internal/content"
	"github.com/roastboard/roastboard/internal/extract"
	"github.com/roastboard/roastboard/internal/metrics"
	"github.com/roastboard/roastboard/internal/store"
	"github.com/roastboard/roastboard/pkg/models"
	"github.com/rs/zerolog/log"
)

// Invoker runs one complete remote agent conversation and returns the raw
// content of its final message.
type Invoker interface {
	Invoke(ctx context.Context, agentID string, message models.MultimodalMessage) (json.RawMessage, error)
}

// DegradedResult returns the canned verdict served when the pipeline
// fails end to end. It is never persisted.
func DegradedResult() *models.RoastResult {
	return &models.RoastResult{
		Roast:    "You broke the API call with your incompetence.",
		Verdict:  "COOKED",
		Score:    100,
		Analysis: "failed to connect to brain.",
	}
}

// Analyzer sequences the analysis pipeline. It holds shared, stateless
// collaborators only; every request is an independent single flight.
type Analyzer struct {
	invoker Invoker
	agentID string
	store   store.Store
}

// New creates an Analyzer.
func New(invoker Invoker, agentID string, s store.Store) *Analyzer {
	return &Analyzer{invoker: invoker, agentID: agentID, store: s}
}

// Analyze runs one analysis request through the full pipeline.
//
// The returned error is non-nil only for a missing display name, which is
// checked eagerly — before any remote session exists. Every other failure
// produces the degraded result with a nil error.
func (a *Analyzer) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.RoastResult, error) {
	if req.DisplayName == "" {
		metrics.RecordAnalysis("rejected")
		return nil, ErrMissingDisplayName
	}

	message := content.Assemble(req.Text, req.Attachments)

	raw, err := a.invoker.Invoke(ctx, a.agentID, message)
	if err != nil {
		return a.degrade(&Error{Kind: KindInvocation, Err: err}), nil
	}

	text, err := extract.Normalize(raw)
	if err != nil {
		return a.degrade(&Error{Kind: KindExtraction, Err: err}), nil
	}

	result, err := extract.Result(text)
	if err != nil {
		return a.degrade(&Error{Kind: KindExtraction, Err: err}), nil
	}

	a.persist(ctx, req.DisplayName, result)

	metrics.RecordAnalysis("ok")
	return result, nil
}

// degrade logs the absorbed failure and returns the canned result.
func (a *Analyzer) degrade(err *Error) *models.RoastResult {
	log.Error().
		Str("kind", string(err.Kind)).
		Err(err.Err).
		Msg("analysis failed, serving degraded result")
	metrics.RecordAnalysis("degraded")
	return DegradedResult()
}

// persist writes the leaderboard entry. A storage failure never fails the
// analysis: the entry is simply lost and the error logged.
func (a *Analyzer) persist(ctx context.Context, displayName string, result *models.RoastResult) {
	entry := &models.LeaderboardEntry{
		DisplayName: displayName,
		Score:       result.Score,
		RoastText:   result.Roast,
		Verdict:     result.Verdict,
		Analysis:    result.Analysis,
	}
	if err := a.store.CreateEntry(ctx, entry); err != nil {
		perr := &Error{Kind: KindPersistence, Err: err}
		log.Warn().Err(perr).Str("display_name", displayName).Msg("leaderboard insert failed")
		metrics.RecordPersistenceError()
	}
}
