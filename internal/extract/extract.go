// Package extract parses free-form agent output into structured results.
//
// Conversational agents rarely return bare JSON: the payload tends to
// arrive wrapped in a markdown code fence, padded with prose, or (on a
// good day) clean. Extraction is an ordered strategy list — fenced block,
// first-to-last brace span, whole-string parse. The first strategy whose
// precondition matches gets exactly one parse attempt; if that parse
// fails the extraction fails. The strategies are a selection order, not
// a retry chain.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/roastboard/roastboard/internal/metrics"
	"github.com/roastboard/roastboard/pkg/models"
)

// ErrNoTextContent means the agent's final message carried no textual
// part to extract from.
var ErrNoTextContent = errors.New("extract: message has no text content")

// Strategy names, recorded in metrics and useful in logs.
const (
	StrategyFence     = "fence"
	StrategyBraceSpan = "brace_span"
	StrategyWhole     = "whole"
)

// Normalize reduces raw last-message content to a single string. The wire
// shape is either a plain JSON string or an ordered array of typed parts,
// in which case the first "text" part wins.
func Normalize(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var parts []models.ContentPart
	if err := json.Unmarshal(raw, &parts); err == nil {
		for _, p := range parts {
			if p.Type == models.PartText {
				return p.Text, nil
			}
		}
	}

	return "", ErrNoTextContent
}

// Result extracts a RoastResult from normalized message content.
func Result(content string) (*models.RoastResult, error) {
	candidate, strategy := selectCandidate(content)

	res, err := parseResult(candidate)
	if err != nil {
		metrics.RecordExtraction("failed")
		return nil, fmt.Errorf("extract: %s strategy: %w", strategy, err)
	}

	metrics.RecordExtraction(strategy)
	return res, nil
}

// selectCandidate picks the JSON candidate substring and names the
// strategy that produced it. A fenced block beats stray braces elsewhere
// in the prose; the whole string is the last resort.
func selectCandidate(content string) (candidate, strategy string) {
	if inner, ok := fencedBlock(content); ok {
		return inner, StrategyFence
	}
	if span, ok := braceSpan(content); ok {
		return span, StrategyBraceSpan
	}
	return content, StrategyWhole
}

// fencedBlock returns the interior of the first markdown code fence,
// optionally tagged as json.
func fencedBlock(s string) (string, bool) {
	for _, open := range []string{"```json\n", "```\n"} {
		start := strings.Index(s, open)
		if start < 0 {
			continue
		}
		rest := s[start+len(open):]
		end := strings.Index(rest, "\n```")
		if end < 0 {
			continue
		}
		return rest[:end], true
	}
	return "", false
}

// braceSpan returns the substring from the first '{' to the last '}',
// inclusive, when both exist in that order.
func braceSpan(s string) (string, bool) {
	first := strings.IndexByte(s, '{')
	last := strings.LastIndexByte(s, '}')
	if first < 0 || last < 0 || last <= first {
		return "", false
	}
	return s[first : last+1], true
}

// wireResult uses pointers so absent fields are distinguishable from
// zero values.
type wireResult struct {
	Roast    *string  `json:"roast"`
	Verdict  *string  `json:"verdict"`
	Score    *float64 `json:"score"`
	Analysis *string  `json:"analysis"`
}

func parseResult(candidate string) (*models.RoastResult, error) {
	var w wireResult
	if err := json.Unmarshal([]byte(candidate), &w); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if w.Roast == nil || w.Verdict == nil || w.Score == nil || w.Analysis == nil {
		return nil, errors.New("missing required fields")
	}

	// Score is deliberately not clamped or rounded: callers display the
	// agent's number verbatim.
	return &models.RoastResult{
		Roast:    *w.Roast,
		Verdict:  *w.Verdict,
		Score:    *w.Score,
		Analysis: *w.Analysis,
	}, nil
}

// Nickname pulls a generated display name out of a completion. The shape
// here is simpler than Result: a single generic brace scan, no fence
// handling.
func Nickname(content string) (string, error) {
	span, ok := braceSpan(content)
	if !ok {
		return "", errors.New("extract: no JSON object in completion")
	}

	var w struct {
		Nickname string `json:"nickname"`
	}
	if err := json.Unmarshal([]byte(span), &w); err != nil {
		return "", fmt.Errorf("extract: invalid nickname JSON: %w", err)
	}
	if w.Nickname == "" {
		return "", errors.New("extract: nickname field missing")
	}
	return w.Nickname, nil
}
