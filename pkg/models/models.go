// Package models defines the domain types shared across the Roastboard
// backend: analysis requests, multimodal message content, roast results,
// and leaderboard entries.
package models

import "time"

// ── Analysis Input ───────────────────────────────────────────

// Attachment is one user-supplied image blob with its declared MIME type.
// Ordering of attachments is significant and must be preserved end to end.
type Attachment struct {
	Data     []byte
	MIMEType string
}

// AnalysisRequest is the caller-facing input to the analysis pipeline.
// DisplayName is required; Text and Attachments are individually optional
// but the caller is expected to supply at least one of them.
type AnalysisRequest struct {
	DisplayName string
	Text        string
	Attachments []Attachment
}

// ── Multimodal Message ───────────────────────────────────────

// ContentPart kinds. These mirror the wire format the agent API accepts.
const (
	PartText     = "text"
	PartImageURL = "image_url"
)

// ImageURL wraps a self-describing data URI so an image part carries its
// own MIME type and payload.
type ImageURL struct {
	URL string `json:"url"`
}

// ContentPart is one element of a multimodal user message: either a text
// part or an image part. Exactly one of Text/ImageURL is populated
// depending on Type.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// MultimodalMessage is the ordered content sequence submitted as a single
// user turn. Image parts keep the relative order of the attachments they
// were built from.
type MultimodalMessage []ContentPart

// ── Roast Result ─────────────────────────────────────────────

// RoastResult is the structured verdict extracted from the agent's final
// message. It is the only shape persisted or returned to callers.
//
// Score is passed through exactly as the agent produced it; out-of-range
// values are not rejected or clamped here.
type RoastResult struct {
	Roast    string  `json:"roast"`
	Verdict  string  `json:"verdict"`
	Score    float64 `json:"score"`
	Analysis string  `json:"analysis"`
}

// ── Leaderboard ──────────────────────────────────────────────

// LeaderboardEntry is one persisted roast outcome. Entries are append-only:
// the pipeline never updates or deletes them, and display ordering is by
// CreatedAt descending.
type LeaderboardEntry struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Score       float64   `json:"score"`
	RoastText   string    `json:"roast_text"`
	Verdict     string    `json:"verdict"`
	Analysis    string    `json:"analysis"`
	CreatedAt   time.Time `json:"created_at"`
}
