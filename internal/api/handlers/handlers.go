// Package handlers implements the HTTP handlers for the Roastboard backend.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/roastboard/roastboard/internal/analyzer"
	"github.com/roastboard/roastboard/internal/nickname"
	"github.com/roastboard/roastboard/internal/store"
	"github.com/roastboard/roastboard/pkg/models"
	"github.com/rs/zerolog/log"
)

// maxUploadBytes bounds the in-memory portion of multipart parsing.
const maxUploadBytes = 32 << 20

// maxLeaderboardLimit caps the leaderboard page size a caller may request.
const maxLeaderboardLimit = 100

// Handlers holds all handler dependencies.
type Handlers struct {
	Analyzer  *analyzer.Analyzer
	Store     store.Store
	Nicknames *nickname.Provider
}

// New creates a new Handlers instance.
func New(a *analyzer.Analyzer, s store.Store, n *nickname.Provider) *Handlers {
	return &Handlers{Analyzer: a, Store: s, Nicknames: n}
}

// Analyze accepts a multipart form (nickname, text, files) and returns a
// roast result. The response is always 200 with a result — degraded when
// the pipeline failed — except for a missing nickname, which is the one
// rejection the contract allows.
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	req := models.AnalysisRequest{
		DisplayName: r.FormValue("nickname"),
		Text:        r.FormValue("text"),
	}

	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["files"] {
			f, err := fh.Open()
			if err != nil {
				respondError(w, http.StatusBadRequest, "unreadable file upload")
				return
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				respondError(w, http.StatusBadRequest, "unreadable file upload")
				return
			}
			req.Attachments = append(req.Attachments, models.Attachment{
				Data:     data,
				MIMEType: fh.Header.Get("Content-Type"),
			})
		}
	}

	result, err := h.Analyzer.Analyze(r.Context(), req)
	if err != nil {
		var aerr *analyzer.Error
		if errors.As(err, &aerr) && aerr.Kind == analyzer.KindValidation {
			respondError(w, http.StatusBadRequest, aerr.Err.Error())
			return
		}
		// The analyzer contract absorbs everything else; reaching here
		// would be a bug, but degrade anyway rather than leak an error.
		log.Error().Err(err).Msg("unexpected analyzer error")
		respondJSON(w, http.StatusOK, analyzer.DegradedResult())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Leaderboard returns the most recent roast entries, newest first.
func (h *Handlers) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultLeaderboardLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		if n > maxLeaderboardLimit {
			n = maxLeaderboardLimit
		}
		limit = n
	}

	entries, err := h.Store.TopEntries(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("leaderboard read failed")
		respondError(w, http.StatusInternalServerError, "leaderboard unavailable")
		return
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	respondJSON(w, http.StatusOK, entries)
}

// Nickname returns a generated display name, or a preset fallback when
// generation is unavailable. Never an error.
func (h *Handlers) Nickname(w http.ResponseWriter, r *http.Request) {
	name := h.Nicknames.Generate(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"nickname": name})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
