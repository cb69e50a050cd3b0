// Package handlers exposes the HTTP API: transcript acquisition, language
// listing, and summarization.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ytdigest/ytdigest/config"
	apperrors "github.com/ytdigest/ytdigest/errors"
	"github.com/ytdigest/ytdigest/services/languages"
	"github.com/ytdigest/ytdigest/services/summary"
	"github.com/ytdigest/ytdigest/services/transcript"
	"github.com/ytdigest/ytdigest/utils"
	"github.com/ytdigest/ytdigest/validation"
)

type Handler struct {
	transcripts transcript.Service
	languages   languages.Service
	summaries   summary.Service
	config      *config.Config
}

func New(transcripts transcript.Service, langs languages.Service, summaries summary.Service, cfg *config.Config) *Handler {
	return &Handler{
		transcripts: transcripts,
		languages:   langs,
		summaries:   summaries,
		config:      cfg,
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/transcript", h.Transcript)
	mux.HandleFunc("/api/languages", h.Languages)
	mux.HandleFunc("/api/summarize", h.Summarize)
	mux.HandleFunc("/health", h.Health)
}

type transcriptRequest struct {
	URL      string `json:"url"`
	Language string `json:"language,omitempty"`
	Service  string `json:"service,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
}

type transcriptResponse struct {
	VideoID      string `json:"video_id"`
	Transcript   string `json:"transcript"`
	Source       string `json:"source"`
	LanguageCode string `json:"language_code,omitempty"`
	Summary      string `json:"summary,omitempty"`
	SummaryError string `json:"summary_error,omitempty"`
}

// Transcript acquires a transcript and, when a summarization provider can be
// resolved, a summary of it. A summarization failure does not discard the
// transcript; it is reported alongside it.
func (h *Handler) Transcript(w http.ResponseWriter, r *http.Request) {
	logRequest(r)
	if r.Method != http.MethodPost {
		utils.HandleError(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	var req transcriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.HandleError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	videoID, err := h.resolveVideoID(w, req.URL)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	result, err := h.transcripts.Acquire(ctx, videoID, req.Language)
	if err != nil {
		handleAcquisitionError(w, videoID, err)
		return
	}

	resp := transcriptResponse{
		VideoID:      videoID,
		Transcript:   result.Text,
		Source:       string(result.Source),
		LanguageCode: result.LanguageCode,
	}

	provider := req.Service
	if provider == "" {
		provider = h.config.DefaultProvider
	}
	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = h.config.ProviderKey(provider)
	}

	summaryText, err := h.summaries.Summarize(ctx, summary.Request{
		Text:     result.Text,
		Provider: provider,
		APIKey:   apiKey,
	})
	if err != nil {
		logrus.WithError(err).WithField("video_id", videoID).Warn("Summarization failed, returning transcript only")
		resp.SummaryError = err.Error()
	} else {
		resp.Summary = summaryText
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}

type languagesRequest struct {
	URL string `json:"url"`
}

type languageEntry struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
	Generated   bool   `json:"generated"`
}

func (h *Handler) Languages(w http.ResponseWriter, r *http.Request) {
	logRequest(r)
	if r.Method != http.MethodPost {
		utils.HandleError(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	var req languagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.HandleError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	videoID, err := h.resolveVideoID(w, req.URL)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	options := h.languages.List(ctx, videoID)
	entries := make([]languageEntry, 0, len(options))
	for _, opt := range options {
		entries = append(entries, languageEntry{
			Code:        opt.Code,
			DisplayName: opt.DisplayName,
			Generated:   opt.Origin.Generated(),
		})
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"video_id":  videoID,
		"languages": entries,
	})
}

type summarizeRequest struct {
	Text    string `json:"text"`
	Service string `json:"service,omitempty"`
	APIKey  string `json:"api_key,omitempty"`
}

func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	logRequest(r)
	if r.Method != http.MethodPost {
		utils.HandleError(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.HandleError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		utils.HandleError(w, "Text is required", http.StatusBadRequest)
		return
	}

	provider := req.Service
	if provider == "" {
		provider = h.config.DefaultProvider
	}
	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = h.config.ProviderKey(provider)
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	summaryText, err := h.summaries.Summarize(ctx, summary.Request{
		Text:     req.Text,
		Provider: provider,
		APIKey:   apiKey,
	})
	if err != nil {
		handleSummarizationError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"summary":  summaryText,
		"provider": provider,
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) resolveVideoID(w http.ResponseWriter, rawURL string) (string, error) {
	if err := validation.ValidateURL(rawURL); err != nil {
		writeAppError(w, err)
		return "", err
	}
	videoID, err := validation.ExtractVideoID(rawURL)
	if err != nil {
		writeAppError(w, err)
		return "", err
	}
	return videoID, nil
}

// handleAcquisitionError maps pipeline failures onto AppError HTTP codes.
func handleAcquisitionError(w http.ResponseWriter, videoID string, err error) {
	const op = "Handler.Transcript"

	var acqErr *transcript.AcquisitionError
	if !errors.As(err, &acqErr) {
		logrus.WithError(err).WithField("video_id", videoID).Error("Transcript acquisition failed")
		writeAppError(w, apperrors.Internal(op, err, "An error occurred while processing your request. Please try again later."))
		return
	}

	logrus.WithError(acqErr).WithField("video_id", videoID).Warn("Transcript acquisition failed")
	switch acqErr.Kind {
	case transcript.ErrVideoUnavailable, transcript.ErrNoCaptionsFound:
		writeAppError(w, apperrors.NotFound(op, acqErr, acqErr.Message))
	case transcript.ErrTransientNetwork:
		writeAppError(w, apperrors.Unavailable(op, acqErr, acqErr.Message))
	default:
		writeAppError(w, apperrors.Internal(op, acqErr, acqErr.Message))
	}
}

// handleSummarizationError maps gateway failures onto AppError HTTP codes.
func handleSummarizationError(w http.ResponseWriter, err error) {
	const op = "Handler.Summarize"

	var sumErr *summary.SummarizationError
	if !errors.As(err, &sumErr) {
		logrus.WithError(err).Error("Summarization failed")
		writeAppError(w, apperrors.Internal(op, err, "An error occurred while processing your request. Please try again later."))
		return
	}

	logrus.WithError(sumErr).Warn("Summarization failed")
	switch sumErr.Kind {
	case summary.UnsupportedProvider:
		writeAppError(w, apperrors.InvalidInput(op, sumErr, sumErr.Message))
	case summary.MissingCredential:
		writeAppError(w, apperrors.Unauthorized(op, sumErr, sumErr.Message))
	case summary.Timeout:
		writeAppError(w, apperrors.Timeout(op, sumErr, sumErr.Message))
	default:
		writeAppError(w, apperrors.Unavailable(op, sumErr, sumErr.Message))
	}
}

// writeAppError renders an AppError as a JSON error response with its HTTP
// code. Anything else gets a generic 500.
func writeAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		utils.HandleError(w, appErr.Message, appErr.Code)
		return
	}
	utils.HandleError(w, "An error occurred while processing your request. Please try again later.", http.StatusInternalServerError)
}

func logRequest(r *http.Request) {
	logrus.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Info("Received request")
}
