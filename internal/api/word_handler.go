package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/lexiquiz/lexiquiz-api/internal/api/shared"
	"github.com/lexiquiz/lexiquiz-api/internal/domain"
	"github.com/lexiquiz/lexiquiz-api/internal/platform/logger"
	"github.com/lexiquiz/lexiquiz-api/internal/platform/spreadsheet"
	"github.com/lexiquiz/lexiquiz-api/internal/service"
)

// MaxUploadBytes limits the size of an imported spreadsheet.
const MaxUploadBytes = 5 << 20

// WordHandler handles the vocabulary list.
type WordHandler struct {
	words  service.WordService
	logger *slog.Logger
}

// NewWordHandler creates a new WordHandler.
func NewWordHandler(words service.WordService, logger *slog.Logger) (*WordHandler, error) {
	if words == nil {
		return nil, domain.NewValidationError("words", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WordHandler{words: words, logger: logger.With(slog.String("component", "word_handler"))}, nil
}

// ListWords handles GET /words.
func (h *WordHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	words, err := h.words.ListWords(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list words")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, wordsToResponse(words))
}

// CreateWord handles POST /words.
func (h *WordHandler) CreateWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	var req CreateWordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	word, err := h.words.AddWord(r.Context(), userID, req.Original, req.Translated)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, wordToResponse(*word))
}

// DeleteWord handles DELETE /words/{id}.
func (h *WordHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	wordID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.words.DeleteWord(r.Context(), userID, wordID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ImportWords handles POST /words/import, a multipart upload with the
// spreadsheet in the "file" field.
func (h *WordHandler) ImportWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, h.logger)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid upload", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Missing file field", err)
		return
	}
	defer func() { _ = file.Close() }()

	sheet, err := spreadsheet.ReadPairs(file, header.Filename)
	if err != nil {
		if errors.Is(err, spreadsheet.ErrUnsupportedFormat) {
			HandleAPIError(w, r, err, "")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Could not read file", err)
		return
	}

	result, err := h.words.ImportWords(r.Context(), userID, sheet)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("spreadsheet imported",
		slog.String("user_id", userID.String()),
		slog.String("filename", header.Filename),
		slog.Int("imported", len(result.Imported)))

	skipped := result.SkippedRows
	if skipped == nil {
		skipped = []int{}
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, ImportResponse{
		Imported:    len(result.Imported),
		SkippedRows: skipped,
		Words:       wordsToResponse(result.Imported),
	})
}
