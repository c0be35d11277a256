package handlers

import (
	stderrors "errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/streamvault/internal/domain/account"
	"github.com/pratik-mahalle/streamvault/internal/pkg/errors"
	"github.com/pratik-mahalle/streamvault/internal/pkg/logger"
	"github.com/pratik-mahalle/streamvault/internal/pkg/metrics"
	"github.com/pratik-mahalle/streamvault/internal/pkg/utils"
)

// DefaultMaxImportBytes caps an import body when no limit is configured
const DefaultMaxImportBytes int64 = 10 << 20

type TransferHandler struct {
	service        account.TransferService
	logger         *logger.Logger
	maxImportBytes int64
}

func NewTransferHandler(service account.TransferService, log *logger.Logger, maxImportBytes int64) *TransferHandler {
	if maxImportBytes <= 0 {
		maxImportBytes = DefaultMaxImportBytes
	}
	return &TransferHandler{
		service:        service,
		logger:         log,
		maxImportBytes: maxImportBytes,
	}
}

// Export downloads every stored account
// @Summary Export accounts
// @Description Download the whole collection as streaming_accounts.{json,yaml,csv}. Filters do not apply.
// @Tags Transfer
// @Produce json
// @Produce application/yaml
// @Produce text/csv
// @Param format path string false "Export format (json, yaml, csv)"
// @Success 200 {file} file "Export document"
// @Failure 400 {object} utils.ErrorResponse "Unsupported format"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /accounts/export/{format} [get]
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "format")
	if name == "" {
		name = r.URL.Query().Get("format")
	}

	format, err := account.ParseExportFormat(name)
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Unsupported export format"))
		return
	}

	accounts, err := h.service.Export(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to export accounts")
		return
	}

	body, err := account.Encode(format, accounts)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to encode export")
		return
	}

	metrics.RecordExport(string(format))
	utils.WriteAttachment(w, format.ContentType(), format.Filename(), body)
}

// Import creates one account per valid entry
// @Summary Import accounts
// @Description Accepts {"accounts": [...]} or a bare array. Invalid entries are reported by index and skipped.
// @Tags Transfer
// @Accept json
// @Produce json
// @Param request body dto.ImportRequest true "Accounts to import"
// @Success 200 {object} utils.SuccessResponse{data=account.ImportResult} "Import summary"
// @Failure 400 {object} utils.ErrorResponse "Malformed import document"
// @Failure 413 {object} utils.ErrorResponse "Import document too large"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /accounts/import [post]
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			utils.WriteError(w, errors.New(errors.ErrCodeBadRequest, "Import document too large", http.StatusRequestEntityTooLarge))
			return
		}
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	entries, err := account.DecodeImport(body)
	if err != nil {
		utils.WriteError(w, errors.BadRequest(err.Error()))
		return
	}

	result, err := h.service.Import(r.Context(), entries)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to import accounts")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, result)
}
