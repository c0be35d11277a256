package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/streamvault/internal/pkg/errors"
	"github.com/pratik-mahalle/streamvault/internal/pkg/logger"
	"github.com/pratik-mahalle/streamvault/internal/pkg/utils"
)

// parseID reads the numeric {id} path parameter
func parseID(r *http.Request) (int64, *errors.AppError) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest("Invalid account ID")
	}
	return id, nil
}

// MaxRecordBodyBytes caps create and update bodies
const MaxRecordBodyBytes int64 = 1 << 20

// decodeJSON decodes a single-record request body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) *errors.AppError {
	body := http.MaxBytesReader(w, r.Body, MaxRecordBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return errors.New(errors.ErrCodeBadRequest, "Request body too large", http.StatusRequestEntityTooLarge)
		}
		return errors.BadRequest("Invalid request body")
	}
	return nil
}

// respondServiceError writes err, logging anything that is not a client error
func respondServiceError(w http.ResponseWriter, log *logger.Logger, err error, msg string) {
	appErr, ok := errors.From(err)
	if !ok {
		appErr = errors.Internal(msg, err)
	}
	if appErr.StatusCode >= http.StatusInternalServerError {
		log.ErrorWithErr(err, msg)
	}
	utils.WriteError(w, appErr)
}
