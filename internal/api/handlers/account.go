package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/streamvault/internal/api/dto"
	"github.com/pratik-mahalle/streamvault/internal/domain/account"
	"github.com/pratik-mahalle/streamvault/internal/pkg/errors"
	"github.com/pratik-mahalle/streamvault/internal/pkg/logger"
	"github.com/pratik-mahalle/streamvault/internal/pkg/utils"
)

type AccountHandler struct {
	service account.Service
	logger  *logger.Logger
}

func NewAccountHandler(service account.Service, log *logger.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		logger:  log,
	}
}

// List returns the accounts matching the query filters
// @Summary List accounts
// @Description List streaming accounts in insertion order. Every criterion accepts "all" for no restriction.
// @Tags Accounts
// @Produce json
// @Param search query string false "Case-insensitive substring of the client name"
// @Param platform query string false "Exact platform"
// @Param accountType query string false "Exact account type"
// @Param status query string false "Exact stored status"
// @Param lifecycle query string false "Computed lifecycle (active, expiring, expired)"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.AccountDTO} "Matching accounts"
// @Failure 400 {object} utils.ErrorResponse "Unknown lifecycle"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /accounts [get]
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := account.Filter{
		Search:      q.Get("search"),
		Platform:    q.Get("platform"),
		AccountType: q.Get("accountType"),
		Status:      q.Get("status"),
	}

	if raw := q.Get("lifecycle"); raw != "" && raw != account.FilterAll {
		l, err := account.ParseLifecycle(raw)
		if err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid lifecycle filter"))
			return
		}
		filter.Lifecycle = l
	}

	// One instant for both the lifecycle filter and the labels
	now := h.service.Now()
	filter.AsOf = now

	accounts, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to list accounts")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromAccounts(accounts, now))
}

// Statistics returns lifecycle counts over every stored account
// @Summary Account statistics
// @Description Count every stored account by computed lifecycle. Filters do not apply.
// @Tags Accounts
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.StatisticsDTO} "Lifecycle counts"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /accounts/statistics [get]
func (h *AccountHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Statistics(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to compute statistics")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromStatistics(stats))
}

// Options returns the suggestion lists for the console pickers
// @Summary Picker options
// @Tags Accounts
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.OptionsDTO} "Suggested values"
// @Router /accounts/options [get]
func (h *AccountHandler) Options(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, dto.DefaultOptions())
}

// Get returns a single account
// @Summary Get account by ID
// @Tags Accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.AccountDTO} "Account details"
// @Failure 400 {object} utils.ErrorResponse "Invalid account ID"
// @Failure 404 {object} utils.ErrorResponse "Account not found"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /accounts/{id} [get]
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, appErr := parseID(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	a, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to get account")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromAccount(a, h.service.Now()))
}

// Create creates a new account
// @Summary Create account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body account.Input true "Account details"
// @Success 201 {object} utils.SuccessResponse{data=dto.AccountDTO} "Created account"
// @Failure 400 {object} utils.ErrorResponse "Invalid request or validation error"
// @Failure 413 {object} utils.ErrorResponse "Request body too large"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /accounts [post]
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req account.Input
	if appErr := decodeJSON(w, r, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	a, err := h.service.Create(r.Context(), req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to create account")
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, dto.FromAccount(a, h.service.Now()))
}

// Update applies a partial update to an account
// @Summary Update account
// @Description Fields left out are unchanged. An explicit null clears credentials, notes or price.
// @Tags Accounts
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param request body account.UpdateInput true "Fields to change"
// @Success 200 {object} utils.SuccessResponse{data=dto.AccountDTO} "Updated account"
// @Failure 400 {object} utils.ErrorResponse "Invalid request or validation error"
// @Failure 413 {object} utils.ErrorResponse "Request body too large"
// @Failure 404 {object} utils.ErrorResponse "Account not found"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /accounts/{id} [put]
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, appErr := parseID(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	var req account.UpdateInput
	if appErr := decodeJSON(w, r, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	a, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update account")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.FromAccount(a, h.service.Now()))
}

// Delete removes an account
// @Summary Delete account
// @Tags Accounts
// @Param id path int true "Account ID"
// @Success 204 "Account deleted"
// @Failure 400 {object} utils.ErrorResponse "Invalid account ID"
// @Failure 404 {object} utils.ErrorResponse "Account not found"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /accounts/{id} [delete]
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, appErr := parseID(r)
	if appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "Failed to delete account")
		return
	}

	utils.WriteNoContent(w)
}
