package handlers

import (
	"encoding/json"
	"net/http"

	"skillbridge/internal/models"
	"skillbridge/internal/service"
)

// AccountHandler handles account registration and administration endpoints
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

type registerRequest struct {
	Role string `json:"role"`
}

// Register handles POST /v1/accounts/register. Registering with the role the
// account already holds is a no-op; a different role switches the account and
// recomputes approval.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentityFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	account, err := h.accountService.ResolveOrRegister(r.Context(), identity, models.Role(req.Role))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, toAccountResponse(account))
}

// Me handles GET /v1/accounts/me
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	account := GetAccountFromContext(r.Context())
	respondWithJSON(w, http.StatusOK, toAccountResponse(account))
}

// Get handles GET /v1/accounts/{id}
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	accountID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	account, err := h.accountService.GetAccount(*actor, accountID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toAccountResponse(account))
}

// List handles GET /v1/accounts
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())
	skip, limit := parsePagination(r)

	accounts, err := h.accountService.ListAccounts(*actor, skip, limit)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toAccountResponses(accounts))
}

// ListPending handles GET /v1/accounts/pending
func (h *AccountHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	accounts, err := h.accountService.ListPendingVolunteers(*actor)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toAccountResponses(accounts))
}

// Approve handles POST /v1/accounts/{id}/approve
func (h *AccountHandler) Approve(w http.ResponseWriter, r *http.Request) {
	actor := GetAccountFromContext(r.Context())

	accountID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	account, err := h.accountService.Approve(r.Context(), *actor, accountID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toAccountResponse(account))
}
