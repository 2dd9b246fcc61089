// backend/src/handlers/transaction_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/username/propledger/backend/src/logger"
	"github.com/username/propledger/backend/src/models"
	"github.com/username/propledger/backend/src/security/validation"
	"github.com/username/propledger/backend/src/services"
	"github.com/username/propledger/backend/src/utils"
)

const (
	defaultListLimit = 500
	maxListLimit     = 5000
)

type TransactionHandler struct {
	service services.AccountingService
}

func NewTransactionHandler(service services.AccountingService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

func parseFilter(r *http.Request, companyID int64) (models.TransactionFilter, error) {
	q := r.URL.Query()
	filter := models.TransactionFilter{CompanyID: companyID, Limit: defaultListLimit}

	var err error
	if filter.From, err = validation.ValidateDateString(q.Get("from"), "from"); err != nil {
		return filter, err
	}
	if filter.To, err = validation.ValidateDateString(q.Get("to"), "to"); err != nil {
		return filter, err
	}
	if err = validation.ValidateDateRange(filter.From, filter.To); err != nil {
		return filter, err
	}
	if filter.Tipo, err = validation.ValidateTransactionType(q.Get("tipo")); err != nil {
		return filter, err
	}
	if filter.Categoria, err = validation.ValidateCategory(q.Get("categoria")); err != nil {
		return filter, err
	}
	if filter.BuildingID, err = validation.ValidateIDString(q.Get("buildingId"), "buildingId"); err != nil {
		return filter, err
	}
	if raw := q.Get("limit"); raw != "" {
		limit, convErr := strconv.Atoi(raw)
		if convErr != nil || limit <= 0 || limit > maxListLimit {
			return filter, errors.New("limit must be between 1 and 5000")
		}
		filter.Limit = limit
	}
	return filter, nil
}

func (h *TransactionHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := companyScope(w, r)
	if !ok {
		return
	}
	filter, err := parseFilter(r, companyID)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs, err := h.service.ListTransactions(filter)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to list transactions", "companyID", companyID, "error", err)
		utils.SendJSONError(w, "Failed to retrieve transactions", http.StatusInternalServerError)
		return
	}
	if txs == nil {
		txs = []models.AccountingTransaction{}
	}
	utils.SendJSON(w, txs, http.StatusOK)
}

func (h *TransactionHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := companyScope(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	from, err := validation.ValidateDateString(q.Get("from"), "from")
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	to, err := validation.ValidateDateString(q.Get("to"), "to")
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateDateRange(from, to); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.service.GetSummary(companyID, from, to)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to build summary", "companyID", companyID, "error", err)
		utils.SendJSONError(w, "Failed to build summary", http.StatusInternalServerError)
		return
	}
	if utils.CheckETag(w, r, summary) {
		return
	}
	utils.SendJSON(w, summary, http.StatusOK)
}

func (h *TransactionHandler) HandleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := companyScope(w, r)
	if !ok {
		return
	}
	id, err := validation.ValidateIDString(chi.URLParam(r, "id"), "id")
	if err != nil || id == 0 {
		utils.SendJSONError(w, "Invalid transaction id", http.StatusBadRequest)
		return
	}
	h.deleteIDs(w, r, companyID, []int64{id})
}

// DeleteRequest is the body of a batch delete.
type DeleteRequest struct {
	IDs []int64 `json:"ids"`
}

func (h *TransactionHandler) HandleDeleteTransactions(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := companyScope(w, r)
	if !ok {
		return
	}
	var req DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := validation.ValidateIDList(req.IDs); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.deleteIDs(w, r, companyID, req.IDs)
}

func (h *TransactionHandler) deleteIDs(w http.ResponseWriter, r *http.Request, companyID int64, ids []int64) {
	removed, err := h.service.DeleteTransactions(r.Context(), companyID, ids)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.SendJSONError(w, "Transaction not found", http.StatusNotFound)
			return
		}
		logger.FromContext(r.Context()).Error("Failed to delete transactions", "companyID", companyID, "error", err)
		utils.SendJSONError(w, "Failed to delete transactions", http.StatusInternalServerError)
		return
	}
	utils.SendJSON(w, map[string]int64{"deleted": removed}, http.StatusOK)
}
