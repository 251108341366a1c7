package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/YuriRomanenkou/portfolio-manager/internal/api/request"
	"github.com/YuriRomanenkou/portfolio-manager/internal/api/response"
	"github.com/YuriRomanenkou/portfolio-manager/internal/model"
	"github.com/YuriRomanenkou/portfolio-manager/internal/service"
	"github.com/YuriRomanenkou/portfolio-manager/internal/validation"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// AssetTransactions returns all transactions for an asset, newest first.
//
// Endpoint: GET /api/assets/{uuid}/transactions
func (h *TransactionHandler) AssetTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionService.ListByAsset(chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, "failed to retrieve transactions", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// CreateTransaction records a transaction. Buy and sell transactions adjust
// the owning asset's quantity; valuation updates rewrite its estimated value.
//
// Endpoint: POST /api/transactions
// Response: 201 Created with the stored transaction
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction := model.Transaction{
		AssetID:      req.AssetID,
		Type:         model.TransactionType(req.Type),
		Quantity:     req.Quantity,
		PricePerUnit: req.PricePerUnit,
		TotalValue:   req.TotalValue,
		Currency:     req.Currency,
		Date:         req.Date,
		Notes:        req.Notes,
	}

	created, err := h.transactionService.Create(transaction)
	if err != nil {
		respondServiceError(w, "failed to create transaction", err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, created)
}

// DeleteTransaction removes a transaction record.
//
// Endpoint: DELETE /api/transactions/{uuid}
// Response: 204 No Content
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.transactionService.Delete(chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, "failed to delete transaction", err)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
