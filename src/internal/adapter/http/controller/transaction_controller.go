package controller

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/morago/interpreter-ledger/src/internal/adapter/http/models"
	"github.com/morago/interpreter-ledger/src/internal/usecase/service_interfaces"
)

type TransactionController struct {
	service service_interfaces.TransactionService
}

func NewTransactionController(service service_interfaces.TransactionService) *TransactionController {
	return &TransactionController{service: service}
}

func (c *TransactionController) RegisterRoutes(r chi.Router) {
	r.Get("/accounts/{id}/transactions", c.listTransactions)
	r.Get("/transactions/{id}", c.getTransaction)
}

func (c *TransactionController) listTransactions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	filter, err := models.ParseTransactionFilter(r.URL.Query())
	if err != nil {
		reject[[]models.TransactionResponse](w, r, start, http.StatusBadRequest, "validation failed", err)
		return
	}

	entries, err := c.service.ListByUser(r.Context(), chi.URLParam(r, "id"), filter)
	if err != nil {
		fail[[]models.TransactionResponse](w, r, start, err)
		return
	}
	respond(w, r, start, http.StatusOK, "transactions retrieved", models.NewTransactionResponses(entries))
}

func (c *TransactionController) getTransaction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	entry, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail[models.TransactionResponse](w, r, start, err)
		return
	}
	respond(w, r, start, http.StatusOK, "transaction retrieved", models.NewTransactionResponse(entry))
}
