package controller

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/morago/interpreter-ledger/src/internal/adapter/http/middleware"
	"github.com/morago/interpreter-ledger/src/internal/adapter/http/models"
	"github.com/morago/interpreter-ledger/src/internal/usecase/service_interfaces"
)

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(r chi.Router) {
	r.Post("/accounts", c.createAccount)
	r.Get("/accounts/{id}", c.getAccount)
	r.Post("/accounts/{id}/debts", c.assignDebt)
	r.Put("/accounts/{id}/balance", c.adjustBalance)
	r.Post("/accounts/{id}/refunds", c.refund)
}

func (c *AccountController) createAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateAccountRequest
	if !decodeBody[models.CreateAccountRequest, models.AccountResponse](w, r, start, &req) {
		return
	}

	account, err := c.service.Create(r.Context(), req.ToDomain())
	if err != nil {
		fail[models.AccountResponse](w, r, start, err)
		return
	}
	respond(w, r, start, http.StatusCreated, "account created", models.NewAccountResponse(account))
}

func (c *AccountController) getAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	account, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail[models.AccountResponse](w, r, start, err)
		return
	}
	respond(w, r, start, http.StatusOK, "account retrieved", models.NewAccountResponse(account))
}

func (c *AccountController) assignDebt(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.AmountRequest
	if !decodeBody[models.AmountRequest, models.AccountResponse](w, r, start, &req) {
		return
	}

	account, err := c.service.AssignDebt(r.Context(), middleware.ActorFrom(r.Context()), chi.URLParam(r, "id"), req.Amount, req.Note)
	if err != nil {
		fail[models.AccountResponse](w, r, start, err)
		return
	}
	respond(w, r, start, http.StatusOK, "debt assigned", models.NewAccountResponse(account))
}

func (c *AccountController) adjustBalance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.AdjustBalanceRequest
	if !decodeBody[models.AdjustBalanceRequest, models.TransactionResponse](w, r, start, &req) {
		return
	}

	entry, err := c.service.AdjustBalance(r.Context(), middleware.ActorFrom(r.Context()), chi.URLParam(r, "id"), req.Balance, req.Note)
	if err != nil {
		fail[models.TransactionResponse](w, r, start, err)
		return
	}
	respond(w, r, start, http.StatusOK, "balance adjusted", models.NewTransactionResponse(entry))
}

func (c *AccountController) refund(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.AmountRequest
	if !decodeBody[models.AmountRequest, models.TransactionResponse](w, r, start, &req) {
		return
	}

	entry, err := c.service.Refund(r.Context(), middleware.ActorFrom(r.Context()), chi.URLParam(r, "id"), req.Amount, req.Note)
	if err != nil {
		fail[models.TransactionResponse](w, r, start, err)
		return
	}
	respond(w, r, start, http.StatusCreated, "refund recorded", models.NewTransactionResponse(entry))
}
