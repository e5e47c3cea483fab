package controller

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/morago/interpreter-ledger/src/internal/adapter/http/middleware"
	"github.com/morago/interpreter-ledger/src/internal/adapter/http/models"
	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/morago/interpreter-ledger/src/internal/usecase/service_interfaces"
)

type WithdrawalController struct {
	service service_interfaces.WithdrawalService
}

func NewWithdrawalController(service service_interfaces.WithdrawalService) *WithdrawalController {
	return &WithdrawalController{service: service}
}

func (c *WithdrawalController) RegisterRoutes(r chi.Router) {
	r.Post("/withdrawals", c.requestWithdrawal)
	r.Get("/withdrawals", c.listWithdrawals)
	r.Get("/withdrawals/{id}", c.getWithdrawal)
	r.Put("/withdrawals/{id}/status", c.decideWithdrawal)
}

func (c *WithdrawalController) requestWithdrawal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateWithdrawalRequest
	if !decodeBody[models.CreateWithdrawalRequest, models.WithdrawalResponse](w, r, start, &req) {
		return
	}

	withdrawal, err := c.service.Request(r.Context(), middleware.ActorFrom(r.Context()), req.Sum, req.Bank())
	if err != nil {
		fail[models.WithdrawalResponse](w, r, start, err)
		return
	}
	respond(w, r, start, http.StatusCreated, "withdrawal requested", models.NewWithdrawalResponse(withdrawal))
}

func (c *WithdrawalController) listWithdrawals(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	filter, err := models.ParseWithdrawalFilter(r.URL.Query())
	if err != nil {
		reject[[]models.WithdrawalResponse](w, r, start, http.StatusBadRequest, "validation failed", err)
		return
	}

	items, err := c.service.List(r.Context(), filter)
	if err != nil {
		fail[[]models.WithdrawalResponse](w, r, start, err)
		return
	}
	respond(w, r, start, http.StatusOK, "withdrawals retrieved", models.NewWithdrawalResponses(items))
}

func (c *WithdrawalController) getWithdrawal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	withdrawal, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail[models.WithdrawalResponse](w, r, start, err)
		return
	}
	respond(w, r, start, http.StatusOK, "withdrawal retrieved", models.NewWithdrawalResponse(withdrawal))
}

func (c *WithdrawalController) decideWithdrawal(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.StatusRequest
	if !decodeBody[models.StatusRequest, models.WithdrawalResponse](w, r, start, &req) {
		return
	}

	withdrawal, err := c.service.Decide(r.Context(), middleware.ActorFrom(r.Context()), chi.URLParam(r, "id"), domain.WithdrawalStatus(req.Status))
	if err != nil {
		fail[models.WithdrawalResponse](w, r, start, err)
		return
	}
	respond(w, r, start, http.StatusOK, "withdrawal updated", models.NewWithdrawalResponse(withdrawal))
}
