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

type DepositController struct {
	service service_interfaces.DepositService
}

func NewDepositController(service service_interfaces.DepositService) *DepositController {
	return &DepositController{service: service}
}

func (c *DepositController) RegisterRoutes(r chi.Router) {
	r.Post("/deposits", c.createDeposit)
	r.Get("/deposits/{id}", c.getDeposit)
	r.Put("/deposits/{id}/status", c.decideDeposit)
}

func (c *DepositController) createDeposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateDepositRequest
	if !decodeBody[models.CreateDepositRequest, models.DepositResponse](w, r, start, &req) {
		return
	}

	deposit, err := c.service.Create(r.Context(), middleware.ActorFrom(r.Context()), req.Sum, req.Bank())
	if err != nil {
		fail[models.DepositResponse](w, r, start, err)
		return
	}
	respond(w, r, start, http.StatusCreated, "deposit created", models.NewDepositResponse(deposit))
}

func (c *DepositController) getDeposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	deposit, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail[models.DepositResponse](w, r, start, err)
		return
	}
	respond(w, r, start, http.StatusOK, "deposit retrieved", models.NewDepositResponse(deposit))
}

func (c *DepositController) decideDeposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.StatusRequest
	if !decodeBody[models.StatusRequest, models.DepositResponse](w, r, start, &req) {
		return
	}

	deposit, err := c.service.Decide(r.Context(), middleware.ActorFrom(r.Context()), chi.URLParam(r, "id"), domain.DepositStatus(req.Status))
	if err != nil {
		fail[models.DepositResponse](w, r, start, err)
		return
	}
	respond(w, r, start, http.StatusOK, "deposit updated", models.NewDepositResponse(deposit))
}
