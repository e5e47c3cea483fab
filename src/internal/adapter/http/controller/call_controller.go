package controller

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/morago/interpreter-ledger/src/internal/adapter/http/models"
	"github.com/morago/interpreter-ledger/src/internal/usecase/service_interfaces"
)

type CallController struct {
	service service_interfaces.CallRecordService
}

func NewCallController(service service_interfaces.CallRecordService) *CallController {
	return &CallController{service: service}
}

func (c *CallController) RegisterRoutes(r chi.Router) {
	r.Post("/calls", c.createCall)
	r.Get("/calls/{id}", c.getCall)
	r.Patch("/calls/{id}", c.updateCall)
}

func (c *CallController) createCall(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateCallRequest
	if !decodeBody[models.CreateCallRequest, models.CallResponse](w, r, start, &req) {
		return
	}

	call, err := c.service.Create(r.Context(), req.ToDomain())
	if err != nil {
		fail[models.CallResponse](w, r, start, err)
		return
	}
	respond(w, r, start, http.StatusCreated, "call record created", models.NewCallResponse(call))
}

func (c *CallController) getCall(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	call, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail[models.CallResponse](w, r, start, err)
		return
	}
	respond(w, r, start, http.StatusOK, "call record retrieved", models.NewCallResponse(call))
}

// updateCall applies a partial update. Finishing the call settles balances
// in the same request; a failed settlement leaves the record unchanged.
func (c *CallController) updateCall(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.UpdateCallRequest
	if !decodeBody[models.UpdateCallRequest, models.CallResponse](w, r, start, &req) {
		return
	}

	call, err := c.service.Update(r.Context(), chi.URLParam(r, "id"), req.ToPatch())
	if err != nil {
		fail[models.CallResponse](w, r, start, err)
		return
	}
	respond(w, r, start, http.StatusOK, "call record updated", models.NewCallResponse(call))
}
