package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/morago/interpreter-ledger/src/internal/commons"
	"github.com/morago/interpreter-ledger/src/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respond[T any](w http.ResponseWriter, r *http.Request, start time.Time, status int, message string, data T) {
	response := commons.SuccessResponse(message, data)
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func reject[T any](w http.ResponseWriter, r *http.Request, start time.Time, status int, message string, err error) {
	logError(r, err, nil)
	response := commons.ErrorResponse[T](message, err.Error())
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

// fail maps a service error onto its HTTP status. Internal failures never
// leak their cause to the caller.
func fail[T any](w http.ResponseWriter, r *http.Request, start time.Time, err error) {
	status, message := statusFor(err)
	logError(r, err, nil)

	var response commons.Response[T]
	if status == http.StatusInternalServerError {
		response = commons.ErrorResponse[T](message)
	} else {
		response = commons.ErrorResponse[T](message, err.Error())
	}
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, "validation failed"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity, "insufficient balance"
	case errors.Is(err, domain.ErrDebtBlocked):
		return http.StatusUnprocessableEntity, "outstanding debt blocks withdrawal"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// decodeBody decodes and validates a request body, writing the 400 itself
// when either step fails.
func decodeBody[Req interface{ Validate() error }, Resp any](w http.ResponseWriter, r *http.Request, start time.Time, req *Req) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		reject[Resp](w, r, start, http.StatusBadRequest, "invalid request body", err)
		return false
	}
	logRequest(r, *req)

	if err := (*req).Validate(); err != nil {
		reject[Resp](w, r, start, http.StatusBadRequest, "validation failed", err)
		return false
	}
	return true
}
