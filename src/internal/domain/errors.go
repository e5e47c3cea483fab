package domain

import "errors"

var ErrRecordNotFound = errors.New("Record not found")
var ErrInsufficientBalance = errors.New("Insufficient balance")
var ErrInvalidArgument = errors.New("Invalid argument")
var ErrForbidden = errors.New("Forbidden")
var ErrDebtBlocked = errors.New("Account has outstanding debt")
var ErrConflict = errors.New("Conflicting state transition")
var ErrPersistence = errors.New("Persistence failure")
