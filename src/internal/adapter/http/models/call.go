package models

import (
	"strings"
	"time"

	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateCallRequest struct {
	CallerUserID    string           `json:"callerUserId"`
	RecipientUserID *string          `json:"recipientUserId,omitempty"`
	Sum             decimal.Decimal  `json:"sum"`
	Commission      *decimal.Decimal `json:"commission,omitempty"`
	DurationSeconds int              `json:"durationSeconds"`
	CallStatus      string           `json:"callStatus,omitempty"`
	EndCall         bool             `json:"endCall"`
	ChannelName     string           `json:"channelName"`
	ThemeID         *string          `json:"themeId,omitempty"`
}

func (r CreateCallRequest) Validate() error {
	var errs validationErrors

	if strings.TrimSpace(r.CallerUserID) == "" {
		errs.add("callerUserId is required")
	}
	if r.Sum.IsNegative() {
		errs.add("sum cannot be negative")
	}
	errs.money("sum", r.Sum)
	if r.Commission != nil {
		if r.Commission.IsNegative() {
			errs.add("commission cannot be negative")
		}
		errs.money("commission", *r.Commission)
	}
	if r.DurationSeconds < 0 {
		errs.add("durationSeconds cannot be negative")
	}
	if r.CallStatus != "" && !normalizeCallStatus(r.CallStatus).Valid() {
		errs.add("callStatus is not a known call status")
	}

	return errs.err()
}

func (r CreateCallRequest) ToDomain() domain.NewCallRecord {
	status := domain.CallStatusPending
	if r.CallStatus != "" {
		status = normalizeCallStatus(r.CallStatus)
	}
	return domain.NewCallRecord{
		CallerID:        strings.TrimSpace(r.CallerUserID),
		RecipientID:     r.RecipientUserID,
		Sum:             r.Sum,
		Commission:      r.Commission,
		DurationSeconds: r.DurationSeconds,
		Status:          status,
		EndCall:         r.EndCall,
		ChannelName:     r.ChannelName,
		ThemeID:         r.ThemeID,
	}
}

type UpdateCallRequest struct {
	RecipientUserID *string          `json:"recipientUserId,omitempty"`
	Sum             *decimal.Decimal `json:"sum,omitempty"`
	Commission      *decimal.Decimal `json:"commission,omitempty"`
	DurationSeconds *int             `json:"durationSeconds,omitempty"`
	CallStatus      *string          `json:"callStatus,omitempty"`
	EndCall         *bool            `json:"endCall,omitempty"`
	ChannelName     *string          `json:"channelName,omitempty"`
	ThemeID         *string          `json:"themeId,omitempty"`
}

func (r UpdateCallRequest) Validate() error {
	var errs validationErrors

	if r.Sum != nil {
		if r.Sum.IsNegative() {
			errs.add("sum cannot be negative")
		}
		errs.money("sum", *r.Sum)
	}
	if r.Commission != nil {
		if r.Commission.IsNegative() {
			errs.add("commission cannot be negative")
		}
		errs.money("commission", *r.Commission)
	}
	if r.DurationSeconds != nil && *r.DurationSeconds < 0 {
		errs.add("durationSeconds cannot be negative")
	}
	if r.CallStatus != nil && !normalizeCallStatus(*r.CallStatus).Valid() {
		errs.add("callStatus is not a known call status")
	}

	return errs.err()
}

func (r UpdateCallRequest) ToPatch() domain.CallRecordPatch {
	patch := domain.CallRecordPatch{
		RecipientID:     r.RecipientUserID,
		Sum:             r.Sum,
		Commission:      r.Commission,
		DurationSeconds: r.DurationSeconds,
		EndCall:         r.EndCall,
		ChannelName:     r.ChannelName,
		ThemeID:         r.ThemeID,
	}
	if r.CallStatus != nil {
		status := normalizeCallStatus(*r.CallStatus)
		patch.Status = &status
	}
	return patch
}

func normalizeCallStatus(s string) domain.CallStatus {
	return domain.CallStatus(strings.ToUpper(strings.TrimSpace(s)))
}

type CallResponse struct {
	ID              string  `json:"id"`
	CallerUserID    string  `json:"callerUserId"`
	RecipientUserID *string `json:"recipientUserId,omitempty"`
	Sum             string  `json:"sum"`
	Commission      string  `json:"commission"`
	DurationSeconds int     `json:"durationSeconds"`
	CallStatus      string  `json:"callStatus"`
	EndCall         bool    `json:"endCall"`
	ChannelName     string  `json:"channelName,omitempty"`
	ThemeID         *string `json:"themeId,omitempty"`
	SettledAt       *string `json:"settledAt,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

func NewCallResponse(c domain.CallRecord) CallResponse {
	var settledAt *string
	if c.SettledAt != nil {
		formatted := c.SettledAt.UTC().Format(time.RFC3339)
		settledAt = &formatted
	}
	return CallResponse{
		ID:              c.ID,
		CallerUserID:    c.CallerID,
		RecipientUserID: c.RecipientID,
		Sum:             formatMoney(c.Sum),
		Commission:      formatMoney(c.Commission),
		DurationSeconds: c.DurationSeconds,
		CallStatus:      string(c.Status),
		EndCall:         c.EndCall,
		ChannelName:     c.ChannelName,
		ThemeID:         c.ThemeID,
		SettledAt:       settledAt,
		CreatedAt:       formatTime(c.CreatedAt),
		UpdatedAt:       formatTime(c.UpdatedAt),
	}
}
