package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type CallStatus string

const (
	CallStatusPending    CallStatus = "PENDING"
	CallStatusInProgress CallStatus = "IN_PROGRESS"
	CallStatusEnded      CallStatus = "ENDED"
	CallStatusCompleted  CallStatus = "COMPLETED"
	CallStatusCancelled  CallStatus = "CANCELLED"
)

func (s CallStatus) Valid() bool {
	switch s {
	case CallStatusPending, CallStatusInProgress, CallStatusEnded, CallStatusCompleted, CallStatusCancelled:
		return true
	}
	return false
}

type CallRecord struct {
	ID              string
	CallerID        string
	RecipientID     *string
	Sum             decimal.Decimal
	Commission      decimal.Decimal
	DurationSeconds int
	Status          CallStatus
	EndCall         bool
	ChannelName     string
	ThemeID         *string
	SettledAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Finished reports whether the call has reached a state that triggers
// settlement.
func (c CallRecord) Finished() bool {
	return c.EndCall || c.Status == CallStatusEnded || c.Status == CallStatusCompleted
}

func (c CallRecord) Settled() bool {
	return c.SettledAt != nil
}

func (c CallRecord) HasInterpreter() bool {
	return c.RecipientID != nil && *c.RecipientID != ""
}

// NetEarning is what the interpreter is credited: sum minus commission.
func (c CallRecord) NetEarning() decimal.Decimal {
	return c.Sum.Sub(c.Commission)
}

func (c CallRecord) Validate() error {
	if c.CallerID == "" {
		return fmt.Errorf("%w: callerUserId is required", ErrInvalidArgument)
	}
	if c.HasInterpreter() && *c.RecipientID == c.CallerID {
		return fmt.Errorf("%w: caller and recipient cannot be the same user", ErrInvalidArgument)
	}
	if c.Sum.IsNegative() {
		return fmt.Errorf("%w: sum cannot be negative", ErrInvalidArgument)
	}
	if c.Commission.IsNegative() {
		return fmt.Errorf("%w: commission cannot be negative", ErrInvalidArgument)
	}
	if err := CheckMoneyScale("sum", c.Sum); err != nil {
		return err
	}
	if err := CheckMoneyScale("commission", c.Commission); err != nil {
		return err
	}
	if c.Commission.GreaterThan(c.Sum) {
		return fmt.Errorf("%w: commission cannot exceed sum", ErrInvalidArgument)
	}
	if c.DurationSeconds < 0 {
		return fmt.Errorf("%w: duration cannot be negative", ErrInvalidArgument)
	}
	if !c.Status.Valid() {
		return fmt.Errorf("%w: unknown call status %q", ErrInvalidArgument, c.Status)
	}
	return nil
}

// CallRecordPatch carries a partial update. Nil fields are left untouched.
type CallRecordPatch struct {
	RecipientID     *string
	Sum             *decimal.Decimal
	Commission      *decimal.Decimal
	DurationSeconds *int
	Status          *CallStatus
	EndCall         *bool
	ChannelName     *string
	ThemeID         *string
}

func (p CallRecordPatch) Apply(c CallRecord) CallRecord {
	if p.RecipientID != nil {
		c.RecipientID = p.RecipientID
	}
	if p.Sum != nil {
		c.Sum = *p.Sum
	}
	if p.Commission != nil {
		c.Commission = *p.Commission
	}
	if p.DurationSeconds != nil {
		c.DurationSeconds = *p.DurationSeconds
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.EndCall != nil {
		c.EndCall = *p.EndCall
	}
	if p.ChannelName != nil {
		c.ChannelName = *p.ChannelName
	}
	if p.ThemeID != nil {
		c.ThemeID = p.ThemeID
	}
	return c
}

// NewCallRecord is the input for opening a call. A nil Commission is derived
// from the configured commission rate.
type NewCallRecord struct {
	CallerID        string
	RecipientID     *string
	Sum             decimal.Decimal
	Commission      *decimal.Decimal
	DurationSeconds int
	Status          CallStatus
	EndCall         bool
	ChannelName     string
	ThemeID         *string
}
