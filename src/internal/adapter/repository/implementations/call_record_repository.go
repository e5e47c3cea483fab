package implementations

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/morago/interpreter-ledger/src/internal/logger"
)

type CallRecordRepository struct {
	db *sql.DB
}

func NewCallRecordRepository(db *sql.DB) *CallRecordRepository {
	return &CallRecordRepository{db: db}
}

const callRecordColumns = `id, caller_user_id, recipient_user_id, sum, commission, duration_seconds,
       call_status, end_call, channel_name, theme_id, settled_at, created_at, updated_at`

func (r *CallRecordRepository) Create(ctx context.Context, call domain.CallRecord) (domain.CallRecord, error) {
	if call.ID == "" {
		call.ID = uuid.NewString()
	}
	logger.Info("call record repository create", logger.Fields{
		"callId":   call.ID,
		"callerId": call.CallerID,
		"status":   call.Status,
	})

	const query = `
INSERT INTO call_records (
	id,
	caller_user_id,
	recipient_user_id,
	sum,
	commission,
	duration_seconds,
	call_status,
	end_call,
	channel_name,
	theme_id
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING created_at, updated_at`

	if err := conn(ctx, r.db).QueryRowContext(
		ctx,
		query,
		call.ID,
		call.CallerID,
		nullString(call.RecipientID),
		call.Sum,
		call.Commission,
		call.DurationSeconds,
		call.Status,
		call.EndCall,
		call.ChannelName,
		nullString(call.ThemeID),
	).Scan(&call.CreatedAt, &call.UpdatedAt); err != nil {
		logger.Error("call record repository create failed", err, logger.Fields{
			"callId": call.ID,
		})
		return domain.CallRecord{}, storeErr("create call record", err)
	}

	logger.Info("call record repository create success", logger.Fields{
		"callId": call.ID,
	})
	return call, nil
}

func (r *CallRecordRepository) Get(ctx context.Context, id string) (domain.CallRecord, error) {
	return r.get(ctx, id, false)
}

func (r *CallRecordRepository) GetForUpdate(ctx context.Context, id string) (domain.CallRecord, error) {
	return r.get(ctx, id, true)
}

func (r *CallRecordRepository) get(ctx context.Context, id string, forUpdate bool) (domain.CallRecord, error) {
	query := `SELECT ` + callRecordColumns + ` FROM call_records WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	call, err := scanCallRecord(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
			logger.Info("call record repository record not found", logger.Fields{
				"callId": id,
			})
			return domain.CallRecord{}, domain.ErrRecordNotFound
		}
		logger.Error("call record repository get failed", err, logger.Fields{
			"callId": id,
		})
		return domain.CallRecord{}, storeErr("get call record", err)
	}
	return call, nil
}

func (r *CallRecordRepository) Update(ctx context.Context, call domain.CallRecord) (domain.CallRecord, error) {
	logger.Info("call record repository update", logger.Fields{
		"callId":  call.ID,
		"status":  call.Status,
		"endCall": call.EndCall,
		"settled": call.Settled(),
	})

	const query = `
UPDATE call_records
SET recipient_user_id = $2,
    sum = $3,
    commission = $4,
    duration_seconds = $5,
    call_status = $6,
    end_call = $7,
    channel_name = $8,
    theme_id = $9,
    settled_at = $10,
    updated_at = NOW()
WHERE id = $1
RETURNING updated_at`

	var settledAt sql.NullTime
	if call.SettledAt != nil {
		settledAt = sql.NullTime{Time: *call.SettledAt, Valid: true}
	}

	if err := conn(ctx, r.db).QueryRowContext(
		ctx,
		query,
		call.ID,
		nullString(call.RecipientID),
		call.Sum,
		call.Commission,
		call.DurationSeconds,
		call.Status,
		call.EndCall,
		call.ChannelName,
		nullString(call.ThemeID),
		settledAt,
	).Scan(&call.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CallRecord{}, domain.ErrRecordNotFound
		}
		logger.Error("call record repository update failed", err, logger.Fields{
			"callId": call.ID,
		})
		return domain.CallRecord{}, storeErr("update call record", err)
	}

	logger.Info("call record repository update success", logger.Fields{
		"callId": call.ID,
	})
	return call, nil
}

func scanCallRecord(row rowScanner) (domain.CallRecord, error) {
	var (
		call        domain.CallRecord
		recipientID sql.NullString
		themeID     sql.NullString
		settledAt   sql.NullTime
	)
	if err := row.Scan(
		&call.ID,
		&call.CallerID,
		&recipientID,
		&call.Sum,
		&call.Commission,
		&call.DurationSeconds,
		&call.Status,
		&call.EndCall,
		&call.ChannelName,
		&themeID,
		&settledAt,
		&call.CreatedAt,
		&call.UpdatedAt,
	); err != nil {
		return domain.CallRecord{}, err
	}

	call.RecipientID = stringPtr(recipientID)
	call.ThemeID = stringPtr(themeID)
	if settledAt.Valid {
		value := settledAt.Time
		call.SettledAt = &value
	}
	return call, nil
}
