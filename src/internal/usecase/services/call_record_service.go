package services

import (
	"context"
	"fmt"
	"time"

	"github.com/morago/interpreter-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/morago/interpreter-ledger/src/internal/logger"
	"github.com/morago/interpreter-ledger/src/internal/usecase/service_interfaces"
)

type CallRecordService struct {
	callRepo          repo_interfaces.CallRecordRepository
	accountRepo       repo_interfaces.AccountRepository
	txManager         repo_interfaces.TxManager
	ledger            service_interfaces.TransactionService
	commissionService service_interfaces.CommissionService
	events            eventEmitter
	now               func() time.Time
}

func NewCallRecordService(
	callRepo repo_interfaces.CallRecordRepository,
	accountRepo repo_interfaces.AccountRepository,
	txManager repo_interfaces.TxManager,
	ledger service_interfaces.TransactionService,
	commissionService service_interfaces.CommissionService,
	publisher domain.EventPublisher,
) *CallRecordService {
	return &CallRecordService{
		callRepo:          callRepo,
		accountRepo:       accountRepo,
		txManager:         txManager,
		ledger:            ledger,
		commissionService: commissionService,
		events:            newEventEmitter(publisher),
		now:               func() time.Time { return time.Now().UTC() },
	}
}

// Create opens a call record. A call that is already finished when created
// is settled in the same unit of work.
func (s *CallRecordService) Create(ctx context.Context, req domain.NewCallRecord) (domain.CallRecord, error) {
	logger.Info("call record service create request", logger.Fields{
		"callerId":    req.CallerID,
		"recipientId": req.RecipientID,
		"sum":         req.Sum.StringFixed(2),
	})

	call := domain.CallRecord{
		CallerID:        req.CallerID,
		RecipientID:     req.RecipientID,
		Sum:             req.Sum,
		DurationSeconds: req.DurationSeconds,
		Status:          req.Status,
		EndCall:         req.EndCall,
		ChannelName:     req.ChannelName,
		ThemeID:         req.ThemeID,
	}
	if call.Status == "" {
		call.Status = domain.CallStatusPending
	}
	if req.Commission != nil {
		call.Commission = *req.Commission
	} else {
		call.Commission = s.commissionService.Commission(req.Sum)
	}
	if err := call.Validate(); err != nil {
		return domain.CallRecord{}, err
	}

	var (
		created domain.CallRecord
		touched []domain.Account
	)
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.callRepo.Create(ctx, call)
		if err != nil {
			return err
		}
		if !created.Finished() {
			return nil
		}
		created, touched, err = s.settleAndMark(ctx, created)
		if err != nil {
			return err
		}
		created, err = s.callRepo.Update(ctx, created)
		return err
	})
	if err != nil {
		logger.Error("call record service create failed", err, logger.Fields{
			"callerId": req.CallerID,
		})
		return domain.CallRecord{}, err
	}

	logger.Info("call record service create success", logger.Fields{
		"callId":  created.ID,
		"settled": created.Settled(),
	})
	s.events.emit(ctx, domain.EventCallCreated, callParticipants(created), newCallPayload(created))
	s.events.emitBalances(ctx, touched...)
	return created, nil
}

func (s *CallRecordService) Get(ctx context.Context, id string) (domain.CallRecord, error) {
	return s.callRepo.Get(ctx, id)
}

// Update applies patch to the call. When the call moves from not finished to
// finished it is settled in the same unit of work; a settlement failure
// leaves the stored call exactly as it was.
func (s *CallRecordService) Update(ctx context.Context, id string, patch domain.CallRecordPatch) (domain.CallRecord, error) {
	logger.Info("call record service update request", logger.Fields{
		"callId":  id,
		"status":  patch.Status,
		"endCall": patch.EndCall,
	})

	var (
		updated domain.CallRecord
		touched []domain.Account
	)
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.callRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		wasFinished := current.Finished()
		next := patch.Apply(current)
		if err := next.Validate(); err != nil {
			return err
		}
		if current.Settled() && (!next.Sum.Equal(current.Sum) || !next.Commission.Equal(current.Commission) || !sameRecipient(current, next)) {
			return fmt.Errorf("%w: settled call %s cannot change its amounts or participants", domain.ErrConflict, id)
		}

		if !wasFinished && next.Finished() && !next.Settled() {
			next, touched, err = s.settleAndMark(ctx, next)
			if err != nil {
				return err
			}
		}

		updated, err = s.callRepo.Update(ctx, next)
		return err
	})
	if err != nil {
		logger.Error("call record service update failed", err, logger.Fields{
			"callId": id,
		})
		return domain.CallRecord{}, err
	}

	logger.Info("call record service update success", logger.Fields{
		"callId":  updated.ID,
		"status":  updated.Status,
		"settled": updated.Settled(),
	})
	s.events.emit(ctx, domain.EventCallUpdated, callParticipants(updated), newCallPayload(updated))
	s.events.emitBalances(ctx, touched...)
	return updated, nil
}

// Settle settles a finished call that has not been settled yet. Repeating it
// is a no-op.
func (s *CallRecordService) Settle(ctx context.Context, id string) (domain.CallRecord, error) {
	logger.Info("call record service settle request", logger.Fields{"callId": id})

	var (
		call    domain.CallRecord
		touched []domain.Account
	)
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		call, err = s.callRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if call.Settled() {
			return nil
		}
		if !call.Finished() {
			return fmt.Errorf("%w: call %s has not finished", domain.ErrConflict, id)
		}

		call, touched, err = s.settleAndMark(ctx, call)
		if err != nil {
			return err
		}
		call, err = s.callRepo.Update(ctx, call)
		return err
	})
	if err != nil {
		logger.Error("call record service settle failed", err, logger.Fields{"callId": id})
		return domain.CallRecord{}, err
	}

	if len(touched) > 0 {
		s.events.emit(ctx, domain.EventCallUpdated, callParticipants(call), newCallPayload(call))
		s.events.emitBalances(ctx, touched...)
	}
	return call, nil
}

func (s *CallRecordService) settleAndMark(ctx context.Context, call domain.CallRecord) (domain.CallRecord, []domain.Account, error) {
	touched, err := s.settle(ctx, call)
	if err != nil {
		return domain.CallRecord{}, nil, err
	}
	settledAt := s.now()
	call.SettledAt = &settledAt
	return call, touched, nil
}

// settle moves the call's money. It must run inside a unit of work: the
// caller is debited before the interpreter is credited and any failure
// aborts both.
func (s *CallRecordService) settle(ctx context.Context, call domain.CallRecord) ([]domain.Account, error) {
	fields := logger.Fields{
		"callId":     call.ID,
		"callerId":   call.CallerID,
		"sum":        call.Sum.StringFixed(2),
		"commission": call.Commission.StringFixed(2),
	}

	if !call.Sum.IsPositive() {
		logger.Info("call settlement skipped for zero sum", fields)
		return nil, nil
	}
	if call.Commission.GreaterThan(call.Sum) {
		return nil, fmt.Errorf("%w: commission cannot exceed sum", domain.ErrInvalidArgument)
	}

	locked, err := s.accountRepo.LockMany(ctx, callParticipants(call)...)
	if err != nil {
		return nil, err
	}

	caller := locked[call.CallerID]
	if !caller.CanCover(call.Sum) {
		logger.Info("call settlement insufficient caller balance", fields)
		return nil, fmt.Errorf("caller %s: %w", caller.ID, domain.ErrInsufficientBalance)
	}

	notes := fmt.Sprintf("Call ID: %s, Duration: %ds", call.ID, call.DurationSeconds)

	payment, err := s.ledger.Record(ctx, caller, domain.LedgerEntry{
		Type:        domain.TransactionTypeCallPayment,
		Amount:      call.Sum,
		Status:      domain.TransactionStatusCompleted,
		Description: "Payment for call",
		RelatedID:   call.ID,
		Notes:       notes,
	})
	if err != nil {
		return nil, err
	}
	caller.Balance = payment.BalanceAfter
	if caller, err = s.accountRepo.UpdateBalance(ctx, caller); err != nil {
		return nil, err
	}

	touched := []domain.Account{caller}
	if !call.HasInterpreter() {
		logger.Info("call settlement complete without interpreter", fields)
		return touched, nil
	}

	interpreter := locked[*call.RecipientID]
	if net := call.NetEarning(); net.IsPositive() {
		earning, err := s.ledger.Record(ctx, interpreter, domain.LedgerEntry{
			Type:        domain.TransactionTypeCallEarning,
			Amount:      net,
			Status:      domain.TransactionStatusCompleted,
			Description: "Earning from call",
			RelatedID:   call.ID,
			Notes:       notes,
		})
		if err != nil {
			return nil, err
		}
		interpreter.Balance = earning.BalanceAfter
		if interpreter, err = s.accountRepo.UpdateBalance(ctx, interpreter); err != nil {
			return nil, err
		}
	}

	if call.Commission.IsPositive() {
		// The earning was already credited net, so the commission row is
		// written against the gross view and lands on the real balance.
		gross := interpreter
		gross.Balance = interpreter.Balance.Add(call.Commission)
		if _, err := s.ledger.Record(ctx, gross, domain.LedgerEntry{
			Type:        domain.TransactionTypeCommission,
			Amount:      call.Commission,
			Status:      domain.TransactionStatusCompleted,
			Description: commissionDescription,
			RelatedID:   call.ID,
			Notes:       notes,
		}); err != nil {
			return nil, err
		}
	}

	touched = append(touched, interpreter)
	logger.Info("call settlement complete", fields)
	return touched, nil
}

// The interpreter never holds the gross balance, so the row says so.
const commissionDescription = "Platform commission (informational; balance before is gross of the commission, earning was credited net)"

func sameRecipient(a, b domain.CallRecord) bool {
	if a.HasInterpreter() != b.HasInterpreter() {
		return false
	}
	return !a.HasInterpreter() || *a.RecipientID == *b.RecipientID
}
