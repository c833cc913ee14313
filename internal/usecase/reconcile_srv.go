package usecase

import (
	"context"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"
	"venue-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReconciliationService interface {
	// RecordPaymentConfirmed applies one gateway confirmation to the
	// ledger. Safe to call any number of times with the same transaction
	// ID; replays report duplicate=true and change nothing.
	RecordPaymentConfirmed(ctx context.Context, req *request.PaymentConfirmedRequest) (*response.ReconcileResponse, error)
}

type reconciliationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReconciliationService(repo *repository.Repository, log *zap.Logger) ReconciliationService {
	return &reconciliationService{
		repo: repo,
		log:  log.With(zap.String("service", "reconcile")),
	}
}

func (s *reconciliationService) RecordPaymentConfirmed(ctx context.Context, req *request.PaymentConfirmedRequest) (*response.ReconcileResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Payment confirmation validation failed", zap.Any("errors", errs))
		return nil, &entity.ValidationError{Field: "request", Reason: utils.FormatValidationErrors(errs)}
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return nil, &entity.ValidationError{Field: "order_id", Reason: "not a valid UUID"}
	}

	paidAt := time.Now()
	if req.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			return nil, &entity.ValidationError{Field: "timestamp", Reason: "expected RFC3339 timestamp"}
		}
		paidAt = parsed
	}

	var result *response.ReconcileResponse
	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		order, err := tx.PaymentOrder.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return &entity.NotFoundError{Kind: "payment order", ID: req.OrderID}
		}

		booking, err := tx.Booking.FindByID(ctx, order.BookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return &entity.NotFoundError{Kind: "booking", ID: order.BookingID.String()}
		}

		// Replays of an already-applied confirmation are acknowledged
		// without touching the ledger.
		existing, err := tx.Payment.FindPaidByTransactionID(ctx, req.TransactionID)
		if err != nil {
			return err
		}
		if existing != nil {
			result = &response.ReconcileResponse{
				Duplicate:     true,
				AdvancePaid:   booking.AdvancePaid,
				AmountDue:     utils.RoundMoney(booking.TotalPrice - booking.AdvancePaid),
				OrderStatus:   order.Status,
				BookingStatus: booking.Status,
			}
			return nil
		}

		transactionID := req.TransactionID
		payment := &entity.Payment{
			BaseSimple:    entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			OrderID:       order.ID,
			PayerID:       order.PayerID,
			Method:        req.Method,
			Amount:        utils.RoundMoney(req.Amount),
			Status:        entity.PaymentStatusPaid,
			TransactionID: &transactionID,
			PaidAt:        &paidAt,
		}
		if err := tx.Payment.Create(ctx, payment); err != nil {
			return err
		}

		paidSum, amountDue, err := applyLedger(ctx, tx, booking)
		if err != nil {
			return err
		}

		orderStatus := entity.OrderStatusPending
		if amountDue <= 0 {
			orderStatus = entity.OrderStatusSettled
		}

		result = &response.ReconcileResponse{
			AdvancePaid:   paidSum,
			AmountDue:     amountDue,
			OrderStatus:   orderStatus,
			BookingStatus: booking.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Duplicate {
		s.log.Info("Duplicate payment confirmation ignored",
			zap.String("transaction_id", req.TransactionID),
			zap.String("order_id", req.OrderID),
		)
	} else {
		s.log.Info("Payment reconciled",
			zap.String("order_id", req.OrderID),
			zap.Float64("amount", req.Amount),
			zap.Float64("advance_paid", result.AdvancePaid),
			zap.String("booking_status", string(result.BookingStatus)),
		)
	}

	return result, nil
}

// applyLedger recomputes a booking's financial state from the full paid set
// and writes it back: booking advance and status, and the amount due on each
// of its orders. The booking status only ever moves forward; an order whose
// due goes positive again (after a price increase, say) drops back to
// pending even though the booking status stays put.
func applyLedger(ctx context.Context, tx *repository.Repository, booking *entity.Booking) (paidSum, amountDue float64, err error) {
	paidSum, err = tx.Payment.SumPaidByBookingID(ctx, booking.ID)
	if err != nil {
		return 0, 0, err
	}
	paidSum = utils.RoundMoney(paidSum)
	amountDue = utils.RoundMoney(booking.TotalPrice - paidSum)

	next := entity.NextForPayment(booking.Status, paidSum, booking.TotalPrice)
	if err := tx.Booking.UpdateFinancials(ctx, booking.ID, paidSum, next); err != nil {
		return 0, 0, err
	}
	booking.AdvancePaid = paidSum
	booking.Status = next

	orderStatus := entity.OrderStatusPending
	if amountDue <= 0 {
		orderStatus = entity.OrderStatusSettled
	}

	orders, err := tx.PaymentOrder.FindByBookingID(ctx, booking.ID)
	if err != nil {
		return 0, 0, err
	}
	for _, order := range orders {
		if order.AmountDue == amountDue && order.Status == orderStatus {
			continue
		}
		order.AmountDue = amountDue
		order.Status = orderStatus
		if err := tx.PaymentOrder.Update(ctx, order); err != nil {
			return 0, 0, err
		}
	}

	return paidSum, amountDue, nil
}
