package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/dto/request"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// Consumer reads payment-confirmed events from Kafka and feeds them into
// the reconciliation service. Delivery is at-least-once; replays are safe
// because reconciliation is idempotent on transaction ID.
type Consumer struct {
	group   sarama.ConsumerGroup
	topics  []string
	service usecase.ReconciliationService
	log     *zap.Logger
}

func NewConsumer(config utils.KafkaConfig, service usecase.ReconciliationService, log *zap.Logger) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("create consumer group: %w", err)
	}

	return &Consumer{
		group:   group,
		topics:  []string{config.Topic},
		service: service,
		log:     log.With(zap.String("component", "kafka-consumer")),
	}, nil
}

// Run blocks until the context is cancelled. Consume returns on every
// rebalance, so it loops.
func (c *Consumer) Run(ctx context.Context) error {
	handler := &confirmationHandler{service: c.service, log: c.log}

	for {
		if err := c.group.Consume(ctx, c.topics, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			c.log.Error("Consumer group error", zap.Error(err))
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (c *Consumer) Close() error {
	return c.group.Close()
}

type confirmationHandler struct {
	service usecase.ReconciliationService
	log     *zap.Logger
}

func (h *confirmationHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *confirmationHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *confirmationHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		var event PaymentConfirmedEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			h.log.Error("Dropping unparseable payment event",
				zap.Error(err),
				zap.Int64("offset", message.Offset),
			)
			session.MarkMessage(message, "")
			continue
		}

		req := &request.PaymentConfirmedRequest{
			OrderID:       event.OrderID,
			Amount:        event.Amount,
			Method:        event.Method,
			TransactionID: event.TransactionID,
			Timestamp:     event.Timestamp,
		}

		result, err := h.service.RecordPaymentConfirmed(session.Context(), req)
		if err != nil {
			// Malformed or dangling events will never succeed; mark them so
			// they stop redelivering. Everything else is retried.
			var validationErr *entity.ValidationError
			var notFoundErr *entity.NotFoundError
			if errors.As(err, &validationErr) || errors.As(err, &notFoundErr) {
				h.log.Error("Dropping unprocessable payment event",
					zap.Error(err),
					zap.String("transaction_id", event.TransactionID),
				)
				session.MarkMessage(message, "")
				continue
			}

			h.log.Error("Failed to reconcile payment event, will retry",
				zap.Error(err),
				zap.String("transaction_id", event.TransactionID),
			)
			continue
		}

		if result.Duplicate {
			h.log.Info("Duplicate payment event acknowledged",
				zap.String("transaction_id", event.TransactionID),
			)
		}
		session.MarkMessage(message, "")
	}

	return nil
}
