package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/storefront/pkg/metrics"
	"github.com/Gunvolt24/storefront/pkg/validate"
)

// apply применяет событие; nil значит, что оффсет можно коммитить.
// Ошибка возвращается только при отмене ctx.
func (c *Consumer) apply(ctx context.Context, topic string, msg *kafka.Message) error {
	wait := c.retryInitial
	for attempt := 1; ; attempt++ {
		err := c.handleOnce(ctx, msg)
		switch {
		case err == nil:
			metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
			if attempt > 1 {
				c.log.Infof(ctx, "invalidation applied offset=%d after %d attempts", msg.Offset, attempt)
			}
			return nil
		case errors.Is(err, validate.ErrInvalidMessage):
			// мусор не лечится повтором
			metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
			c.log.Warnf(ctx, "invalid message offset=%d: %v (skipped)", msg.Offset, err)
			return nil
		}

		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		sleep := c.withJitterEqual(wait)
		c.log.Warnf(ctx, "invalidation not applied offset=%d attempt=%d: %v (retry in %s)", msg.Offset, attempt, err, sleep)
		metrics.KafkaMessagesRetried.WithLabelValues(topic).Inc()
		if !c.sleepWithBackoff(ctx, sleep) {
			return ctx.Err()
		}
		wait = c.nextBackoff(wait)
	}
}

// handleOnce - одна попытка под processTimeout.
func (c *Consumer) handleOnce(ctx context.Context, msg *kafka.Message) error {
	hctx, cancel := context.WithTimeout(ctx, c.processTimeout)
	defer cancel()
	return c.handler.HandleMessage(hctx, msg.Value)
}

// commitSafely - ошибка коммита только логируется; событие придёт повторно после ребаланса.
func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if err := c.reader.CommitMessages(ctx, *msg); err != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, err)
	}
}

func (c *Consumer) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// nextBackoff - удвоение до retryMax.
func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > c.retryMax {
		return c.retryMax
	}
	return current
}

// withJitterEqual - половина задержки фиксирована, вторая половина случайная.
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	return half + time.Duration(c.jitterRand.Int63n(int64(d-half)+1))
}
