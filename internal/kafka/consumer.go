package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/metrics"
)

var _ ports.MessageConsumer = (*Consumer)(nil)

// reader - то, что Consumer использует у kafka.Reader.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// messageHandler - разбор и применение события инвалидации.
type messageHandler interface {
	HandleMessage(ctx context.Context, raw []byte) error
}

// Consumer читает топик инвалидаций и применяет события к кэшу по одному.
// Оффсет коммитится только после того, как ключи реально удалены
// (или событие признано мусором).
type Consumer struct {
	reader         reader
	handler        messageHandler
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	jitterRand     *rand.Rand
	closeOnce      sync.Once
}

func NewConsumer(cfg *ConsumerConfig, handler messageHandler, log ports.Logger) *Consumer {
	pt := cfg.ProcessTimeout
	if pt <= 0 {
		pt = 5 * time.Second
	}
	rInit := cfg.RetryInitial
	if rInit <= 0 {
		rInit = time.Second
	}
	rMax := cfg.RetryMax
	if rMax <= 0 {
		rMax = 30 * time.Second
	}

	return &Consumer{
		reader:         kafka.NewReader(cfg.ReaderConfig()),
		handler:        handler,
		log:            log,
		processTimeout: pt,
		retryInitial:   rInit,
		retryMax:       rMax,
		jitterRand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run - цикл чтения до отмены ctx.
//
// Временная ошибка (кэш недоступен, таймаут) повторяется на том же
// сообщении: kafka.Reader в рамках сессии его не вернёт, а коммит
// следующего сообщения сдвинул бы оффсет группы за потерянную инвалидацию.
// Повтор безопасен: удаление ключей идемпотентно.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "invalidation consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	fetchWait := c.retryInitial
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			sleep := c.withJitterEqual(fetchWait)
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", err, sleep)
			if !c.sleepWithBackoff(ctx, sleep) {
				return ctx.Err()
			}
			fetchWait = c.nextBackoff(fetchWait)
			continue
		}
		fetchWait = c.retryInitial
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		if err := c.apply(ctx, rc.Topic, &msg); err != nil {
			// остановка посреди повторов: оффсет не закоммичен, событие придёт снова
			c.log.Warnf(ctx, "consumer stopped with pending offset=%d partition=%d", msg.Offset, msg.Partition)
			return err
		}
		c.commitSafely(ctx, &msg)
	}
}

func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
