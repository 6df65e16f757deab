package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// События инвалидации маленькие и чувствительны к задержке: брокер отдаёт
// их сразу, не дожидаясь заполнения пачки.
const (
	defaultMaxWait = 250 * time.Millisecond
	eventMinBytes  = 1
	eventMaxBytes  = 1 << 20
)

type ConsumerConfig struct {
	Brokers     []string
	Topic       string
	GroupID     string
	StartOffset string
	// MaxWait - сколько брокер держит fetch при пустом топике; 0 - defaultMaxWait.
	MaxWait time.Duration

	ProcessTimeout time.Duration
	RetryInitial   time.Duration
	RetryMax       time.Duration
}

// ReaderConfig - настройки kafka.Reader с ручным коммитом.
// StartOffset: "first" читает с начала, всё остальное с конца. Читаются
// только закоммиченные транзакции: инвалидация не должна опережать запись.
func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	maxWait := c.MaxWait
	if maxWait <= 0 {
		maxWait = defaultMaxWait
	}

	rc := kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          c.Topic,
		MinBytes:       eventMinBytes,
		MaxBytes:       eventMaxBytes,
		MaxWait:        maxWait,
		IsolationLevel: kafka.ReadCommitted,
		CommitInterval: 0,
		StartOffset:    kafka.LastOffset,
	}
	if strings.EqualFold(strings.TrimSpace(c.StartOffset), "first") {
		rc.StartOffset = kafka.FirstOffset
	}
	return rc
}
