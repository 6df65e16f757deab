package cache

import (
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// TTLs - длительности для классов TTL.
type TTLs struct {
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

// DefaultTTLs - 1m / 5m / 1h.
func DefaultTTLs() TTLs {
	return TTLs{Short: time.Minute, Medium: 5 * time.Minute, Long: time.Hour}
}

// For - TTL для класса; неизвестный класс получает Medium.
func (t TTLs) For(tier domain.Tier) time.Duration {
	switch tier {
	case domain.TierShort:
		return t.Short
	case domain.TierLong:
		return t.Long
	default:
		return t.Medium
	}
}
