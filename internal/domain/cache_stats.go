package domain

// CacheStats - снимок состояния кэша для админки и cachectl.
type CacheStats struct {
	Backend          string `json:"backend"`
	TotalKeys        int64  `json:"total_keys"`
	MemoryUsageBytes int64  `json:"memory_usage_bytes"`
	MemoryUsageHuman string `json:"memory_usage_human"`
}
