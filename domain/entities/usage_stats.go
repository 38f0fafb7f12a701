package entities

// UsageStats holds the relayed-message counters
type UsageStats struct {
	Overall   int64            `json:"overall"`
	ByChannel map[string]int64 `json:"by_channel"`
}

// NewUsageStats creates empty counters
func NewUsageStats() UsageStats {
	return UsageStats{ByChannel: make(map[string]int64)}
}

// ChannelCount returns the counter for a channel, zero when absent
func (s UsageStats) ChannelCount(key ChannelKey) int64 {
	return s.ByChannel[key.StatsKey()]
}

// ChannelStats is a snapshot of the counters relevant to one channel
type ChannelStats struct {
	Overall int64
	Channel int64
}
