package stats

import (
	"time"

	"github.com/santaclaude2025/tgstats/pkg/types"
)

// Reading and typing speed estimates
const (
	TypingSpeedCharsPerMinute  = 200
	ReadingSpeedWordsPerMinute = 170
)

// ConversationStats is the aggregate for one conversation
type ConversationStats struct {
	Counts
	TypingTime  time.Duration
	ReadingTime time.Duration
	Working     []time.Duration
	OffHours    []time.Duration
	Unanswered  bool
}

// Aggregate classifies a conversation and derives the time estimates.
// It has no side effects and does not depend on input order.
func Aggregate(messages []types.Message, wh WorkingHours) ConversationStats {
	c := Classify(messages, wh)

	return ConversationStats{
		Counts:      c.Counts,
		TypingTime:  TypingTime(c.OutgoingChars),
		ReadingTime: ReadingTime(c.IncomingWords),
		Working:     c.Working,
		OffHours:    c.OffHours,
		Unanswered:  c.Unanswered,
	}
}

// TypingTime estimates how long it takes to type chars characters
func TypingTime(chars int) time.Duration {
	return minutes(float64(chars) / TypingSpeedCharsPerMinute)
}

// ReadingTime estimates how long it takes to read words words
func ReadingTime(words int) time.Duration {
	return minutes(float64(words) / ReadingSpeedWordsPerMinute)
}

// AverageWorking is the mean working-hours reply latency; ok is false without samples
func (s ConversationStats) AverageWorking() (time.Duration, bool) {
	return Mean(s.Working)
}

// AverageOffHours is the mean off-hours reply latency; ok is false without samples
func (s ConversationStats) AverageOffHours() (time.Duration, bool) {
	return Mean(s.OffHours)
}

// AverageAll is the mean over both buckets
func (s ConversationStats) AverageAll() (time.Duration, bool) {
	return Mean(s.Working, s.OffHours)
}

// Replies returns the number of latency samples
func (s ConversationStats) Replies() int {
	return len(s.Working) + len(s.OffHours)
}

// Mean averages all samples across the given slices
func Mean(samples ...[]time.Duration) (time.Duration, bool) {
	var sum time.Duration
	var n int
	for _, bucket := range samples {
		for _, d := range bucket {
			sum += d
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / time.Duration(n), true
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
