package stats

import "time"

// GlobalStats sums every conversation of a run
type GlobalStats struct {
	Counts
	Conversations int
	Unanswered    int // conversations ending with an unanswered incoming message
	TypingTime    time.Duration
	ReadingTime   time.Duration
	Working       []time.Duration
	OffHours      []time.Duration
}

// Add folds one conversation into the totals and returns the new value.
// The receiver is not modified.
func (g GlobalStats) Add(cs ConversationStats) GlobalStats {
	next := GlobalStats{
		Counts:        g.Counts.Add(cs.Counts),
		Conversations: g.Conversations + 1,
		Unanswered:    g.Unanswered,
		TypingTime:    g.TypingTime + cs.TypingTime,
		ReadingTime:   g.ReadingTime + cs.ReadingTime,
		Working:       appendCopy(g.Working, cs.Working),
		OffHours:      appendCopy(g.OffHours, cs.OffHours),
	}
	if cs.Unanswered {
		next.Unanswered++
	}
	return next
}

// AverageWorking is the mean working-hours reply latency over all conversations
func (g GlobalStats) AverageWorking() (time.Duration, bool) {
	return Mean(g.Working)
}

// AverageOffHours is the mean off-hours reply latency over all conversations
func (g GlobalStats) AverageOffHours() (time.Duration, bool) {
	return Mean(g.OffHours)
}

// AverageAll is the mean reply latency over all conversations and buckets
func (g GlobalStats) AverageAll() (time.Duration, bool) {
	return Mean(g.Working, g.OffHours)
}

// appendCopy never writes into a's backing array, so earlier fold values stay intact
func appendCopy(a, b []time.Duration) []time.Duration {
	if len(b) == 0 {
		return a
	}
	out := make([]time.Duration, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
