package stats

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/santaclaude2025/tgstats/pkg/types"
)

// Bucket tells whether a reply happened inside the working-hours window
type Bucket int

const (
	Working Bucket = iota
	OffHours
)

func (b Bucket) String() string {
	if b == Working {
		return "working"
	}
	return "off-hours"
}

// Counts holds the raw message, character and word tallies of text messages
type Counts struct {
	IncomingMessages int
	OutgoingMessages int
	IncomingChars    int
	OutgoingChars    int
	IncomingWords    int
}

// Add returns the field-wise sum of c and o
func (c Counts) Add(o Counts) Counts {
	return Counts{
		IncomingMessages: c.IncomingMessages + o.IncomingMessages,
		OutgoingMessages: c.OutgoingMessages + o.OutgoingMessages,
		IncomingChars:    c.IncomingChars + o.IncomingChars,
		OutgoingChars:    c.OutgoingChars + o.OutgoingChars,
		IncomingWords:    c.IncomingWords + o.IncomingWords,
	}
}

// Classification is the result of scanning one conversation
type Classification struct {
	Counts
	Working    []time.Duration
	OffHours   []time.Duration
	Unanswered bool // the last text message is incoming with no reply after it
}

// Classify scans a conversation chronologically and buckets reply latencies.
//
// Scan semantics:
//   - Messages without text are ignored entirely.
//   - Every incoming text message becomes the pending-reply anchor, replacing
//     an older unanswered one.
//   - The first outgoing text message after an anchor is its reply. The latency
//     is Working when the anchor is not before the window start and the reply is
//     not after the window end, both taken on the anchor's calendar date.
//
// The input slice is not modified.
func Classify(messages []types.Message, wh WorkingHours) Classification {
	var result Classification

	ordered := Chronological(messages)

	var awaitingReply bool
	var lastIncoming time.Time

	for _, msg := range ordered {
		if !msg.HasText() {
			continue
		}

		chars := utf8.RuneCountInString(msg.Text)

		switch msg.Direction {
		case types.Incoming:
			result.IncomingMessages++
			result.IncomingChars += chars
			result.IncomingWords += len(strings.Fields(msg.Text))

			lastIncoming = msg.Timestamp
			awaitingReply = true

		case types.Outgoing:
			result.OutgoingMessages++
			result.OutgoingChars += chars

			if !awaitingReply {
				continue
			}

			delta := msg.Timestamp.Sub(lastIncoming)
			if classifyReply(lastIncoming, msg.Timestamp, wh) == Working {
				result.Working = append(result.Working, delta)
			} else {
				result.OffHours = append(result.OffHours, delta)
			}

			awaitingReply = false
			lastIncoming = time.Time{}
		}
	}

	result.Unanswered = awaitingReply
	return result
}

// classifyReply buckets a reply against the window of the incoming message's day
func classifyReply(incoming, reply time.Time, wh WorkingHours) Bucket {
	workStart, workEnd := wh.Bounds(incoming)
	if !incoming.Before(workStart) && !reply.After(workEnd) {
		return Working
	}
	return OffHours
}

// Chronological returns a copy of messages sorted oldest first.
// Equal timestamps are ordered by message ID, then by input order.
func Chronological(messages []types.Message) []types.Message {
	ordered := make([]types.Message, len(messages))
	copy(ordered, messages)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		return a.ID < b.ID
	})
	return ordered
}
