package stats

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/santaclaude2025/tgstats/pkg/types"
)

func TestAggregate_TimeEstimates(t *testing.T) {
	msgs := []types.Message{
		in(at(9, 0), strings.TrimSpace(strings.Repeat("word ", 170))),
		out(at(9, 10), strings.Repeat("x", 200)),
	}

	s := Aggregate(msgs, nineToFive(t))

	if s.TypingTime != time.Minute {
		t.Errorf("TypingTime = %v, want 1m", s.TypingTime)
	}
	if s.ReadingTime != time.Minute {
		t.Errorf("ReadingTime = %v, want 1m", s.ReadingTime)
	}
	if s.OutgoingChars != 200 {
		t.Errorf("OutgoingChars = %d, want 200", s.OutgoingChars)
	}
	if s.IncomingWords != 170 {
		t.Errorf("IncomingWords = %d, want 170", s.IncomingWords)
	}
}

func TestTypingAndReadingTime(t *testing.T) {
	if got := TypingTime(100); got != 30*time.Second {
		t.Errorf("TypingTime(100) = %v, want 30s", got)
	}
	if got := ReadingTime(0); got != 0 {
		t.Errorf("ReadingTime(0) = %v, want 0", got)
	}
	if got := ReadingTime(85); got != 30*time.Second {
		t.Errorf("ReadingTime(85) = %v, want 30s", got)
	}
}

func TestAggregate_Averages(t *testing.T) {
	s := Aggregate([]types.Message{
		in(at(9, 0), "a"),
		out(at(9, 2), "b"),
		in(at(10, 0), "c"),
		out(at(10, 4), "d"),
		in(at(20, 0), "e"),
		out(at(21, 0), "f"),
	}, nineToFive(t))

	if avg, ok := s.AverageWorking(); !ok || avg != 3*time.Minute {
		t.Errorf("AverageWorking = %v, %v; want 3m, true", avg, ok)
	}
	if avg, ok := s.AverageOffHours(); !ok || avg != time.Hour {
		t.Errorf("AverageOffHours = %v, %v; want 1h, true", avg, ok)
	}
	if avg, ok := s.AverageAll(); !ok || avg != 22*time.Minute {
		t.Errorf("AverageAll = %v, %v; want 22m, true", avg, ok)
	}
	if s.Replies() != 3 {
		t.Errorf("Replies = %d, want 3", s.Replies())
	}
}

func TestAggregate_NoSamples(t *testing.T) {
	s := Aggregate([]types.Message{in(at(9, 0), "hello")}, nineToFive(t))

	if _, ok := s.AverageWorking(); ok {
		t.Error("AverageWorking ok = true, want false")
	}
	if _, ok := s.AverageOffHours(); ok {
		t.Error("AverageOffHours ok = true, want false")
	}
	if !s.Unanswered {
		t.Error("Unanswered = false, want true")
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	msgs := []types.Message{
		out(at(18, 30), "late reply"),
		in(at(18, 0), "evening question"),
		out(at(9, 20), "morning reply"),
		in(at(9, 0), "morning question"),
		in(at(19, 0), "are you there"),
	}
	wh := nineToFive(t)

	first := Aggregate(msgs, wh)
	second := Aggregate(msgs, wh)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Aggregate is not idempotent:\n%+v\n%+v", first, second)
	}

	reversed := make([]types.Message, len(msgs))
	for i, m := range msgs {
		reversed[len(msgs)-1-i] = m
	}
	if third := Aggregate(reversed, wh); !reflect.DeepEqual(first, third) {
		t.Errorf("Aggregate depends on input order:\n%+v\n%+v", first, third)
	}
}

func TestMean(t *testing.T) {
	if _, ok := Mean(); ok {
		t.Error("Mean() ok = true, want false")
	}
	if _, ok := Mean(nil, []time.Duration{}); ok {
		t.Error("Mean(empty) ok = true, want false")
	}
	got, ok := Mean([]time.Duration{time.Second}, []time.Duration{3 * time.Second})
	if !ok || got != 2*time.Second {
		t.Errorf("Mean = %v, %v; want 2s, true", got, ok)
	}
}
