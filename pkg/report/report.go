// Package report drives one statistics run over the account's dialogs.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/santaclaude2025/tgstats/pkg/config"
	"github.com/santaclaude2025/tgstats/pkg/logger"
	"github.com/santaclaude2025/tgstats/pkg/stats"
	"github.com/santaclaude2025/tgstats/pkg/telegram"
	"github.com/santaclaude2025/tgstats/pkg/transcript"
	"github.com/santaclaude2025/tgstats/pkg/types"
)

// ErrFetch wraps any failure of the dialog listing or message fetch
var ErrFetch = errors.New("failed to fetch conversations")

// Source is everything a run reads from the platform
type Source interface {
	telegram.DialogLister
	telegram.MessageFetcher
	Self(ctx context.Context) (types.Self, error)
}

// Options configures a run
type Options struct {
	// Start and End are the first and last calendar days of the range.
	// Only their dates in Location are used.
	Start time.Time
	End   time.Time

	Location     *time.Location // default time.Local
	WorkingHours stats.WorkingHours
	OutputRoot   string    // where the output directory and summary file go, default "."
	Console      io.Writer // progress and totals, default os.Stdout
}

// Conversation is one processed dialog
type Conversation struct {
	Peer           types.Peer
	Name           string
	Dir            string
	TranscriptSize int64
	Stats          stats.ConversationStats
}

// Result describes a finished run
type Result struct {
	RunID         string
	Self          types.Self
	Start         time.Time
	End           time.Time
	OutputDir     string
	SummaryPath   string
	Conversations []Conversation
	Global        stats.GlobalStats
}

// Run lists dialogs, writes a transcript for every human conversation with
// messages in the range, and writes the summary file.
func Run(ctx context.Context, src Source, opts Options) (*Result, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	root := opts.OutputRoot
	if root == "" {
		root = "."
	}
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	start := midnight(opts.Start, loc)
	end := midnight(opts.End, loc)
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s is before start date %s",
			end.Format(config.OutputDateLayout), start.Format(config.OutputDateLayout))
	}
	// exclusive bound: midnight after the last day
	anchor := end.AddDate(0, 0, 1)

	runID := uuid.NewString()
	log := logger.Get()
	log.SetRunID(runID[:8])
	defer log.SetRunID("")

	self, err := src.Self(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	log.Info("Report run %s for user %d: %s to %s, working hours %s",
		runID, self.ID, start.Format(config.OutputDateLayout), end.Format(config.OutputDateLayout), opts.WorkingHours)

	accountName := transcript.SanitizeName(self.FirstName)
	startStr := start.Format(config.OutputDateLayout)
	endStr := end.Format(config.OutputDateLayout)

	res := &Result{
		RunID:       runID,
		Self:        self,
		Start:       start,
		End:         end,
		OutputDir:   filepath.Join(root, fmt.Sprintf(config.OutputDirPattern, accountName, startStr, endStr)),
		SummaryPath: filepath.Join(root, fmt.Sprintf(config.SummaryFilePattern, accountName, startStr, endStr)),
	}

	if err := os.MkdirAll(res.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	for dialog, err := range src.Dialogs(ctx) {
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetch, err)
		}

		if dialog.LastActivity.Before(start) {
			if dialog.Pinned {
				continue
			}
			log.Debug("Dialog with %d last active %s, stopping", dialog.Peer.ID, dialog.LastActivity.Format(time.RFC3339))
			break
		}
		if reason := skipReason(dialog.Peer, self); reason != "" {
			log.Debug("Skipping dialog %d: %s", dialog.Peer.ID, reason)
			continue
		}

		messages, err := collect(ctx, src, dialog.Peer, start, anchor, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetch, err)
		}
		if len(messages) == 0 {
			continue
		}

		conv, err := processConversation(res.OutputDir, dialog.Peer, messages, opts.WorkingHours, console)
		if err != nil {
			return nil, err
		}

		res.Conversations = append(res.Conversations, conv)
		res.Global = res.Global.Add(conv.Stats)
	}

	if err := writeSummaryFile(res.SummaryPath, res.Conversations, res.Global); err != nil {
		return nil, err
	}
	printTotals(console, res.Global)

	log.Info("Report run %s finished: %d conversations, %d unanswered, summary %s",
		runID, res.Global.Conversations, res.Global.Unanswered, res.SummaryPath)
	return res, nil
}

// skipReason returns why a peer is excluded, or "" if it is kept
func skipReason(peer types.Peer, self types.Self) string {
	switch {
	case peer.Kind != types.PeerHuman:
		return peer.Kind.String()
	case peer.ID == self.ID:
		return "self"
	case peer.ID == types.ServiceNotificationsID:
		return "service notifications"
	default:
		return ""
	}
}

// collect reads messages in [start, anchor) newest first, stopping at the
// first message older than start
func collect(ctx context.Context, src telegram.MessageFetcher, peer types.Peer, start, anchor time.Time, loc *time.Location) ([]types.Message, error) {
	var messages []types.Message

	for msg, err := range src.Messages(ctx, peer, anchor) {
		if err != nil {
			return nil, err
		}
		if msg.Timestamp.Before(start) {
			break
		}
		if !msg.Timestamp.Before(anchor) {
			continue
		}
		msg.Timestamp = msg.Timestamp.In(loc)
		messages = append(messages, msg)
	}

	return messages, nil
}

func processConversation(outputDir string, peer types.Peer, messages []types.Message, wh stats.WorkingHours, console io.Writer) (Conversation, error) {
	log := logger.Get()

	conv := Conversation{
		Peer: peer,
		Name: displayName(peer),
		Dir:  filepath.Join(outputDir, conversationDirName(peer)),
	}

	fmt.Fprintf(console, "Получаю чат с %s\n", conv.Name)

	if err := os.MkdirAll(conv.Dir, 0755); err != nil {
		return Conversation{}, fmt.Errorf("failed to create conversation directory: %w", err)
	}

	path := filepath.Join(conv.Dir, config.TranscriptFileName)
	n, err := transcript.WriteFile(path, messages)
	if err != nil {
		return Conversation{}, err
	}
	conv.TranscriptSize = n
	log.Info("Wrote %d messages with user %d to %s (%s)", len(messages), peer.ID, path, humanize.Bytes(uint64(n)))

	conv.Stats = stats.Aggregate(messages, wh)

	if conv.Stats.Unanswered {
		dst := filepath.Join(outputDir, config.UnansweredDirName, filepath.Base(conv.Dir))
		if err := transcript.CopyDir(conv.Dir, dst); err != nil {
			return Conversation{}, fmt.Errorf("failed to copy unanswered conversation: %w", err)
		}
		log.Info("Conversation with user %d ends unanswered", peer.ID)
	}

	return conv, nil
}

// conversationDirName builds "First_Last_ID" with spaces replaced
func conversationDirName(p types.Peer) string {
	name := strings.TrimSpace(p.FirstName + "_" + p.LastName + "_" + strconv.FormatInt(p.ID, 10))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	return transcript.SanitizeName(name)
}

func displayName(p types.Peer) string {
	if name := p.DisplayName(); name != "" {
		return name
	}
	if p.Username != "" {
		return "@" + p.Username
	}
	return strconv.FormatInt(p.ID, 10)
}

func midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
