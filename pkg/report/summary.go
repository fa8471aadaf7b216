package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/santaclaude2025/tgstats/pkg/stats"
	"github.com/santaclaude2025/tgstats/pkg/utils"
)

var headerColor = color.New(color.FgCyan, color.Bold)

func writeSummaryFile(path string, conversations []Conversation, global stats.GlobalStats) error {
	var b strings.Builder

	for _, conv := range conversations {
		writeConversation(&b, conv)
		b.WriteString("\n")
	}
	b.WriteString("=== Общая статистика ===\n")
	writeTotals(&b, global)

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func writeConversation(w io.Writer, conv Conversation) {
	s := conv.Stats
	unanswered := 0
	if s.Unanswered {
		unanswered = 1
	}

	fmt.Fprintf(w, "Чат с %s:\n", conv.Name)
	fmt.Fprintf(w, "   Времени на печать: %s\n", utils.FormatShortDuration(s.TypingTime))
	fmt.Fprintf(w, "   Времени на прочтение: %s\n", utils.FormatShortDuration(s.ReadingTime))
	fmt.Fprintf(w, "   Исходящие: %d\n", s.OutgoingMessages)
	fmt.Fprintf(w, "   Входящие: %d\n", s.IncomingMessages)
	fmt.Fprintf(w, "   Написано символов: %d\n", s.OutgoingChars)
	fmt.Fprintf(w, "   Получено символов: %d\n", s.IncomingChars)
	fmt.Fprintf(w, "   Среднее время ответа (рабочее время): %s\n", utils.FormatOptionalDuration(s.AverageWorking()))
	fmt.Fprintf(w, "   Среднее время ответа (нерабочее время): %s\n", utils.FormatOptionalDuration(s.AverageOffHours()))
	fmt.Fprintf(w, "   Среднее время ответа: %s\n", utils.FormatOptionalDuration(s.AverageAll()))
	fmt.Fprintf(w, "   Сообщений без ответа: %d\n", unanswered)
}

func writeTotals(w io.Writer, g stats.GlobalStats) {
	fmt.Fprintf(w, "Чатов: %d\n", g.Conversations)
	fmt.Fprintf(w, "Всего времени на печать: %s\n", utils.FormatShortDuration(g.TypingTime))
	fmt.Fprintf(w, "Всего времени на прочтение: %s\n", utils.FormatShortDuration(g.ReadingTime))
	fmt.Fprintf(w, "Исходящих сообщений: %d\n", g.OutgoingMessages)
	fmt.Fprintf(w, "Входящих сообщений: %d\n", g.IncomingMessages)
	fmt.Fprintf(w, "Написано символов: %d\n", g.OutgoingChars)
	fmt.Fprintf(w, "Получено символов: %d\n", g.IncomingChars)
	fmt.Fprintf(w, "Среднее время ответа в рабочее время: %s\n", utils.FormatOptionalDuration(g.AverageWorking()))
	fmt.Fprintf(w, "Среднее время ответа в нерабочее время: %s\n", utils.FormatOptionalDuration(g.AverageOffHours()))
	fmt.Fprintf(w, "Среднее время ответа (по всех чатах): %s\n", utils.FormatOptionalDuration(g.AverageAll()))
	fmt.Fprintf(w, "Сообщений без ответа: %d\n", g.Unanswered)
}

func printTotals(w io.Writer, g stats.GlobalStats) {
	fmt.Fprintln(w)
	headerColor.Fprintln(w, "=== Общая статистика ===")
	writeTotals(w, g)
}
