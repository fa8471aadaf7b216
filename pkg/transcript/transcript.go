package transcript

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/santaclaude2025/tgstats/pkg/stats"
	"github.com/santaclaude2025/tgstats/pkg/types"
)

const (
	timestampLayout = "02.01 15:04:05"

	labelOutgoing = "Исходящее"
	labelIncoming = "Входящее "

	placeholderNonText = "Нетекстовое сообщение"
	placeholderMedia   = "Медиа"
)

var invalidNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

// Write renders messages oldest first, one line per message. Continuation
// lines of multi-line bodies are indented to the width of the line prefix.
func Write(w io.Writer, messages []types.Message) error {
	bw := bufio.NewWriter(w)

	for _, msg := range stats.Chronological(messages) {
		prefix := linePrefix(msg)
		lines := strings.Split(body(msg), "\n")

		if _, err := fmt.Fprintf(bw, "%s%s\n", prefix, lines[0]); err != nil {
			return fmt.Errorf("failed to write message %d: %w", msg.ID, err)
		}

		indent := strings.Repeat(" ", utf8.RuneCountInString(prefix))
		for _, line := range lines[1:] {
			if _, err := fmt.Fprintf(bw, "%s%s\n", indent, line); err != nil {
				return fmt.Errorf("failed to write message %d: %w", msg.ID, err)
			}
		}
	}

	return bw.Flush()
}

// WriteFile writes the transcript to path and returns the number of bytes written
func WriteFile(path string, messages []types.Message) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create transcript: %w", err)
	}

	cw := &countingWriter{w: f}
	if err := Write(cw, messages); err != nil {
		f.Close()
		return cw.n, err
	}
	if err := f.Close(); err != nil {
		return cw.n, fmt.Errorf("failed to close transcript: %w", err)
	}
	return cw.n, nil
}

// CopyDir copies the regular files under src into dst, creating dst as needed.
// Existing files in dst are overwritten.
func CopyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, target)
	})
}

// SanitizeName makes name safe to use as a file or directory name
func SanitizeName(name string) string {
	sanitized := invalidNameChars.ReplaceAllString(name, "")
	sanitized = strings.TrimRight(sanitized, ". ")
	if sanitized == "" {
		return "_"
	}
	return sanitized
}

func linePrefix(msg types.Message) string {
	label := labelIncoming
	if msg.Direction == types.Outgoing {
		label = labelOutgoing
	}
	return fmt.Sprintf("[%s] (%s) ", msg.Timestamp.Format(timestampLayout), label)
}

func body(msg types.Message) string {
	if msg.HasText() {
		return msg.Text
	}
	if msg.Media != "" {
		return fmt.Sprintf("<%s: %s>", placeholderMedia, msg.Media)
	}
	return "<" + placeholderNonText + ">"
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
