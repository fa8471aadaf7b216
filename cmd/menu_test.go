package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/santaclaude2025/tgstats/pkg/config"
	"github.com/santaclaude2025/tgstats/pkg/logger"
	"github.com/santaclaude2025/tgstats/pkg/prompt"
	"github.com/santaclaude2025/tgstats/pkg/report"
	"github.com/santaclaude2025/tgstats/pkg/telegram"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "tgstats-logs")
	if err == nil {
		os.Setenv(logger.LogDirEnv, dir)
	}
	code := m.Run()
	logger.Close()
	if dir != "" {
		os.RemoveAll(dir)
	}
	os.Exit(code)
}

func testApp(t *testing.T, input string) (*app, *bytes.Buffer) {
	t.Helper()
	t.Setenv(config.StateDirEnv, t.TempDir())
	t.Setenv(config.APIIDEnv, "")
	t.Setenv(config.APIHashEnv, "")
	var out bytes.Buffer
	return newApp(strings.NewReader(input), &out, time.UTC), &out
}

func writeSessionFile(t *testing.T, id string) string {
	t.Helper()
	path := config.GetSessionPath(id)
	if err := os.WriteFile(path, []byte("session"), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMenu_ExitAndUnknownChoice(t *testing.T) {
	a, out := testApp(t, "9\n4\n")

	if err := a.menu(context.Background()); err != nil {
		t.Fatalf("menu failed: %v", err)
	}
	if !strings.Contains(out.String(), "Неверный выбор") {
		t.Errorf("unknown choice not reported:\n%s", out.String())
	}
	if n := strings.Count(out.String(), "=== Анализатор статистики чатов ==="); n != 2 {
		t.Errorf("menu shown %d times, want 2", n)
	}
}

func TestMenu_EndOfInput(t *testing.T) {
	a, _ := testApp(t, "")

	if err := a.menu(context.Background()); err != nil {
		t.Errorf("menu at end of input = %v, want nil", err)
	}
}

func TestMenu_CancelledContext(t *testing.T) {
	a, out := testApp(t, "1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := a.menu(ctx); err != nil {
		t.Errorf("menu with cancelled context = %v, want nil", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got:\n%s", out.String())
	}
}

func TestSelectAccount_EmptyList(t *testing.T) {
	a, out := testApp(t, "")

	if err := a.selectAccount(context.Background()); err != nil {
		t.Fatalf("selectAccount failed: %v", err)
	}
	if !strings.Contains(out.String(), "Список пуст") {
		t.Errorf("expected empty list message, got:\n%s", out.String())
	}
}

func TestSelectAccount_MissingRegistryEntry(t *testing.T) {
	a, out := testApp(t, "1\n")
	writeSessionFile(t, "+380991234567")

	err := a.selectAccount(context.Background())
	if !errors.Is(err, config.ErrAccountNotFound) {
		t.Errorf("selectAccount error = %v, want ErrAccountNotFound", err)
	}
	if !strings.Contains(out.String(), "1.  +380991234567") {
		t.Errorf("account not listed:\n%s", out.String())
	}
}

func TestRemoveAccount(t *testing.T) {
	a, out := testApp(t, "3\n2\n")
	keep := writeSessionFile(t, "+1")
	remove := writeSessionFile(t, "+2")
	if err := config.AddAccount("+2", config.Account{APIID: 1, APIHash: "h", Phone: "+2"}); err != nil {
		t.Fatal(err)
	}

	if err := a.removeAccount(); err != nil {
		t.Fatalf("removeAccount failed: %v", err)
	}

	if !strings.Contains(out.String(), "Неверный выбор") {
		t.Errorf("out of range choice not reported:\n%s", out.String())
	}
	if _, err := os.Stat(remove); !os.IsNotExist(err) {
		t.Errorf("session file still exists: %v", err)
	}
	if _, err := os.Stat(keep); err != nil {
		t.Errorf("other session file removed: %v", err)
	}
	if _, err := config.GetAccount("+2"); !errors.Is(err, config.ErrAccountNotFound) {
		t.Errorf("registry entry still present: %v", err)
	}
}

func TestRemoveAccount_WithoutRegistryEntry(t *testing.T) {
	a, _ := testApp(t, "1\n")
	path := writeSessionFile(t, "+1")

	if err := a.removeAccount(); err != nil {
		t.Fatalf("removeAccount failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("session file still exists: %v", err)
	}
}

func TestAddAccount_InvalidAPIID(t *testing.T) {
	a, _ := testApp(t, "+38 099 123 45 67\nabc\nhash\n")

	err := a.addAccount(context.Background())
	if !errors.Is(err, config.ErrInvalidAPIID) {
		t.Errorf("addAccount error = %v, want ErrInvalidAPIID", err)
	}

	entries, err := os.ReadDir(config.GetStateDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == config.SessionFileExt {
			t.Errorf("session file %s created for invalid input", e.Name())
		}
	}
}

func TestAddAccount_EmptyPhone(t *testing.T) {
	a, _ := testApp(t, "\n")

	if err := a.addAccount(context.Background()); !errors.Is(err, prompt.ErrInvalidInput) {
		t.Errorf("addAccount error = %v, want ErrInvalidInput", err)
	}
}

func TestLineWithDefault(t *testing.T) {
	a, out := testApp(t, "\ntyped\n")

	got, err := a.lineWithDefault("API Hash", "0123456789abcdef", "0123...cdef")
	if err != nil || got != "0123456789abcdef" {
		t.Errorf("lineWithDefault = %q, %v; want default", got, err)
	}
	if strings.Contains(out.String(), "0123456789abcdef") {
		t.Errorf("full default echoed:\n%s", out.String())
	}

	got, err = a.lineWithDefault("API Hash", "0123456789abcdef", "0123...cdef")
	if err != nil || got != "typed" {
		t.Errorf("lineWithDefault = %q, %v; want typed", got, err)
	}
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"account missing", fmt.Errorf("%w: +1", config.ErrAccountNotFound), "Акаунт не найден"},
		{"bad api id", config.ErrInvalidAPIID, "Неверный API ID"},
		{"not authorized", telegram.ErrNotAuthorized, "Сессия недействительна"},
		{"auth", fmt.Errorf("%w: PHONE_CODE_INVALID", telegram.ErrAuthentication), "Ошибка во время входа"},
		{"fetch", fmt.Errorf("%w: timeout", report.ErrFetch), "Ошибка при получении чатов"},
		{"cancelled", fmt.Errorf("%w: %w", report.ErrFetch, context.Canceled), "Операция прервана"},
		{"other", errors.New("disk full"), "Ошибка: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			a := &app{out: &out}
			a.reportError(tt.err)
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("reportError(%v) printed %q, want it to contain %q", tt.err, out.String(), tt.want)
			}
		})
	}
}

func TestAccountLabel(t *testing.T) {
	if got := accountLabel(config.Account{}); got != "" {
		t.Errorf("accountLabel(empty) = %q", got)
	}
	if got := accountLabel(config.Account{FirstName: "Anna", LastName: "K"}); got != " (Anna K)" {
		t.Errorf("accountLabel = %q", got)
	}
}
