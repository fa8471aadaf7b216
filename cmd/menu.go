package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/santaclaude2025/tgstats/pkg/config"
	"github.com/santaclaude2025/tgstats/pkg/logger"
	"github.com/santaclaude2025/tgstats/pkg/prompt"
	"github.com/santaclaude2025/tgstats/pkg/report"
	"github.com/santaclaude2025/tgstats/pkg/telegram"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	errorColor   = color.New(color.FgRed)
	successColor = color.New(color.FgGreen)
)

// app holds what the interactive flows share
type app struct {
	in  *prompt.Prompter
	out io.Writer
	loc *time.Location
}

func newApp(in io.Reader, out io.Writer, loc *time.Location) *app {
	return &app{in: prompt.New(in, out), out: out, loc: loc}
}

// tgSession is what the account flows use of a connected client
type tgSession interface {
	telegram.Authenticator
	report.Source
}

// connect runs fn while connected to Telegram. Tests swap it for a fake.
var connect = func(ctx context.Context, opts telegram.Options, fn func(context.Context, tgSession) error) error {
	return telegram.Connect(ctx, opts, func(ctx context.Context, c *telegram.Client) error {
		return fn(ctx, c)
	})
}

func runMenu(cmd *cobra.Command, args []string) error {
	config.LoadEnv()
	logger.Init()
	defer logger.Close()

	logger.Info("Starting interactive menu")

	loc, err := config.Location()
	if err != nil {
		logger.Error("Invalid timezone: %v", err)
		return err
	}

	if created, err := config.EnsureStateDir(); err != nil {
		logger.Error("Failed to create state directory: %v", err)
		return fmt.Errorf("failed to create state directory: %w", err)
	} else if created {
		logger.Info("Created state directory %s", config.GetStateDir())
	}

	return newApp(cmd.InOrStdin(), cmd.OutOrStdout(), loc).menu(cmd.Context())
}

// menu runs until the operator exits, input ends or ctx is cancelled
func (a *app) menu(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprintln(a.out)
		headerColor.Fprintln(a.out, "=== Анализатор статистики чатов ===")
		fmt.Fprintln(a.out, "1. Выбрать из ранее добавленых")
		fmt.Fprintln(a.out, "2. Добавить новый акаунт")
		fmt.Fprintln(a.out, "3. Удалить акаунт")
		fmt.Fprintln(a.out, "4. Выход")

		choice, err := a.in.Line("Выберите действие (1-4): ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = a.selectAccount(ctx)
		case "2":
			err = a.addAccount(ctx)
		case "3":
			err = a.removeAccount()
		case "4":
			logger.Info("Exiting")
			return nil
		default:
			errorColor.Fprintln(a.out, "Неверный выбор. Пожалуйста, выберите 1-4.")
			continue
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			a.reportError(err)
		}
	}
}

// reportError logs err and prints an operator-facing message for it
func (a *app) reportError(err error) {
	logger.Error("%v", err)

	var msg string
	switch {
	case errors.Is(err, context.Canceled):
		msg = "Операция прервана"
	case errors.Is(err, config.ErrAccountNotFound):
		msg = "Акаунт не найден в конфигурации. Добавьте его заново."
	case errors.Is(err, config.ErrInvalidAPIID):
		msg = "Неверный API ID. Пожалуйста, введите целое число."
	case errors.Is(err, telegram.ErrNotAuthorized):
		msg = "Сессия недействительна и удалена. Добавьте акаунт заново."
	case errors.Is(err, telegram.ErrAuthentication):
		msg = fmt.Sprintf("Ошибка во время входа: %v", err)
	case errors.Is(err, report.ErrFetch):
		msg = fmt.Sprintf("Ошибка при получении чатов: %v", err)
	case errors.Is(err, prompt.ErrInvalidInput):
		msg = fmt.Sprintf("Неверный ввод: %v", err)
	default:
		msg = fmt.Sprintf("Ошибка: %v", err)
	}
	errorColor.Fprintln(a.out, msg)
}
