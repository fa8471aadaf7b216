package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/santaclaude2025/tgstats/pkg/config"
	"github.com/santaclaude2025/tgstats/pkg/logger"
	"github.com/santaclaude2025/tgstats/pkg/report"
	"github.com/santaclaude2025/tgstats/pkg/session"
	"github.com/santaclaude2025/tgstats/pkg/telegram"
)

// dump asks for the range and working hours, then runs a report for the account
func (a *app) dump(ctx context.Context, id string, account config.Account) error {
	fmt.Fprintln(a.out)
	headerColor.Fprintln(a.out, "=== Получение статистики ===")

	start, end, err := a.in.DateRange(a.loc)
	if err != nil {
		return err
	}
	wh, err := a.in.WorkingHours(config.WorkingHoursDefault())
	if err != nil {
		return err
	}

	path := config.GetSessionPath(id)
	if !session.Exists(path) {
		return fmt.Errorf("%w: no session file for %s", config.ErrAccountNotFound, id)
	}

	store, err := session.Open(path)
	if err != nil {
		return err
	}

	opts := telegram.Options{
		AppID:    account.APIID,
		AppHash:  account.APIHash,
		Storage:  store,
		Location: a.loc,
	}

	var res *report.Result
	err = connect(ctx, opts, func(ctx context.Context, c tgSession) error {
		authorized, err := c.IsAuthorized(ctx)
		if err != nil {
			return err
		}
		if !authorized {
			return telegram.ErrNotAuthorized
		}

		res, err = report.Run(ctx, c, report.Options{
			Start:        start,
			End:          end,
			Location:     a.loc,
			WorkingHours: wh,
			Console:      a.out,
		})
		return err
	})
	store.Close()

	if errors.Is(err, telegram.ErrNotAuthorized) {
		logger.Warn("Session for %s is not authorized, removing it", id)
		if rmErr := session.Remove(path); rmErr != nil {
			logger.Warn("Failed to remove session file: %v", rmErr)
		}
		return err
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out)
	successColor.Fprintf(a.out, "Готово: %d чатов, без ответа %d\n", res.Global.Conversations, res.Global.Unanswered)
	fmt.Fprintf(a.out, "Переписки: %s\n", res.OutputDir)
	fmt.Fprintf(a.out, "Статистика: %s\n", res.SummaryPath)
	fmt.Fprintf(a.out, "Запуск: %s\n", res.RunID)
	return nil
}
