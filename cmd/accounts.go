package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/santaclaude2025/tgstats/pkg/config"
	"github.com/santaclaude2025/tgstats/pkg/logger"
	"github.com/santaclaude2025/tgstats/pkg/prompt"
	"github.com/santaclaude2025/tgstats/pkg/session"
	"github.com/santaclaude2025/tgstats/pkg/telegram"
	"github.com/santaclaude2025/tgstats/pkg/types"
	"github.com/santaclaude2025/tgstats/pkg/utils"
)

func (a *app) selectAccount(ctx context.Context) error {
	ids, err := session.List(config.GetStateDir())
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(a.out, "\nСписок пуст")
		return nil
	}

	accounts, err := config.LoadAccounts()
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out)
	headerColor.Fprintln(a.out, "=== Выбор акаунта ===")
	for i, id := range ids {
		fmt.Fprintf(a.out, "%d.  %s%s\n", i+1, id, accountLabel(accounts[id]))
	}

	n, err := a.in.Choice(fmt.Sprintf("Выберите акаунт (%s): ", prompt.ChoiceRange(len(ids))), len(ids))
	if err != nil {
		return err
	}

	id := ids[n-1]
	account, err := config.GetAccount(id)
	if err != nil {
		return err
	}

	logger.Info("Selected account %s", id)
	return a.dump(ctx, id, account)
}

func (a *app) addAccount(ctx context.Context) error {
	phone, err := a.in.Line("\nВведите номер телефона (полный, напр.: +380991234567): ")
	if err != nil {
		return err
	}
	id := config.SanitizePhone(phone)
	if id == "" {
		return fmt.Errorf("%w: phone number %q has no digits", prompt.ErrInvalidInput, phone)
	}

	defaultID, defaultHash := config.APICredentialsDefault()
	apiIDInput, err := a.lineWithDefault("Введите Telegram API ID", defaultID, defaultID)
	if err != nil {
		return err
	}
	apiHash, err := a.lineWithDefault("Введите Telegram API Hash", defaultHash, utils.TruncateSecret(defaultHash, 4, 4))
	if err != nil {
		return err
	}

	apiID, err := config.ParseAPIID(apiIDInput)
	if err != nil {
		return err
	}

	path := config.GetSessionPath(id)
	self, err := a.login(ctx, path, apiID, apiHash, phone)
	if err != nil {
		if rmErr := session.Remove(path); rmErr != nil {
			logger.Warn("Failed to remove session file after failed login: %v", rmErr)
		}
		return err
	}

	successColor.Fprintln(a.out, "Успех!")
	fmt.Fprintf(a.out, "Акаунт: %s (%s)\n", self.FirstName, self.Username)

	account := config.Account{
		APIID:     apiID,
		APIHash:   apiHash,
		Phone:     phone,
		FirstName: self.FirstName,
		LastName:  self.LastName,
	}
	if err := config.AddAccount(id, account); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	logger.Info("Added account %s", id)

	return a.dump(ctx, id, account)
}

func (a *app) removeAccount() error {
	ids, err := session.List(config.GetStateDir())
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(a.out, "\nСписок пуст")
		return nil
	}

	fmt.Fprintln(a.out)
	headerColor.Fprintln(a.out, "=== Удаление акаунта ===")
	for i, id := range ids {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, id)
	}

	n, err := a.in.Choice("Выберите акаунт по номеру телефона: ", len(ids))
	if err != nil {
		return err
	}
	id := ids[n-1]

	if err := session.Remove(config.GetSessionPath(id)); err != nil {
		return err
	}
	if err := config.RemoveAccount(id); err != nil && !errors.Is(err, config.ErrAccountNotFound) {
		return err
	}

	logger.Info("Removed account %s", id)
	successColor.Fprintf(a.out, "Акаунт %s удалён\n", id)
	return nil
}

// login connects with a fresh or existing session file and signs in
func (a *app) login(ctx context.Context, path string, apiID int, apiHash, phone string) (types.Self, error) {
	store, err := session.Open(path)
	if err != nil {
		return types.Self{}, err
	}
	defer store.Close()

	opts := telegram.Options{
		AppID:    apiID,
		AppHash:  apiHash,
		Storage:  store,
		Location: a.loc,
	}

	var self types.Self
	err = connect(ctx, opts, func(ctx context.Context, c tgSession) error {
		var err error
		self, err = telegram.Login(ctx, c, a.in.Login(), phone)
		return err
	})
	if err != nil && !errors.Is(err, telegram.ErrAuthentication) {
		err = fmt.Errorf("%w: %w", telegram.ErrAuthentication, err)
	}
	return self, err
}

// lineWithDefault asks for a value, offering def (displayed as shown) when it is set
func (a *app) lineWithDefault(label, def, shown string) (string, error) {
	if def == "" {
		return a.in.Line(label + ": ")
	}
	v, err := a.in.Line(fmt.Sprintf("%s [%s]: ", label, shown))
	if err != nil {
		return "", err
	}
	if v == "" {
		return def, nil
	}
	return v, nil
}

// accountLabel renders " (First Last)" for a registry entry, or "" without a name
func accountLabel(account config.Account) string {
	name := strings.TrimSpace(account.FirstName + " " + account.LastName)
	if name == "" {
		return ""
	}
	return " (" + utils.TruncateEnd(name, 40) + ")"
}
