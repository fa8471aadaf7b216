package telegram

import (
	"context"
	"errors"
	"fmt"

	"github.com/santaclaude2025/tgstats/pkg/logger"
	"github.com/santaclaude2025/tgstats/pkg/types"
)

// Login signs the account in with a login code, falling back to the 2FA
// password when the account requires one. An already authorized session
// skips straight to fetching the account identity.
// Every failure wraps ErrAuthentication.
func Login(ctx context.Context, a Authenticator, in CodePrompter, phone string) (types.Self, error) {
	log := logger.Get()

	authorized, err := a.IsAuthorized(ctx)
	if err != nil {
		return types.Self{}, fmt.Errorf("%w: failed to check session: %w", ErrAuthentication, err)
	}

	if !authorized {
		log.Info("Signing in %s", phone)
		if err := signIn(ctx, a, in, phone); err != nil {
			log.Warn("Sign-in failed for %s: %v", phone, err)
			return types.Self{}, fmt.Errorf("%w: %w", ErrAuthentication, err)
		}
	}

	self, err := a.Self(ctx)
	if err != nil {
		return types.Self{}, fmt.Errorf("%w: failed to get account: %w", ErrAuthentication, err)
	}

	log.Info("Signed in as user %d", self.ID)
	return self, nil
}

func signIn(ctx context.Context, a Authenticator, in CodePrompter, phone string) error {
	hash, err := a.RequestCode(ctx, phone)
	if err != nil {
		return fmt.Errorf("failed to send code: %w", err)
	}
	if hash == "" {
		return nil
	}

	code, err := in.Code(ctx)
	if err != nil {
		return fmt.Errorf("failed to read code: %w", err)
	}

	err = a.SignIn(ctx, phone, code, hash)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrPasswordNeeded) {
		return fmt.Errorf("failed to sign in: %w", err)
	}

	password, err := in.Password(ctx)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if err := a.SignInPassword(ctx, password); err != nil {
		return fmt.Errorf("failed to check password: %w", err)
	}
	return nil
}
