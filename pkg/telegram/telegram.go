// Package telegram connects to the messaging platform and exposes the dialog
// list, message history and sign-in flow behind small interfaces.
package telegram

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/santaclaude2025/tgstats/pkg/types"
)

var (
	// ErrAuthentication is returned when signing in fails for any reason
	ErrAuthentication = errors.New("authentication failed")

	// ErrPasswordNeeded is returned by SignIn when the account has two-step verification enabled
	ErrPasswordNeeded = errors.New("two-step verification password required")

	// ErrNotAuthorized is returned when a stored session is no longer valid
	ErrNotAuthorized = errors.New("session is not authorized")
)

// DialogLister lists the account's dialogs.
//
// Dialogs are yielded pinned first, then newest activity first. Activity is the
// newer of the last message and a saved draft. Callers rely on that ordering to
// stop early.
type DialogLister interface {
	Dialogs(ctx context.Context) iter.Seq2[types.Dialog, error]
}

// MessageFetcher pages through the history of one conversation.
//
// Messages strictly older than before are yielded newest first. Iteration stops
// when the history is exhausted, when the consumer stops, or after the first error.
type MessageFetcher interface {
	Messages(ctx context.Context, peer types.Peer, before time.Time) iter.Seq2[types.Message, error]
}

// Authenticator performs the sign-in steps
type Authenticator interface {
	IsAuthorized(ctx context.Context) (bool, error)
	// RequestCode sends a login code and returns its hash. An empty hash
	// means the platform signed the account in without a code.
	RequestCode(ctx context.Context, phone string) (string, error)
	SignIn(ctx context.Context, phone, code, codeHash string) error
	SignInPassword(ctx context.Context, password string) error
	Self(ctx context.Context) (types.Self, error)
}

// CodePrompter asks the operator for the login code and 2FA password
type CodePrompter interface {
	Code(ctx context.Context) (string, error)
	Password(ctx context.Context) (string, error)
}
