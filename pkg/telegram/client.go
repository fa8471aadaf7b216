package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gotd/td/session"
	gotd "github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"

	"github.com/santaclaude2025/tgstats/pkg/types"
)

// pageSize is the number of dialogs or messages requested per call
const pageSize = 100

// Options configures a connection
type Options struct {
	AppID    int
	AppHash  string
	Storage  session.Storage
	Location *time.Location // zone for message timestamps, default time.Local
}

// rawAPI is the subset of the MTProto API used for paging
type rawAPI interface {
	MessagesGetDialogs(ctx context.Context, request *tg.MessagesGetDialogsRequest) (tg.MessagesDialogsClass, error)
	MessagesGetHistory(ctx context.Context, request *tg.MessagesGetHistoryRequest) (tg.MessagesMessagesClass, error)
}

// Client is a connected platform client. It implements DialogLister,
// MessageFetcher and Authenticator.
type Client struct {
	client *gotd.Client
	api    rawAPI
	loc    *time.Location
}

var (
	_ DialogLister   = (*Client)(nil)
	_ MessageFetcher = (*Client)(nil)
	_ Authenticator  = (*Client)(nil)
)

// Connect opens a connection and runs fn while it is up. The connection
// is closed when fn returns or ctx is cancelled.
func Connect(ctx context.Context, opts Options, fn func(ctx context.Context, c *Client) error) error {
	if opts.AppID <= 0 || opts.AppHash == "" {
		return fmt.Errorf("api id and api hash are required")
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	tc := gotd.NewClient(opts.AppID, opts.AppHash, gotd.Options{
		SessionStorage: opts.Storage,
	})

	return tc.Run(ctx, func(ctx context.Context) error {
		return fn(ctx, &Client{client: tc, api: tc.API(), loc: loc})
	})
}

// IsAuthorized reports whether the session is signed in
func (c *Client) IsAuthorized(ctx context.Context) (bool, error) {
	status, err := c.client.Auth().Status(ctx)
	if err != nil {
		return false, err
	}
	return status.Authorized, nil
}

// RequestCode sends a login code to the account's other devices or via SMS
func (c *Client) RequestCode(ctx context.Context, phone string) (string, error) {
	sent, err := c.client.Auth().SendCode(ctx, phone, auth.SendCodeOptions{})
	if err != nil {
		return "", err
	}

	switch s := sent.(type) {
	case *tg.AuthSentCode:
		return s.PhoneCodeHash, nil
	case *tg.AuthSentCodeSuccess:
		return "", nil
	default:
		return "", fmt.Errorf("unexpected sent code type %T", sent)
	}
}

// SignIn completes the login with the received code
func (c *Client) SignIn(ctx context.Context, phone, code, codeHash string) error {
	_, err := c.client.Auth().SignIn(ctx, phone, code, codeHash)
	if errors.Is(err, auth.ErrPasswordAuthNeeded) {
		return ErrPasswordNeeded
	}
	return err
}

// SignInPassword completes a login that requires the 2FA password
func (c *Client) SignInPassword(ctx context.Context, password string) error {
	_, err := c.client.Auth().Password(ctx, password)
	return err
}

// Self returns the signed-in account
func (c *Client) Self(ctx context.Context) (types.Self, error) {
	user, err := c.client.Self(ctx)
	if err != nil {
		return types.Self{}, err
	}
	return types.Self{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
	}, nil
}
