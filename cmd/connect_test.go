package cmd

import (
	"context"
	"errors"
	"iter"
	"strings"
	"testing"
	"time"

	"github.com/santaclaude2025/tgstats/pkg/config"
	"github.com/santaclaude2025/tgstats/pkg/session"
	"github.com/santaclaude2025/tgstats/pkg/telegram"
	"github.com/santaclaude2025/tgstats/pkg/types"
)

type fakeSession struct {
	authorized bool
	requestErr error
	signInErr  error
	listed     bool
}

func (f *fakeSession) IsAuthorized(ctx context.Context) (bool, error) { return f.authorized, nil }

func (f *fakeSession) RequestCode(ctx context.Context, phone string) (string, error) {
	if f.requestErr != nil {
		return "", f.requestErr
	}
	return "code-hash", nil
}

func (f *fakeSession) SignIn(ctx context.Context, phone, code, codeHash string) error {
	return f.signInErr
}

func (f *fakeSession) SignInPassword(ctx context.Context, password string) error { return nil }

func (f *fakeSession) Self(ctx context.Context) (types.Self, error) {
	return types.Self{ID: 1, FirstName: "Anna"}, nil
}

func (f *fakeSession) Dialogs(ctx context.Context) iter.Seq2[types.Dialog, error] {
	f.listed = true
	return func(yield func(types.Dialog, error) bool) {}
}

func (f *fakeSession) Messages(ctx context.Context, peer types.Peer, before time.Time) iter.Seq2[types.Message, error] {
	return func(yield func(types.Message, error) bool) {}
}

// useFakeSession routes connect to fake. sawSession reports whether the
// session file existed while connected.
func useFakeSession(t *testing.T, fake *fakeSession) (sawSession *bool) {
	t.Helper()
	saw := new(bool)
	orig := connect
	connect = func(ctx context.Context, opts telegram.Options, fn func(context.Context, tgSession) error) error {
		if store, ok := opts.Storage.(*session.Store); ok {
			*saw = session.Exists(store.Path())
		}
		return fn(ctx, fake)
	}
	t.Cleanup(func() { connect = orig })
	return saw
}

func TestAddAccount_FailedSignInRemovesSession(t *testing.T) {
	const phone = "+380991234567"

	tests := []struct {
		name  string
		input string
		fake  *fakeSession
	}{
		{
			name:  "code request rejected",
			input: phone + "\n12345\nhash\n",
			fake:  &fakeSession{requestErr: errors.New("PHONE_NUMBER_INVALID")},
		},
		{
			name:  "wrong code",
			input: phone + "\n12345\nhash\n11111\n",
			fake:  &fakeSession{signInErr: errors.New("PHONE_CODE_INVALID")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := testApp(t, tt.input)
			saw := useFakeSession(t, tt.fake)

			err := a.addAccount(context.Background())
			if !errors.Is(err, telegram.ErrAuthentication) {
				t.Fatalf("addAccount error = %v, want ErrAuthentication", err)
			}
			if !*saw {
				t.Error("session file did not exist during sign-in")
			}
			if session.Exists(config.GetSessionPath(phone)) {
				t.Error("session file kept after failed sign-in")
			}
			if _, err := config.GetAccount(phone); !errors.Is(err, config.ErrAccountNotFound) {
				t.Errorf("registry entry saved after failed sign-in: %v", err)
			}
		})
	}
}

func TestSelectAccount_UnauthorizedSessionRemoved(t *testing.T) {
	const id = "+380991234567"
	a, out := testApp(t, "1\n1\n01.03.2024\n\n4\n")

	path := config.GetSessionPath(id)
	store, err := session.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	store.Close()
	if err := config.AddAccount(id, config.Account{APIID: 1, APIHash: "h", Phone: id}); err != nil {
		t.Fatal(err)
	}

	fake := &fakeSession{authorized: false}
	useFakeSession(t, fake)

	if err := a.menu(context.Background()); err != nil {
		t.Fatalf("menu failed: %v", err)
	}

	if !strings.Contains(out.String(), "Сессия недействительна") {
		t.Errorf("unauthorized session not reported:\n%s", out.String())
	}
	if session.Exists(path) {
		t.Error("unauthorized session file was not removed")
	}
	if fake.listed {
		t.Error("report ran with an unauthorized session")
	}
}

func TestDump_UnauthorizedReturnsError(t *testing.T) {
	const id = "+1"
	a, _ := testApp(t, "01.03.2024 - 02.03.2024\n\n")

	path := config.GetSessionPath(id)
	store, err := session.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	store.Close()
	useFakeSession(t, &fakeSession{authorized: false})

	err = a.dump(context.Background(), id, config.Account{APIID: 1, APIHash: "h", Phone: id})
	if !errors.Is(err, telegram.ErrNotAuthorized) {
		t.Errorf("dump error = %v, want ErrNotAuthorized", err)
	}
	if session.Exists(path) {
		t.Error("session file kept after unauthorized run")
	}
}
