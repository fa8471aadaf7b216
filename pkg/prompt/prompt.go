// Package prompt reads operator input from the terminal.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/santaclaude2025/tgstats/pkg/stats"
)

// Prompter asks questions on out and reads answers line by line from in
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // terminal descriptor for hidden input, -1 if in is not a terminal
}

// New creates a Prompter. Password input is hidden when in is a terminal.
func New(in io.Reader, out io.Writer) *Prompter {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &Prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

// Line prints label and returns the trimmed answer. A final line without a
// newline is accepted; io.EOF is returned only when nothing was read.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)

	input, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// Password prints label and reads a line without echoing it when possible
func (p *Prompter) Password(label string) (string, error) {
	if p.fd < 0 {
		return p.Line(label)
	}

	fmt.Fprint(p.out, label)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// Choice asks for a menu item in [1, max] until a valid one is entered
func (p *Prompter) Choice(label string, max int) (int, error) {
	for {
		input, err := p.Line(label)
		if err != nil {
			return 0, err
		}
		n, err := ParseChoice(input, max)
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(p.out, "Неверный выбор. Пожалуйста, выберите существующий пункт.")
	}
}

// DateRange asks for a date or a date range until a valid one is entered
func (p *Prompter) DateRange(loc *time.Location) (start, end time.Time, err error) {
	for {
		input, err := p.Line("Введите дату по которой нужно получить статистику (ДД.ММ.ГГГГ)\n" +
			"или диапазон дат (ДД.ММ.ГГГГ - ДД.ММ.ГГГГ): ")
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start, end, err = ParseDateRange(input, loc)
		if err == nil {
			return start, end, nil
		}
		fmt.Fprintln(p.out, "Неверный формат даты. Повторите")
	}
}

// WorkingHours asks for the working-hours window until a valid one is
// entered. An empty answer selects def.
func (p *Prompter) WorkingHours(def string) (stats.WorkingHours, error) {
	for {
		input, err := p.Line(fmt.Sprintf("Введите рабочие часы (ЧЧ:ММ - ЧЧ:ММ) [%s]: ", def))
		if err != nil {
			return stats.WorkingHours{}, err
		}
		wh, err := ParseWorkingHours(input, def)
		if err == nil {
			return wh, nil
		}
		fmt.Fprintf(p.out, "Неверные рабочие часы: %v. Повторите\n", err)
	}
}

// Login adapts the Prompter to the sign-in code and password questions
func (p *Prompter) Login() LoginInput {
	return LoginInput{p: p}
}

// LoginInput asks for the login code and the 2FA password
type LoginInput struct {
	p *Prompter
}

// Code asks for the login code
func (l LoginInput) Code(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return l.p.Line("Введите код который вы получили: ")
}

// Password asks for the 2FA password
func (l LoginInput) Password(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return l.p.Password("Двухфакторная авторизация. Введите пароль: ")
}
