// Package prompt asks for log in and sign up details on the terminal.
package prompt

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/thrivesense/pkg/account"
)

// Choice is the answer to the auth menu.
type Choice int

const (
	LogIn Choice = iota
	SignUp
	Quit
)

var choices = []string{"Log in", "Sign up", "Quit"}

func (c Choice) String() string {
	if int(c) < len(choices) {
		return choices[c]
	}
	return "unknown"
}

// ErrCancelled is returned when the user interrupts a prompt.
var ErrCancelled = errors.New("cancelled")

// Prompter reads answers from In and echoes to Out.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

func (p *Prompter) stdin() io.ReadCloser {
	if p.In == nil {
		return os.Stdin
	}
	return io.NopCloser(p.In)
}

func (p *Prompter) stdout() io.WriteCloser {
	if p.Out == nil {
		return os.Stdout
	}
	return NopCloser(p.Out)
}

var templates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}: ",
	Valid:   "{{ . | green }}: ",
	Invalid: "{{ . | red }}: ",
	Success: "{{ . | bold }}: ",
}

// Menu asks whether to log in or sign up.
func (p *Prompter) Menu() (Choice, error) {
	sel := promptui.Select{
		HideHelp: true,
		Label:    "Welcome to Thrivesense",
		Items:    choices,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . | bold }}",
			Active:   "➜  {{ . | green }}",
			Inactive: "   {{ . }}",
			Selected: "{{ . | bold }}",
		},
		Stdin:  p.stdin(),
		Stdout: p.stdout(),
	}
	i, _, err := sel.Run()
	if err != nil {
		return Quit, cancelled(err)
	}
	return Choice(i), nil
}

// String asks for a required value.
func (p *Prompter) String(label, def string) (string, error) {
	pr := promptui.Prompt{
		Label:     label,
		Default:   def,
		Templates: templates,
		Validate:  Required,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	v, err := pr.Run()
	return strings.TrimSpace(v), cancelled(err)
}

// Optional asks for a value that may be left empty.
func (p *Prompter) Optional(label string) (string, error) {
	pr := promptui.Prompt{
		Label:     label + " (optional)",
		Templates: templates,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	v, err := pr.Run()
	return strings.TrimSpace(v), cancelled(err)
}

// Email asks for an email address.
func (p *Prompter) Email(def string) (string, error) {
	pr := promptui.Prompt{
		Label:     "Email",
		Default:   def,
		Templates: templates,
		Validate:  Email,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	v, err := pr.Run()
	return account.NormalizeEmail(v), cancelled(err)
}

// Password asks for a masked password. Empty is allowed.
func (p *Prompter) Password() (string, error) {
	pr := promptui.Prompt{
		Label:     "Password",
		Mask:      '*',
		Templates: templates,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	v, err := pr.Run()
	return v, cancelled(err)
}

// Required rejects blank input.
func Required(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("required")
	}
	return nil
}

// Email rejects input that isn't a plausible address.
func Email(input string) error {
	a := account.Account{Username: "-", Email: account.NormalizeEmail(input)}
	if err := a.Validate(); err != nil {
		return errors.New("enter a valid email address")
	}
	return nil
}

func cancelled(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return ErrCancelled
	}
	return err
}

// NopCloser returns a WriteCloser with a no-op Close method wrapping w.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
