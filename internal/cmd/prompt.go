package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/boomcli/boom/internal/project"
	"github.com/boomcli/boom/internal/templates"
)

// isInteractive reports whether prompts can be shown. Tests replace it.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}

// accessiblePrompts selects huh's line-based accessible mode over the
// full-screen form. Tests replace it.
var accessiblePrompts = func() bool {
	return os.Getenv("ACCESSIBLE") != ""
}

// prompter runs single-field huh forms on in and out.
type prompter struct {
	in         io.Reader
	out        io.Writer
	accessible bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{in: in, out: out, accessible: accessiblePrompts()}
	if p.accessible {
		p.in = &lineReader{r: in}
	}
	return p
}

// lineReader hands out one byte per Read. Accessible fields each scan the
// input anew, so none of them may buffer past its own line.
type lineReader struct {
	r io.Reader
}

func (l *lineReader) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	return l.r.Read(b[:1])
}

func (p *prompter) run(field huh.Field) error {
	return huh.NewForm(huh.NewGroup(field)).
		WithAccessible(p.accessible).
		WithInput(p.in).
		WithOutput(p.out).
		WithShowHelp(false).
		Run()
}

// ask prompts for the context field key until the answer passes its check.
// An empty answer keeps current when current is valid.
func (p *prompter) ask(key, current string) (string, error) {
	f, ok := project.FieldByKey(key)
	if !ok {
		return "", fmt.Errorf("unknown field %q", key)
	}
	keepCurrent := current != "" && f.Check(current) == nil

	title := f.Prompt
	if current != "" {
		title += " [" + current + "]"
	}

	answer := current
	input := huh.NewInput().
		Title(title).
		Value(&answer).
		Validate(func(s string) error {
			s = strings.TrimSpace(s)
			if s == "" && keepCurrent {
				return nil
			}
			return f.Check(s)
		})
	if err := p.run(input); err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" && keepCurrent {
		answer = current
	}
	// Input that ends early leaves the field unanswered.
	if err := f.Check(answer); err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return answer, nil
}

// confirm asks a yes/no question that defaults to no.
func (p *prompter) confirm(question string) (bool, error) {
	var yes bool
	c := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&yes)
	if err := p.run(c); err != nil {
		return false, err
	}
	return yes, nil
}

// chooseTemplate offers the templates by slug.
func (p *prompter) chooseTemplate(list []templates.Manifest) (templates.Manifest, error) {
	options := make([]huh.Option[string], len(list))
	for i, m := range list {
		options[i] = huh.NewOption(m.Slug+" - "+truncate(m.Description, 40), m.Slug)
	}

	var slug string
	sel := huh.NewSelect[string]().
		Title("Template to use:").
		Options(options...).
		Value(&slug)
	if err := p.run(sel); err != nil {
		return templates.Manifest{}, fmt.Errorf("reading template choice: %w", err)
	}

	for _, m := range list {
		if m.Slug == slug {
			return m, nil
		}
	}
	return templates.Manifest{}, fmt.Errorf("no template chosen")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
