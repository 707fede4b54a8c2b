// Package gate asks for a single yes/no decision covering a whole plan.
package gate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Confirmer decides whether a described plan may run.
type Confirmer interface {
	Confirm(description string) (bool, error)
}

// Func adapts a function to Confirmer.
type Func func(description string) (bool, error)

func (f Func) Confirm(description string) (bool, error) { return f(description) }

// Always returns a Confirmer with a fixed answer.
func Always(answer bool) Confirmer {
	return Func(func(string) (bool, error) { return answer, nil })
}

// Prompt asks on a terminal. Anything but y/yes counts as no once the
// reader is exhausted; unrecognised answers are asked again.
type Prompt struct {
	Reader *bufio.Reader
	Out    io.Writer
	// Question defaults to "Run these actions?".
	Question string
}

func (p *Prompt) Confirm(description string) (bool, error) {
	question := p.Question
	if question == "" {
		question = "Run these actions?"
	}
	if description != "" {
		fmt.Fprintln(p.Out, strings.TrimRight(description, "\n"))
	}
	for {
		fmt.Fprintf(p.Out, "%s [y/N]: ", question)
		line, err := p.Reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		switch answer {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			return false, nil
		}
	}
}
