// Package console is the line-based terminal front end.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fadedpez/tong777/pkg/entities"
)

// Console reads answers line by line from in and writes prompts to out.
// It implements games.Presenter.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a console over in and out
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Printf writes formatted text
func (c *Console) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

// Println writes a line
func (c *Console) Println(args ...interface{}) {
	fmt.Fprintln(c.out, args...)
}

// Ask prints the question and returns the trimmed answer. It returns
// io.EOF once input is exhausted.
func (c *Console) Ask(question string) (string, error) {
	fmt.Fprint(c.out, question)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// AskAmount keeps asking until the answer parses as a decimal amount
func (c *Console) AskAmount(question string) (decimal.Decimal, error) {
	for {
		answer, err := c.Ask(question)
		if err != nil {
			return decimal.Zero, err
		}
		amount, err := decimal.NewFromString(answer)
		if err == nil {
			return amount, nil
		}
		c.Println("❗ Please enter an amount like 10 or 2.50")
	}
}

// Menu prints numbered options and returns the index of the one picked
func (c *Console) Menu(title string, options []string) (int, error) {
	for {
		c.Println()
		c.Println(title)
		for i, opt := range options {
			c.Printf("  %d) %s\n", i+1, opt)
		}

		answer, err := c.Ask("> ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		c.Printf("❗ Pick a number between 1 and %d\n", len(options))
	}
}

// RawBet implements games.Presenter
func (c *Console) RawBet(available decimal.Decimal) (string, error) {
	return c.Ask(fmt.Sprintf("Balance: %s. Your bet (0 to go back): ", available.StringFixed(2)))
}

// Choose implements entities.ChoiceStream. The answer may be an option's
// number, its name or its first letter.
func (c *Console) Choose(prompt entities.Prompt) (entities.Choice, error) {
	if prompt.State != "" {
		c.Println(prompt.State)
	}

	labels := make([]string, len(prompt.Options))
	for i, opt := range prompt.Options {
		labels[i] = fmt.Sprintf("%d) %s", i+1, opt)
	}

	answer, err := c.Ask(fmt.Sprintf("%s [%s] ", prompt.Question, strings.Join(labels, ", ")))
	if err != nil {
		return "", err
	}
	return matchChoice(answer, prompt.Options), nil
}

// matchChoice maps an answer to an option; unmatched answers come back as
// typed so the caller can reject them
func matchChoice(answer string, options []entities.Choice) entities.Choice {
	answer = strings.ToLower(answer)
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}

	var byInitial []entities.Choice
	for _, opt := range options {
		if answer == string(opt) {
			return opt
		}
		if len(answer) == 1 && strings.HasPrefix(string(opt), answer) {
			byInitial = append(byInitial, opt)
		}
	}
	if len(byInitial) == 1 {
		return byInitial[0]
	}
	return entities.Choice(answer)
}

// Rejected implements games.Presenter
func (c *Console) Rejected(err error) {
	if errors.Is(err, io.EOF) {
		return
	}
	c.Println(FormatError(err))
}

// Resolved implements games.Presenter
func (c *Console) Resolved(outcome *entities.Outcome) {
	c.Println(FormatOutcome(outcome))
}
