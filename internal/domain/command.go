package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Command is a chat command token.
type Command string

const (
	CommandMiti       Command = "!miti"
	CommandSubtract   Command = "!subtract"
	CommandDebe       Command = "!debe"
	CommandPago       Command = "!pago"
	CommandSetBalance Command = "!setbalance"
	CommandBalance    Command = "!balance"
	CommandErase      Command = "!erase"
	CommandAyuda      Command = "!ayuda"
	CommandCorregir   Command = "!corregir"
)

var (
	amountCommandPattern  = regexp.MustCompile(`^(!miti|!subtract|!debe|!pago|!setbalance|!corregir)(?:\s+(-?[\d.]+))?$`)
	leadingIntegerPattern = regexp.MustCompile(`^\s*([+-]?\d+)`)
)

// RequiresAmount reports whether the command must be followed by an amount.
func (c Command) RequiresAmount() bool {
	switch c {
	case CommandMiti, CommandSubtract, CommandDebe, CommandPago, CommandSetBalance:
		return true
	}
	return false
}

// Kind returns the entry kind written by the command.
func (c Command) Kind() (Kind, bool) {
	switch c {
	case CommandMiti, CommandSubtract:
		return KindMiti, true
	case CommandDebe:
		return KindDebe, true
	case CommandPago:
		return KindPago, true
	case CommandSetBalance:
		return KindSetBalance, true
	}
	return "", false
}

// ParsedCommand is the result of classifying an inbound text line.
type ParsedCommand struct {
	Command   Command
	Amount    decimal.Decimal
	HasAmount bool
}

// ParseCommand classifies text as a command with an optional amount.
// It returns ErrUnknownCommand for free-form text and ErrInvalidAmount when a
// command that needs an amount has none; in the latter case the command is
// still populated.
func ParseCommand(text string) (ParsedCommand, error) {
	text = strings.TrimSpace(text)

	switch Command(text) {
	case CommandBalance, CommandErase, CommandAyuda:
		return ParsedCommand{Command: Command(text)}, nil
	}

	match := amountCommandPattern.FindStringSubmatch(text)
	if match == nil {
		return ParsedCommand{}, ErrUnknownCommand
	}

	parsed := ParsedCommand{Command: Command(match[1])}

	if match[2] != "" {
		amount, err := ParseAmount(match[2])
		if err == nil {
			parsed.Amount = amount
			parsed.HasAmount = true
		}
	}

	if parsed.Command == CommandSubtract && parsed.HasAmount {
		parsed.Amount = parsed.Amount.Neg()
	}

	if parsed.Command.RequiresAmount() && !parsed.HasAmount {
		return parsed, ErrInvalidAmount
	}

	return parsed, nil
}

// ParseAmount parses a signed integer amount, ignoring "." thousands
// separators. Trailing non-digit text after the number is ignored.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(s, ".", "")

	match := leadingIntegerPattern.FindStringSubmatch(cleaned)
	if match == nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	n, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return decimal.NewFromInt(n), nil
}
