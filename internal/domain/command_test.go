package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantCommand Command
		wantAmount  int64
		wantHas     bool
		expectError error
	}{
		{name: "miti with amount", text: "!miti 50000", wantCommand: CommandMiti, wantAmount: 50000, wantHas: true},
		{name: "thousands separators stripped", text: "!debe 1.250.000", wantCommand: CommandDebe, wantAmount: 1250000, wantHas: true},
		{name: "negative amount", text: "!pago -3.000", wantCommand: CommandPago, wantAmount: -3000, wantHas: true},
		{name: "subtract negates", text: "!subtract 8000", wantCommand: CommandSubtract, wantAmount: -8000, wantHas: true},
		{name: "setbalance", text: "!setbalance 120000", wantCommand: CommandSetBalance, wantAmount: 120000, wantHas: true},
		{name: "surrounding whitespace", text: "  !debe 10  ", wantCommand: CommandDebe, wantAmount: 10, wantHas: true},
		{name: "missing amount", text: "!debe", wantCommand: CommandDebe, expectError: ErrInvalidAmount},
		{name: "separator only", text: "!miti ...", wantCommand: CommandMiti, expectError: ErrInvalidAmount},
		{name: "sign only", text: "!miti -", expectError: ErrUnknownCommand},
		{name: "corregir without amount", text: "!corregir", wantCommand: CommandCorregir},
		{name: "balance", text: "!balance", wantCommand: CommandBalance},
		{name: "erase", text: "!erase", wantCommand: CommandErase},
		{name: "ayuda", text: "!ayuda", wantCommand: CommandAyuda},
		{name: "balance with trailing text", text: "!balance ya", expectError: ErrUnknownCommand},
		{name: "free text", text: "hola", expectError: ErrUnknownCommand},
		{name: "amount with letters", text: "!miti 50k", expectError: ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCommand(tt.text)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.Command != tt.wantCommand {
				t.Errorf("expected command %q, got %q", tt.wantCommand, got.Command)
			}

			if got.HasAmount != tt.wantHas {
				t.Errorf("expected HasAmount=%v, got %v", tt.wantHas, got.HasAmount)
			}

			if tt.wantHas && !got.Amount.Equal(decimal.NewFromInt(tt.wantAmount)) {
				t.Errorf("expected amount %d, got %s", tt.wantAmount, got.Amount)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{input: "5000", want: 5000},
		{input: "5.000", want: 5000},
		{input: "-12.500", want: -12500},
		{input: " 42 pesos", want: 42},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
		{input: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseAmount(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidAmount) {
				t.Fatalf("ParseAmount(%q): expected ErrInvalidAmount, got %v", tt.input, err)
			}
			continue
		}

		if err != nil {
			t.Fatalf("ParseAmount(%q): unexpected error: %v", tt.input, err)
		}

		if !got.Equal(decimal.NewFromInt(tt.want)) {
			t.Fatalf("ParseAmount(%q) = %s, want %d", tt.input, got, tt.want)
		}
	}
}

func TestCommandKind(t *testing.T) {
	tests := []struct {
		command Command
		want    Kind
		ok      bool
	}{
		{CommandMiti, KindMiti, true},
		{CommandSubtract, KindMiti, true},
		{CommandDebe, KindDebe, true},
		{CommandPago, KindPago, true},
		{CommandSetBalance, KindSetBalance, true},
		{CommandBalance, "", false},
		{CommandCorregir, "", false},
	}

	for _, tt := range tests {
		got, ok := tt.command.Kind()
		if got != tt.want || ok != tt.ok {
			t.Errorf("%s.Kind() = (%q, %v), want (%q, %v)", tt.command, got, ok, tt.want, tt.ok)
		}
	}
}
