package usecase

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/iho/mitiledger/internal/domain"
)

const helpText = `
Comandos disponibles:

1. !miti <monto> - Divide el monto entre dos y actualiza los balances correspondientes. La mitad del monto se debe a la otra persona.
2. !subtract <monto> - Similar a !miti, pero resta el monto en lugar de sumarlo.
3. !debe <monto> - Registra el monto completo como una deuda de la otra parte.
4. !pago <monto> - Registra el monto completo como un abono de la deuda de la otra parte.
5. !setbalance <monto> - Establece el balance inicial al monto especificado y ajusta el balance de la contraparte al negativo del mismo monto.
6. !balance - Muestra el balance actual y resume quién le debe a quién.
7. !erase - Restablece todos los balances a cero.
8. !ayuda - Muestra esta lista de comandos y sus descripciones.
9. !corregir - Corrige el último registro.
`

// Fixed replies.
const (
	msgAskDescription       = "Por favor proporciona una descripción para esta transacción."
	msgInvalidAmount        = "Monto inválido"
	msgNothingToCorrect     = "No se encontró ninguna transacción anterior para corregir."
	msgNotCorrectable       = "El último registro es un balance establecido y no se puede corregir. Usa !setbalance de nuevo."
	msgAskNewAmount         = "Por favor ingresa el nuevo monto."
	msgAskNewDescription    = "Por favor ingresa la nueva descripción."
	msgCorrectionCancelled  = "Corrección cancelada."
	msgCorrectionBadAmount  = "Monto inválido. Corrección cancelada."
	msgCorrected            = "Transacción corregida exitosamente."
	msgErased               = "Todos los balances se han reiniciado a cero."
	msgNoDebts              = "No hay deudas pendientes."
	msgInternalError        = "Ocurrió un error al procesar el comando. Intenta de nuevo."
	correctionDateLayout    = "2006-01-02 15:04:05"
	currencySymbol          = "$"
	defaultFormatterLocale  = "es-CO"
	correctionConfirmAnswer = "si"
)

// Formatter renders amounts and confirmations as chat text.
type Formatter struct {
	printer  *message.Printer
	pair     domain.ParticipantPair
	location *time.Location
}

// NewFormatter creates a Formatter for the pair using Colombian peso formatting.
func NewFormatter(pair domain.ParticipantPair) *Formatter {
	return &Formatter{
		printer:  message.NewPrinter(language.MustParse(defaultFormatterLocale)),
		pair:     pair,
		location: time.UTC,
	}
}

// WithLocation sets the zone used to print entry dates.
func (f *Formatter) WithLocation(loc *time.Location) *Formatter {
	if loc != nil {
		f.location = loc
	}
	return f
}

// Currency renders an amount like "$ 50.000" or "-$ 12.500,50".
func (f *Formatter) Currency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}

	scale := int32(0)
	if !amount.IsInteger() {
		scale = 2
	}

	abs := amount.Abs().Round(scale)
	whole := abs.Truncate(0)

	var digits string
	if whole.LessThanOrEqual(maxExactInteger) {
		digits = f.printer.Sprint(number.Decimal(whole.IntPart()))
	} else {
		digits = groupThousands(whole.String())
	}

	if scale > 0 {
		digits += fmt.Sprintf(",%02d", abs.Sub(whole).Shift(scale).IntPart())
	}

	return sign + currencySymbol + " " + digits
}

// maxExactInteger is the largest whole amount printed through the locale printer.
var maxExactInteger = decimal.NewFromInt(math.MaxInt64)

func groupThousands(digits string) string {
	var b strings.Builder

	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	return b.String()
}

// Recorded renders the confirmation for a completed amount command.
func (f *Formatter) Recorded(r *RecordResult) string {
	sender := f.pair.Name(r.Sender)
	counterpart := f.pair.Name(r.Counterpart)

	switch r.Kind {
	case domain.KindDebe:
		return fmt.Sprintf("Registro: %s debe %s a %s - %s",
			f.Currency(r.Amount), counterpart, sender, r.Description)
	case domain.KindPago:
		return fmt.Sprintf("Registro: %s abono de %s a %s - %s",
			f.Currency(r.Amount), sender, counterpart, r.Description)
	case domain.KindSetBalance:
		return fmt.Sprintf("Balance establecido: %s a favor de %s y %s a %s - %s",
			f.Currency(r.Amount), sender, f.Currency(r.Amount.Neg()), counterpart, r.Description)
	default:
		half := f.Currency(domain.SplitHalf(r.Amount))
		return fmt.Sprintf("Transacción registrada: %s pagó %s, %s debe %s - %s",
			half, sender, half, counterpart, r.Description)
	}
}

// CorrectionPreview shows the entry about to be corrected.
func (f *Formatter) CorrectionPreview(last *LastTransaction) string {
	return fmt.Sprintf("Último registro:\nMonto: %s\nDescripción: %s\nFecha: %s\n\n¿Deseas continuar con la corrección? (responde con \"si\" o \"no\")",
		f.Currency(last.Amount), last.Description, last.CreatedAt.In(f.location).Format(correctionDateLayout))
}

// Balance renders the balance report with its debt summary.
func (f *Formatter) Balance(report domain.BalanceReport) string {
	var b strings.Builder

	b.WriteString("Este es el balance actual:\n")
	for _, pb := range report.Balances {
		fmt.Fprintf(&b, "%s: %s\n", f.pair.Name(pb.Participant), f.Currency(pb.Balance))
	}

	b.WriteString("\nResumen de deudas:\n")
	if report.Settled() {
		b.WriteString(msgNoDebts)
		return b.String()
	}

	fmt.Fprintf(&b, "%s le debe %s a %s\n",
		f.pair.Name(report.Debt.Debtor), f.Currency(report.Debt.Amount), f.pair.Name(report.Debt.Creditor))

	return b.String()
}

// Help returns the command list.
func (f *Formatter) Help() string {
	return helpText
}
