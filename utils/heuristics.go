package utils

import (
	"regexp"

	"github.com/Aashish23092/planilla-ledger/dto"
)

// NumberFormat names the decimal and thousands separators of a document.
type NumberFormat struct {
	Decimal   rune
	Thousands rune
}

var (
	// PointDecimal reads "1,234.50".
	PointDecimal = NumberFormat{Decimal: '.', Thousands: ','}
	// CommaDecimal reads "1.234,50".
	CommaDecimal = NumberFormat{Decimal: ',', Thousands: '.'}
)

// Heuristics carries every tunable knob of the reconstruction pipeline.
// Vary it per document layout instead of touching pipeline code.
type Heuristics struct {
	// Markers flag page banners, repeated column headers and subtotal lines.
	Markers []string
	// MinCells is the minimum number of non-empty cells of an employee row.
	MinCells int

	NumericPattern     *regexp.Regexp
	PlaceholderPattern *regexp.Regexp
	CodePattern        *regexp.Regexp
	SequencePattern    *regexp.Regexp

	// CodeSentinel is written when no employee code can be recovered.
	CodeSentinel string
	Format       NumberFormat
	Schema       []dto.FieldSpec
	// EmptyTotals emits an all-zero totals row for a ledger with no records.
	EmptyTotals bool
}

// DefaultMarkers are the noise markers of the reference payroll layout.
var DefaultMarkers = []string{
	"AGENCIA",
	"TOTALES",
	"CUENTA",
	"FECHA",
	"CORR.",
	"SALARIO",
	"NOMBRE",
	"CAJA",
	"PLANILLA",
	"CENTRO DE",
	"PAGINA",
	"CODIGO",
}

const (
	DefaultMinCells = 5
	StrictMinCells  = 10

	DefaultCodeSentinel = "Revisar"

	DefaultNumericPattern     = `^[-+]?\s*\p{Sc}?\s*\(?[-+]?\s*\p{Sc}?\s*[-+]?\d[\d.,\s]*\)?$`
	DefaultPlaceholderPattern = `^[-–—]+$`
	DefaultCodePattern        = `^(?:[A-Za-z-]+\d[A-Za-z0-9-]*|\d[A-Za-z0-9-]{2,})$`
	DefaultSequencePattern    = `^\d{1,4}$`
)

// DefaultSchema returns the reference field order of a payroll row, left to right.
func DefaultSchema() []dto.FieldSpec {
	return []dto.FieldSpec{
		{Key: "days_worked", Label: "Días Laborados", Integer: true},
		{Key: "monthly_salary", Label: "Salario Mensual"},
		{Key: "biweekly_salary", Label: "Salario Quincenal"},
		{Key: "overtime", Label: "Horas Extra"},
		{Key: "holiday_pay", Label: "Festivos"},
		{Key: "commissions", Label: "Comisiones"},
		{Key: "vacation_pay", Label: "Vacaciones"},
		{Key: "other_income", Label: "Otros Ingresos"},
		{Key: "gross_salary", Label: "Salario Devengado"},
		{Key: "pension", Label: "AFP"},
		{Key: "health_insurance", Label: "ISSS"},
		{Key: "income_tax", Label: "Renta"},
		{Key: "financial_institution", Label: "Instituciones Financieras"},
		{Key: "loans", Label: "Préstamos"},
		{Key: "other_deductions", Label: "Otros Descuentos"},
		{Key: "total_deductions", Label: "Total Descuentos"},
		{Key: "net_pay", Label: "Líquido a Recibir"},
	}
}

// DefaultHeuristics returns the heuristics tuned for the reference layout.
func DefaultHeuristics() Heuristics {
	markers := make([]string, len(DefaultMarkers))
	copy(markers, DefaultMarkers)

	return Heuristics{
		Markers:            markers,
		MinCells:           DefaultMinCells,
		NumericPattern:     regexp.MustCompile(DefaultNumericPattern),
		PlaceholderPattern: regexp.MustCompile(DefaultPlaceholderPattern),
		CodePattern:        regexp.MustCompile(DefaultCodePattern),
		SequencePattern:    regexp.MustCompile(DefaultSequencePattern),
		CodeSentinel:       DefaultCodeSentinel,
		Format:             PointDecimal,
		Schema:             DefaultSchema(),
	}
}

// StrictHeuristics is DefaultHeuristics with the stricter row-size threshold.
func StrictHeuristics() Heuristics {
	h := DefaultHeuristics()
	h.MinCells = StrictMinCells
	return h
}

// SchemaSize is the number of financial fields N of every record.
func (h Heuristics) SchemaSize() int {
	return len(h.Schema)
}
