// =============================================================================
// Wise to LexOffice Converter - Sample Export Generator
// =============================================================================
//
// This module generates random but plausible Wise exports for testing the
// converter by hand or in benchmarks.
//
// SHAPE OF THE DATA:
//   - DEBIT rows are TRANSFER (70%), CARD (20%) or CONVERSION (10%)
//   - CREDIT rows are MONEY_ADDED (50%), TRANSFER (20%) or UNKNOWN (30%)
//   - About 70% of debits carry exchange information
//   - UNKNOWN credits are cashbacks with a BALANCE_CASHBACK-<uuid> ID,
//     everything else gets TRANSFER-<10 digits>
//   - Consecutive rows often share a date
//
// The same seed always produces the same rows.
//
// =============================================================================

package generator

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/wise-lexoffice-converter/internal/types"
	"github.com/ginjaninja78/wise-lexoffice-converter/internal/writer"
)

// DefaultCount is the number of rows generated when no count is given.
const DefaultCount = 25

// DefaultOutputFile is the file written by the generate command.
const DefaultOutputFile = "wise-export-generated.csv"

// =============================================================================
// DATA POOLS
// =============================================================================

var (
	currencies = []string{"EUR", "USD", "GBP", "PHP", "THB", "JPY"}
	banks      = []string{"CIMB", "UB", "BDO", "BPI", "SB", "PNB"}

	firstNames = []string{
		"Max", "Anna", "Peter", "Maria", "Hans", "Sophie", "Klaus", "Emma",
		"Thomas", "Laura", "Michael", "Sarah", "Andreas", "Julia", "Stefan",
		"Lisa", "Christian", "Nina", "Martin", "Jessica", "Daniel", "Michelle",
	}

	lastNames = []string{
		"Müller", "Schmidt", "Schneider", "Fischer", "Weber", "Meyer", "Wagner",
		"Becker", "Schulz", "Hoffmann", "Koch", "Bauer", "Richter", "Klein",
		"Wolf", "Schröder", "Neumann", "Schwarz", "Zimmermann", "Braun",
	}

	merchants = []string{
		"Amazon", "Google", "Microsoft", "Apple", "Netflix", "Spotify",
		"Dropbox", "Adobe", "Zoom", "Slack", "Stripe", "PayPal", "GitHub",
	}

	debitDescriptions = []string{
		"Geld überwiesen an",
		"Zahlung an",
		"Überweisung an",
		"Bezahlung für Dienstleistung",
		"Rechnung bezahlt an",
	}

	creditDescriptions = []string{
		"Einzahlung auf das Konto",
		"Geld erhalten von",
		"Gehalt",
		"Rückerstattung",
		"Cashback",
		"Zinsen",
	}
)

// Transaction details types.
const (
	DetailTransfer   = "TRANSFER"
	DetailCard       = "CARD"
	DetailMoneyAdded = "MONEY_ADDED"
	DetailConversion = "CONVERSION"
	DetailUnknown    = "UNKNOWN"
)

// accountCurrency is the currency of the generated Wise balance.
const accountCurrency = "EUR"

// =============================================================================
// GENERATOR
// =============================================================================

// Generator produces random Wise records.
type Generator struct {
	rand *rand.Rand

	// Start and End bound the generated booking dates.
	Start time.Time
	End   time.Time
}

// New creates a Generator seeded with seed. Dates fall within 2025.
func New(seed int64) *Generator {
	return &Generator{
		rand:  rand.New(rand.NewSource(seed)),
		Start: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Generate returns count records in generation order.
func (g *Generator) Generate(count int) []types.InputRecord {
	records := make([]types.InputRecord, 0, count)
	balance := g.amount(5000, 20000, 2)
	currentDate := ""

	for i := 0; i < count; i++ {
		record, next := g.transaction(balance, currentDate)
		records = append(records, record)
		balance = next

		// Sometimes use the same date for the next transaction.
		if g.rand.Float64() > 0.3 {
			currentDate = record.Date
		} else {
			currentDate = ""
		}
	}

	return records
}

// transaction generates one record and returns the new running balance.
func (g *Generator) transaction(balance decimal.Decimal, date string) (types.InputRecord, decimal.Decimal) {
	direction := types.DirectionIn
	if g.rand.Intn(2) == 0 {
		direction = types.DirectionOut
	}
	isDebit := direction == types.DirectionOut

	detailType := g.detailType(isDebit)

	var amount decimal.Decimal
	if isDebit {
		amount = g.amount(50, 2000, 2).Neg()
	} else {
		amount = g.amount(100, 10000, 2)
	}
	balance = balance.Add(amount)

	if date == "" {
		date = g.date()
	}

	record := types.InputRecord{
		Date:           date,
		DateTime:       g.dateTime(date),
		Amount:         amount.StringFixed(2),
		Currency:       accountCurrency,
		RunningBalance: balance.StringFixed(2),
		Direction:      direction,
		DetailsType:    detailType,
	}

	if isDebit && g.rand.Float64() > 0.3 {
		rate := g.amount(40, 150, 5)
		record.ExchangeFrom = accountCurrency
		record.ExchangeTo = g.pick(foreignCurrencies())
		record.ExchangeRate = rate.StringFixed(5)
		record.ExchangeToAmount = amount.Mul(rate).Abs().StringFixed(2)
	}

	if detailType == DetailTransfer {
		if isDebit {
			record.PayeeName = g.personName()
			record.PayeeAccountNumber = g.accountNumber()
		} else {
			record.PayerName = g.personName()
		}
	}

	switch {
	case detailType == DetailCard:
		record.Description = "Card payment to " + g.pick(merchants)
	case detailType == DetailMoneyAdded:
		record.Description = g.pick(creditDescriptions)
	case isDebit:
		record.Description = strings.TrimSpace(g.pick(debitDescriptions) + " " + record.PayeeName)
	default:
		record.Description = g.pick(creditDescriptions)
	}

	if detailType == DetailTransfer && isDebit {
		record.PaymentReference = g.invoiceReference()
	}

	if detailType == DetailCard {
		record.Merchant = g.pick(merchants)
		record.CardLastFourDigits = fmt.Sprint(g.between(1000, 9999))
		record.CardHolderFullName = g.personName()
	}

	if isDebit {
		record.TotalFees = g.amount(2, 15, 2).StringFixed(2)
	}

	if detailType == DetailUnknown && !isDebit {
		record.ID = g.cashbackID()
	} else {
		record.ID = fmt.Sprintf("TRANSFER-%d", g.between(1000000000, 9999999999))
	}

	return record, balance
}

func (g *Generator) detailType(isDebit bool) string {
	roll := g.rand.Float64()
	if isDebit {
		switch {
		case roll < 0.7:
			return DetailTransfer
		case roll < 0.9:
			return DetailCard
		default:
			return DetailConversion
		}
	}

	switch {
	case roll < 0.5:
		return DetailMoneyAdded
	case roll < 0.7:
		return DetailTransfer
	default:
		return DetailUnknown
	}
}

// =============================================================================
// RANDOM HELPERS
// =============================================================================

// between returns an integer in [lo, hi].
func (g *Generator) between(lo, hi int64) int64 {
	return lo + g.rand.Int63n(hi-lo+1)
}

// amount returns a decimal in [lo, hi) rounded to places.
func (g *Generator) amount(lo, hi float64, places int32) decimal.Decimal {
	value := g.rand.Float64()*(hi-lo) + lo
	return decimal.NewFromFloat(value).Round(places)
}

func (g *Generator) pick(items []string) string {
	return items[g.rand.Intn(len(items))]
}

func (g *Generator) date() string {
	span := g.End.Sub(g.Start)
	offset := time.Duration(g.rand.Int63n(int64(span) + 1))
	return g.Start.Add(offset).Format("02-01-2006")
}

func (g *Generator) dateTime(date string) string {
	return fmt.Sprintf("%s %02d:%02d:%02d.%03d",
		date, g.rand.Intn(24), g.rand.Intn(60), g.rand.Intn(60), g.rand.Intn(1000))
}

func (g *Generator) personName() string {
	return g.pick(firstNames) + " " + g.pick(lastNames)
}

func (g *Generator) accountNumber() string {
	length := g.between(10, 16)

	var digits strings.Builder
	for i := int64(0); i < length; i++ {
		digits.WriteByte(byte('0' + g.rand.Intn(10)))
	}

	return fmt.Sprintf("(%s) %s", g.pick(banks), digits.String())
}

func (g *Generator) invoiceReference() string {
	switch g.rand.Intn(4) {
	case 0:
		return fmt.Sprintf("Invoice %d", g.between(1, 99))
	case 1:
		return fmt.Sprintf("INV-%07d", g.between(1, 9999))
	case 2:
		return fmt.Sprintf("Rechnung %d", g.between(1000, 9999))
	default:
		return fmt.Sprintf("RG-%d", g.between(100, 999))
	}
}

func (g *Generator) cashbackID() string {
	id, err := uuid.NewRandomFromReader(g.rand)
	if err != nil {
		return "BALANCE_CASHBACK-" + uuid.NewString()
	}
	return "BALANCE_CASHBACK-" + id.String()
}

func foreignCurrencies() []string {
	foreign := make([]string, 0, len(currencies)-1)
	for _, currency := range currencies {
		if currency != accountCurrency {
			foreign = append(foreign, currency)
		}
	}
	return foreign
}

// =============================================================================
// ENCODING
// =============================================================================

// Encode writes records as a Wise CSV export: all columns, comma separated,
// LF line endings.
func Encode(records []types.InputRecord) ([]byte, error) {
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = record.Values()
	}

	var buf bytes.Buffer
	if err := writer.WriteCSV(&buf, types.WiseHeaders, rows, writer.Options{Delimiter: ','}); err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	return buf.Bytes(), nil
}
