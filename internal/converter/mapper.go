// =============================================================================
// Wise to LexOffice Converter - Record Mapper
// =============================================================================
//
// This module maps validated Wise records to LexOffice bank-import rows and
// aggregates batch statistics.
//
// PARTY ASSIGNMENT:
//   DEBIT   originator = account holder      recipient = payee name
//   CREDIT  originator = payer name          recipient = account holder
//
// TEXT FIELDS:
//   Purpose    "<description> | Ref: <payment reference>"
//   Zusatzinfo "Fremdbetrag: <amount> <currency> | Wise ID: <id>"
//   Parts whose source fields are empty are left out.
//
// All free-text values pass through Sanitize before they reach a row.
//
// =============================================================================

package converter

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ginjaninja78/wise-lexoffice-converter/internal/config"
	"github.com/ginjaninja78/wise-lexoffice-converter/internal/types"
	"github.com/ginjaninja78/wise-lexoffice-converter/internal/validation"
)

// partSeparator joins the pieces of the purpose and aux info columns.
const partSeparator = " | "

// =============================================================================
// MAPPER
// =============================================================================

// Mapper converts Wise records to LexOffice rows.
type Mapper struct {
	accountHolder string
	log           logrus.FieldLogger
}

// NewMapper creates a Mapper. An empty accountHolder uses the default label.
func NewMapper(accountHolder string, log logrus.FieldLogger) *Mapper {
	if accountHolder == "" {
		accountHolder = config.DefaultAccountHolder
	}

	return &Mapper{
		accountHolder: accountHolder,
		log:           log,
	}
}

// MapRecord maps one record that already passed validation.
func (m *Mapper) MapRecord(record types.InputRecord) types.OutputRecord {
	log := m.log.WithField("transaction_id", record.ID)

	date, err := ConvertDate(record.Date)
	if err != nil {
		log.WithError(err).Warn("Keeping unconverted date")
	}

	amount, err := ConvertAmount(record.Amount)
	if err != nil {
		log.WithError(err).Warn("Substituting zero amount")
	}

	var originator, recipient string
	if record.Direction == types.DirectionOut {
		originator = m.accountHolder
		recipient = Sanitize(record.PayeeName)
	} else {
		originator = Sanitize(record.PayerName)
		recipient = m.accountHolder
	}

	return types.OutputRecord{
		BookingDate: date,
		ValueDate:   date,
		Originator:  originator,
		Recipient:   recipient,
		Purpose:     purpose(record),
		Amount:      amount,
		AuxInfo:     m.auxInfo(record, log),
	}
}

// purpose joins the description and the payment reference.
func purpose(record types.InputRecord) string {
	var parts []string

	if description := Sanitize(record.Description); description != "" {
		parts = append(parts, description)
	}

	if reference := Sanitize(record.PaymentReference); reference != "" {
		parts = append(parts, "Ref: "+reference)
	}

	return strings.Join(parts, partSeparator)
}

// auxInfo joins the foreign amount and the Wise ID. Both parts start with a
// fixed label, so the raw values cannot open a formula.
func (m *Mapper) auxInfo(record types.InputRecord, log logrus.FieldLogger) string {
	var parts []string

	if record.ExchangeToAmount != "" && record.ExchangeTo != "" {
		foreign, err := ConvertAmount(record.ExchangeToAmount)
		if err != nil {
			log.WithError(err).Warn("Substituting zero foreign amount")
		}
		parts = append(parts, "Fremdbetrag: "+foreign+" "+record.ExchangeTo)
	}

	if record.ID != "" {
		parts = append(parts, "Wise ID: "+record.ID)
	}

	return strings.Join(parts, partSeparator)
}

// =============================================================================
// BATCH CONVERSION
// =============================================================================

// ConvertBatch validates and maps every record. Invalid records are logged
// and left out; the order of the remaining records is preserved.
func (m *Mapper) ConvertBatch(records []types.InputRecord) []types.OutputRecord {
	output := make([]types.OutputRecord, 0, len(records))

	for i, record := range records {
		if errs := validation.ValidateRecord(record); len(errs) > 0 {
			m.log.WithFields(logrus.Fields{
				"row":            i + 1,
				"transaction_id": record.ID,
				"errors":         strings.Join(validation.Messages(errs), "; "),
			}).Warn("Dropping invalid record")
			continue
		}

		output = append(output, m.MapRecord(record))
	}

	return output
}

// ComputeStatistics aggregates the full, unfiltered batch.
//
// Unparsable amounts count as zero. The currency is that of the first
// record, or defaultCurrency when the batch is empty or the first record
// has none.
func ComputeStatistics(records []types.InputRecord, defaultCurrency string) types.ConversionStatistics {
	stats := types.ConversionStatistics{
		Total:       len(records),
		TotalAmount: decimal.Zero,
		Currency:    defaultCurrency,
	}

	if len(records) > 0 && records[0].Currency != "" {
		stats.Currency = records[0].Currency
	}

	for _, record := range records {
		switch record.Direction {
		case types.DirectionOut:
			stats.Debit++
		case types.DirectionIn:
			stats.Credit++
		}

		if amount, err := ParseAmount(record.Amount); err == nil {
			stats.TotalAmount = stats.TotalAmount.Add(amount)
		}
	}

	return stats
}
