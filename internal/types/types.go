// =============================================================================
// Wise to LexOffice Converter - Shared Types
// =============================================================================
//
// This package contains the record types shared by the parser, validation,
// converter and writer packages. Keeping them here avoids import cycles
// between those packages.
//
// SOURCE SCHEMA:  Wise CSV export (23 columns, comma separated)
// TARGET SCHEMA:  LexOffice bank import (7 columns, semicolon separated)
//
// =============================================================================

package types

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// DIRECTION
// =============================================================================

// Direction is the Wise "Transaction Type" column.
type Direction string

const (
	// DirectionOut marks money leaving the account.
	DirectionOut Direction = "DEBIT"

	// DirectionIn marks money entering the account.
	DirectionIn Direction = "CREDIT"
)

// Valid reports whether d is one of the two recognized directions.
func (d Direction) Valid() bool {
	return d == DirectionOut || d == DirectionIn
}

// =============================================================================
// HEADER CONTRACTS
// =============================================================================

// Wise export column names.
const (
	ColID                 = "TransferWise ID"
	ColDate               = "Date"
	ColDateTime           = "Date Time"
	ColAmount             = "Amount"
	ColCurrency           = "Currency"
	ColDescription        = "Description"
	ColPaymentReference   = "Payment Reference"
	ColRunningBalance     = "Running Balance"
	ColExchangeFrom       = "Exchange From"
	ColExchangeTo         = "Exchange To"
	ColExchangeRate       = "Exchange Rate"
	ColPayerName          = "Payer Name"
	ColPayeeName          = "Payee Name"
	ColPayeeAccountNumber = "Payee Account Number"
	ColMerchant           = "Merchant"
	ColCardLastFour       = "Card Last Four Digits"
	ColCardHolderName     = "Card Holder Full Name"
	ColAttachment         = "Attachment"
	ColNote               = "Note"
	ColTotalFees          = "Total fees"
	ColExchangeToAmount   = "Exchange To Amount"
	ColDirection          = "Transaction Type"
	ColDetailsType        = "Transaction Details Type"
)

// WiseHeaders lists the Wise export columns in export order.
var WiseHeaders = []string{
	ColID,
	ColDate,
	ColDateTime,
	ColAmount,
	ColCurrency,
	ColDescription,
	ColPaymentReference,
	ColRunningBalance,
	ColExchangeFrom,
	ColExchangeTo,
	ColExchangeRate,
	ColPayerName,
	ColPayeeName,
	ColPayeeAccountNumber,
	ColMerchant,
	ColCardLastFour,
	ColCardHolderName,
	ColAttachment,
	ColNote,
	ColTotalFees,
	ColExchangeToAmount,
	ColDirection,
	ColDetailsType,
}

// RequiredWiseHeaders must be present in every parsed header row.
var RequiredWiseHeaders = []string{
	ColID,
	ColDate,
	ColAmount,
	ColDirection,
}

// LexOfficeHeaders lists the LexOffice import columns in output order.
var LexOfficeHeaders = []string{
	"Buchungstag",
	"Valuta",
	"Auftraggeber/Zahlungsempfänger",
	"Empfänger/Zahlungspflichtiger",
	"Vorgang/Verwendungszweck",
	"Betrag",
	"Zusatzinfo (optional)",
}

// =============================================================================
// INPUT RECORD
// =============================================================================

// InputRecord is one row of a Wise export.
// Columns missing from the export are empty strings.
type InputRecord struct {
	ID                 string
	Date               string
	DateTime           string
	Amount             string
	Currency           string
	Description        string
	PaymentReference   string
	RunningBalance     string
	ExchangeFrom       string
	ExchangeTo         string
	ExchangeRate       string
	PayerName          string
	PayeeName          string
	PayeeAccountNumber string
	Merchant           string
	CardLastFourDigits string
	CardHolderFullName string
	Attachment         string
	Note               string
	TotalFees          string
	ExchangeToAmount   string
	Direction          Direction
	DetailsType        string
}

// NewInputRecord builds an InputRecord from a header -> value map.
func NewInputRecord(row map[string]string) InputRecord {
	return InputRecord{
		ID:                 row[ColID],
		Date:               row[ColDate],
		DateTime:           row[ColDateTime],
		Amount:             row[ColAmount],
		Currency:           row[ColCurrency],
		Description:        row[ColDescription],
		PaymentReference:   row[ColPaymentReference],
		RunningBalance:     row[ColRunningBalance],
		ExchangeFrom:       row[ColExchangeFrom],
		ExchangeTo:         row[ColExchangeTo],
		ExchangeRate:       row[ColExchangeRate],
		PayerName:          row[ColPayerName],
		PayeeName:          row[ColPayeeName],
		PayeeAccountNumber: row[ColPayeeAccountNumber],
		Merchant:           row[ColMerchant],
		CardLastFourDigits: row[ColCardLastFour],
		CardHolderFullName: row[ColCardHolderName],
		Attachment:         row[ColAttachment],
		Note:               row[ColNote],
		TotalFees:          row[ColTotalFees],
		ExchangeToAmount:   row[ColExchangeToAmount],
		Direction:          Direction(row[ColDirection]),
		DetailsType:        row[ColDetailsType],
	}
}

// Fields returns the record as a header -> value map covering all Wise columns.
func (r InputRecord) Fields() map[string]string {
	return map[string]string{
		ColID:                 r.ID,
		ColDate:               r.Date,
		ColDateTime:           r.DateTime,
		ColAmount:             r.Amount,
		ColCurrency:           r.Currency,
		ColDescription:        r.Description,
		ColPaymentReference:   r.PaymentReference,
		ColRunningBalance:     r.RunningBalance,
		ColExchangeFrom:       r.ExchangeFrom,
		ColExchangeTo:         r.ExchangeTo,
		ColExchangeRate:       r.ExchangeRate,
		ColPayerName:          r.PayerName,
		ColPayeeName:          r.PayeeName,
		ColPayeeAccountNumber: r.PayeeAccountNumber,
		ColMerchant:           r.Merchant,
		ColCardLastFour:       r.CardLastFourDigits,
		ColCardHolderName:     r.CardHolderFullName,
		ColAttachment:         r.Attachment,
		ColNote:               r.Note,
		ColTotalFees:          r.TotalFees,
		ColExchangeToAmount:   r.ExchangeToAmount,
		ColDirection:          string(r.Direction),
		ColDetailsType:        r.DetailsType,
	}
}

// Values returns the record in WiseHeaders order.
func (r InputRecord) Values() []string {
	fields := r.Fields()
	values := make([]string, len(WiseHeaders))
	for i, header := range WiseHeaders {
		values[i] = fields[header]
	}
	return values
}

// =============================================================================
// OUTPUT RECORD
// =============================================================================

// OutputRecord is one row of a LexOffice bank import.
// BookingDate and ValueDate always carry the same value.
type OutputRecord struct {
	BookingDate string
	ValueDate   string
	Originator  string
	Recipient   string
	Purpose     string
	Amount      string
	AuxInfo     string
}

// Values returns the record in LexOfficeHeaders order.
func (r OutputRecord) Values() []string {
	return []string{
		r.BookingDate,
		r.ValueDate,
		r.Originator,
		r.Recipient,
		r.Purpose,
		r.Amount,
		r.AuxInfo,
	}
}

// =============================================================================
// STATISTICS
// =============================================================================

// ConversionStatistics aggregates an uploaded batch, including invalid rows.
type ConversionStatistics struct {
	// Total is the number of input records.
	Total int

	// Debit and Credit count records with a recognized direction.
	Debit  int
	Credit int

	// TotalAmount is the signed sum of all parseable amounts.
	TotalAmount decimal.Decimal

	// Currency is taken from the first record.
	Currency string
}
