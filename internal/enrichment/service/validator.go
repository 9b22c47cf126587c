// Package service implements the trade validation and enrichment pipeline.
package service

import (
	"strconv"
	"strings"
	"time"

	"trade_enrichment_backend/internal/enrichment/transport"

	"github.com/shopspring/decimal"
)

// FailureKind classifies why a raw trade row was discarded. The validator
// checks rules in a fixed order, so the kind always names the first rule the
// row violated.
type FailureKind string

const (
	// FailureMissingFields: one or more of the four fields is empty or
	// whitespace-only. Always logged with the missing field names.
	FailureMissingFields FailureKind = "missing_fields"
	// FailureInvalidDateFormat: the date is not exactly 8 digits after
	// trimming, or encodes a year below 1000. Always logged.
	FailureInvalidDateFormat FailureKind = "invalid_date_format"
	// FailureImpossibleDate: well-formed 8-digit token that is not a real
	// calendar date (month 13, Feb 30). Always logged.
	FailureImpossibleDate FailureKind = "impossible_calendar_date"
	// FailureInvalidProductID: non-numeric or non-positive id. Counted only.
	FailureInvalidProductID FailureKind = "invalid_product_id"
	// FailureInvalidCurrency: empty currency after trimming. Counted only.
	FailureInvalidCurrency FailureKind = "invalid_currency"
	// FailureInvalidPrice: unparseable or negative price. Counted only.
	FailureInvalidPrice FailureKind = "invalid_price"
)

// Logged reports whether this failure kind is surfaced to the diagnostic log.
// Missing fields and date problems indicate upstream data-quality issues and
// need an audit trail; the other kinds are routine, high-volume noise.
func (k FailureKind) Logged() bool {
	switch k {
	case FailureMissingFields, FailureInvalidDateFormat, FailureImpossibleDate:
		return true
	}
	return false
}

const dateLayout = "20060102"

// ValidatedTrade is a trade row that passed every field rule. Invalid states
// are unrepresentable: the only way to obtain one is through Validate.
type ValidatedTrade struct {
	Date      time.Time
	DateText  string
	ProductID int64
	Currency  string
	Price     decimal.Decimal
	PriceText string
}

// ValidationFailure describes a discarded row with enough context to log it.
type ValidationFailure struct {
	Kind          FailureKind
	MissingFields []string
	Record        transport.RawRecord
}

// Validate applies the field rules to one raw row in fixed order: presence,
// date, product id, currency, price. The first violated rule determines the
// failure kind. A nil failure means the trade is valid.
//
// All fields are trimmed of surrounding whitespace before their rule is
// applied; for the date this happens before the 8-digit format check.
func Validate(rec transport.RawRecord) (ValidatedTrade, *ValidationFailure) {
	var missing []string
	if strings.TrimSpace(rec.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(rec.ProductID) == "" {
		missing = append(missing, "productId")
	}
	if strings.TrimSpace(rec.Currency) == "" {
		missing = append(missing, "currency")
	}
	if strings.TrimSpace(rec.Price) == "" {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return ValidatedTrade{}, &ValidationFailure{Kind: FailureMissingFields, MissingFields: missing, Record: rec}
	}

	dateText := strings.TrimSpace(rec.Date)
	if !isEightDigits(dateText) {
		return ValidatedTrade{}, &ValidationFailure{Kind: FailureInvalidDateFormat, Record: rec}
	}
	// Years 1–999 cannot come from a real yyyyMMdd feed; treat them as a
	// format problem rather than an impossible date.
	year, _ := strconv.Atoi(dateText[:4])
	if year >= 1 && year <= 999 {
		return ValidatedTrade{}, &ValidationFailure{Kind: FailureInvalidDateFormat, Record: rec}
	}
	date, err := time.Parse(dateLayout, dateText)
	if err != nil {
		return ValidatedTrade{}, &ValidationFailure{Kind: FailureImpossibleDate, Record: rec}
	}

	productID, err := strconv.ParseInt(strings.TrimSpace(rec.ProductID), 10, 64)
	if err != nil || productID <= 0 {
		return ValidatedTrade{}, &ValidationFailure{Kind: FailureInvalidProductID, Record: rec}
	}

	currency := strings.TrimSpace(rec.Currency)
	if currency == "" {
		return ValidatedTrade{}, &ValidationFailure{Kind: FailureInvalidCurrency, Record: rec}
	}

	priceText := strings.TrimSpace(rec.Price)
	price, err := decimal.NewFromString(priceText)
	if err != nil || price.IsNegative() {
		return ValidatedTrade{}, &ValidationFailure{Kind: FailureInvalidPrice, Record: rec}
	}

	return ValidatedTrade{
		Date:      date,
		DateText:  dateText,
		ProductID: productID,
		Currency:  currency,
		Price:     price,
		PriceText: priceText,
	}, nil
}

func isEightDigits(s string) bool {
	if len(s) != 8 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
