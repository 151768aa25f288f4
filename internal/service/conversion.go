package service

import (
	"context"

	"backoffice/internal/apperror"
	"backoffice/internal/currency"

	"github.com/shopspring/decimal"
)

// CurrencyConverter is satisfied by *currency.Converter.
type CurrencyConverter interface {
	Convert(ctx context.Context, amount decimal.Decimal, currencyCode string, customRate *decimal.Decimal) (currency.Conversion, error)
}

// snapshotState is the stored currency snapshot of a record.
type snapshotState struct {
	Amount   decimal.Decimal
	Currency string
	Rate     decimal.Decimal
	Source   *string
}

// snapshotEdit carries the optional monetary fields of an update request.
type snapshotEdit struct {
	Amount     *decimal.Decimal
	Currency   *string
	CustomRate *decimal.Decimal
}

// reconvert returns a fresh conversion when the edit touches amount, currency
// or rate, and ok=false otherwise. A changed amount keeps a stored manual rate
// unless the currency also changes.
func reconvert(ctx context.Context, conv CurrencyConverter, cur snapshotState, edit snapshotEdit) (decimal.Decimal, currency.Conversion, bool, error) {
	amount := cur.Amount
	if edit.Amount != nil {
		if !edit.Amount.IsPositive() {
			return decimal.Zero, currency.Conversion{}, false, apperror.Validation("amount must be greater than zero")
		}
		amount = *edit.Amount
	}

	code := cur.Currency
	if edit.Currency != nil {
		normalized, err := currency.NormalizeCode(*edit.Currency)
		if err != nil {
			return decimal.Zero, currency.Conversion{}, false, err
		}
		code = normalized
	}

	amountChanged := !amount.Equal(cur.Amount)
	currencyChanged := code != cur.Currency
	if !amountChanged && !currencyChanged && edit.CustomRate == nil {
		return cur.Amount, currency.Conversion{}, false, nil
	}

	rate := edit.CustomRate
	if rate == nil && !currencyChanged && cur.Source != nil && *cur.Source == currency.SourceManual {
		kept := cur.Rate
		rate = &kept
	}

	result, err := conv.Convert(ctx, amount, code, rate)
	if err != nil {
		return decimal.Zero, currency.Conversion{}, false, err
	}
	return amount, result, true, nil
}
