package currency

import (
	"context"
	"regexp"
	"strings"
	"time"

	"backoffice/internal/apperror"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const BaseCurrency = "MYR"

// Exchange rate sources stored on converted records. MYR records carry no source.
const (
	SourceAuto   = "auto"
	SourceManual = "manual"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Conversion is the snapshot persisted on a PO or invoice.
type Conversion struct {
	Currency  string
	AmountMYR decimal.Decimal
	Rate      decimal.Decimal
	Source    *string
}

type Converter struct {
	provider RateProvider
	timeout  time.Duration
	log      *logrus.Logger
}

func NewConverter(provider RateProvider, timeout time.Duration, log *logrus.Logger) *Converter {
	return &Converter{provider: provider, timeout: timeout, log: log}
}

// NormalizeCode upper-cases and validates an ISO 4217 code. Empty means MYR.
func NormalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return BaseCurrency, nil
	}
	if !currencyCodePattern.MatchString(code) {
		return "", apperror.Validation("invalid currency code %q", code)
	}
	return code, nil
}

// Convert converts amount in currency into MYR. MYR short-circuits to rate 1 and
// ignores customRate; a supplied customRate is recorded as a manual rate;
// otherwise the provider is consulted under the configured timeout.
func (c *Converter) Convert(ctx context.Context, amount decimal.Decimal, currency string, customRate *decimal.Decimal) (Conversion, error) {
	code, err := NormalizeCode(currency)
	if err != nil {
		return Conversion{}, err
	}

	if code == BaseCurrency {
		return Conversion{
			Currency:  code,
			AmountMYR: amount,
			Rate:      decimal.NewFromInt(1),
			Source:    nil,
		}, nil
	}

	if customRate != nil {
		if !customRate.IsPositive() {
			return Conversion{}, apperror.Validation("exchange rate must be greater than zero")
		}
		source := SourceManual
		return Conversion{
			Currency:  code,
			AmountMYR: amount.Mul(*customRate).Round(2),
			Rate:      *customRate,
			Source:    &source,
		}, nil
	}

	fetchCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	rate, err := c.provider.FetchRate(fetchCtx, code, BaseCurrency)
	if err != nil {
		if c.log != nil {
			c.log.WithFields(logrus.Fields{
				"module":   "currency",
				"currency": code,
			}).Warn("exchange rate lookup failed: " + err.Error())
		}
		return Conversion{}, apperror.Conversion(err, "failed to fetch %s/%s exchange rate", code, BaseCurrency)
	}

	source := SourceAuto
	return Conversion{
		Currency:  code,
		AmountMYR: amount.Mul(rate).Round(2),
		Rate:      rate.Round(6),
		Source:    &source,
	}, nil
}
