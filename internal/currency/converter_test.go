package currency

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backoffice/internal/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	rate  decimal.Decimal
	err   error
	calls int
}

func (s *stubProvider) FetchRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	s.calls++
	if s.err != nil {
		return decimal.Zero, s.err
	}
	return s.rate, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestConvert_MYRIgnoresCustomRate(t *testing.T) {
	provider := &stubProvider{rate: dec("4.7")}
	conv := NewConverter(provider, time.Second, nil)
	custom := dec("3.9")

	for _, rate := range []*decimal.Decimal{nil, &custom} {
		got, err := conv.Convert(context.Background(), dec("10000"), "myr", rate)
		require.NoError(t, err)
		assert.True(t, got.AmountMYR.Equal(dec("10000")))
		assert.True(t, got.Rate.Equal(decimal.NewFromInt(1)))
		assert.Nil(t, got.Source)
		assert.Equal(t, "MYR", got.Currency)
	}
	assert.Zero(t, provider.calls)
}

func TestConvert_ManualRate(t *testing.T) {
	provider := &stubProvider{rate: dec("4.7")}
	conv := NewConverter(provider, time.Second, nil)
	custom := dec("4.5")

	got, err := conv.Convert(context.Background(), dec("1000"), "USD", &custom)
	require.NoError(t, err)

	assert.True(t, got.AmountMYR.Equal(dec("4500")))
	assert.True(t, got.Rate.Equal(custom))
	require.NotNil(t, got.Source)
	assert.Equal(t, SourceManual, *got.Source)
	assert.Zero(t, provider.calls)
}

func TestConvert_RejectsNonPositiveManualRate(t *testing.T) {
	conv := NewConverter(&stubProvider{}, time.Second, nil)
	zero := decimal.Zero

	_, err := conv.Convert(context.Background(), dec("10"), "USD", &zero)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestConvert_AutoRate(t *testing.T) {
	provider := &stubProvider{rate: dec("4.7125")}
	conv := NewConverter(provider, time.Second, nil)

	got, err := conv.Convert(context.Background(), dec("200"), "SGD", nil)
	require.NoError(t, err)

	assert.True(t, got.AmountMYR.Equal(dec("942.5")))
	require.NotNil(t, got.Source)
	assert.Equal(t, SourceAuto, *got.Source)
	assert.Equal(t, 1, provider.calls)
}

func TestConvert_ProviderFailureIsConversionError(t *testing.T) {
	conv := NewConverter(&stubProvider{err: errors.New("upstream 503")}, time.Second, nil)

	_, err := conv.Convert(context.Background(), dec("200"), "USD", nil)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConversion))
}

func TestConvert_InvalidCurrencyCode(t *testing.T) {
	conv := NewConverter(&stubProvider{}, time.Second, nil)

	_, err := conv.Convert(context.Background(), dec("1"), "US", nil)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestHTTPRateProvider_FetchRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("from"))
		assert.Equal(t, "MYR", r.URL.Query().Get("to"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"amount":1.0,"base":"USD","date":"2026-01-09","rates":{"MYR":4.4215}}`))
	}))
	defer srv.Close()

	provider := NewHTTPRateProvider(srv.URL+"/", time.Second)
	rate, err := provider.FetchRate(context.Background(), "USD", "MYR")

	require.NoError(t, err)
	assert.True(t, rate.Equal(dec("4.4215")))
}

func TestHTTPRateProvider_Errors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusBadGateway, `{}`},
		{"missing rate", http.StatusOK, `{"rates":{"SGD":1.3}}`},
		{"zero rate", http.StatusOK, `{"rates":{"MYR":0}}`},
		{"bad json", http.StatusOK, `not-json`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewHTTPRateProvider(srv.URL, time.Second).FetchRate(context.Background(), "USD", "MYR")
			assert.Error(t, err)
		})
	}
}

func TestConvert_TimeoutFailsClosed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	conv := NewConverter(NewHTTPRateProvider(srv.URL, 0), 20*time.Millisecond, nil)
	_, err := conv.Convert(context.Background(), dec("5"), "USD", nil)

	assert.True(t, apperror.Is(err, apperror.KindConversion))
}
