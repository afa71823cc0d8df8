package marketdata

import (
	"errors"
	"fmt"
)

// Gateway validation errors, checked with errors.Is by the API layer.
var (
	// ErrEmptyQuery is returned by Search for a blank query string.
	ErrEmptyQuery = errors.New("search query must not be empty")
	// ErrInvalidPair is returned by ExchangeRate when the pair lacks the
	// BASE/QUOTE separator.
	ErrInvalidPair = errors.New("currency pair must be formatted as BASE/QUOTE")
	// ErrPairNotFound is returned when the provider has no quote for the
	// requested pair.
	ErrPairNotFound = errors.New("no exchange rate found for pair")
)

// errNoData marks a provider response that carried no usable result for the
// requested symbol.
var errNoData = errors.New("provider returned no data")

// UpstreamError represents a market-data provider failure: network errors,
// unknown tickers, malformed responses. A single attempt is made; there is
// no retry.
type UpstreamError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("market data provider error in %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func wrapUpstream(op string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamError{Op: op, Err: err}
}
