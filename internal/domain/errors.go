package domain

import "errors"

var (
	ErrRateNotFound        = errors.New("rate not found")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrParseEmpty          = errors.New("no rates extracted")
	ErrNotConfigured       = errors.New("no rate source configured")
	ErrNoValidRates        = errors.New("no valid rates in payload")
)
