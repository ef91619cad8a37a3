package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/rate"
)

// RateService is the service surface the handlers depend on.
type RateService interface {
	RefreshNow(ctx context.Context) (rate.RefreshResult, error)
	Override(ctx context.Context, entries map[string]string) (rate.RefreshResult, error)
	PublicRates(ctx context.Context) (rate.RatesView, error)
	AllRates(ctx context.Context) (rate.RatesView, error)
	ConvertAmount(ctx context.Context, amountMinor int64, from, to string) (int64, string, error)
	KnownCodes() []string
}

type Handler struct {
	service RateService
}

func NewRateHandler(service RateService) *Handler {
	return &Handler{service: service}
}

// API error codes, stable for operator tooling.
const (
	errNoSourceConfigured  = "no_source_configured"
	errUpstreamUnavailable = "upstream_unavailable"
	errParseEmpty          = "parse_empty"
	errFetchFailed         = "fetch_failed"
	errValidation          = "validation"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorCode string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorCode,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
