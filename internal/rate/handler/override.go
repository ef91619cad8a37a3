package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/domain"
)

// OverrideRequest accepts either a single {code, rate} pair or a bulk
// {rates: {CODE: value}} map. Rate values may be JSON numbers or
// localized numeric strings; both go through the loose number parser.
type OverrideRequest struct {
	Code  string                     `json:"code"`
	Rate  json.RawMessage            `json:"rate"`
	Rates map[string]json.RawMessage `json:"rates"`
}

// Override godoc
// @Summary Manually override rates
// @Description Apply one or many manual rate entries; invalid entries are skipped
// @Tags Rates
// @Accept json
// @Produce json
// @Success 200 {object} RefreshResponse
// @Failure 400 {object} errorResponse
// @Router /rates/override [post]
func (h *Handler) Override(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 4096)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req OverrideRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errValidation)
		return
	}

	entries := make(map[string]string, len(req.Rates)+1)
	for code, raw := range req.Rates {
		entries[code] = rawValue(raw)
	}
	if req.Code != "" {
		entries[req.Code] = rawValue(req.Rate)
	}
	if len(entries) == 0 {
		writeError(w, http.StatusBadRequest, errValidation)
		return
	}

	res, err := h.service.Override(r.Context(), entries)
	if err != nil {
		if errors.Is(err, domain.ErrNoValidRates) {
			writeError(w, http.StatusBadRequest, errValidation)
			return
		}
		logrus.WithError(err).Error("Manual rate override failed")
		writeError(w, http.StatusInternalServerError, errFetchFailed)
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse(res))
}

// rawValue unwraps a JSON string, otherwise returns the raw token, so
// "295,50" and 295.50 both end up as parseable text.
func rawValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
