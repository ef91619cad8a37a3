package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/domain"
)

type RatesResponse struct {
	AsOf  *time.Time         `json:"as_of"`
	Rates map[string]float64 `json:"rates"`
}

// GetPublicRates godoc
// @Summary Current public rates
// @Description Curated public rate set; always 200, degrades to the base currency only
// @Tags Rates
// @Produce json
// @Success 200 {object} RatesResponse
// @Router /rates [get]
func (h *Handler) GetPublicRates(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.PublicRates(r.Context())
	if err != nil {
		msg := "couldn't read current rates this time"
		logrus.WithError(err).WithField("handler", "GetPublicRates").Error(msg)
		writeError(w, http.StatusInternalServerError, errFetchFailed)
		return
	}

	writeJSON(w, http.StatusOK, RatesResponse{AsOf: view.AsOf, Rates: view.Rates})
}

// GetAllRates godoc
// @Summary All tracked rates (legacy)
// @Description Flat map of every tracked code; 404 only when nothing was ever stored
// @Tags Rates
// @Produce json
// @Success 200 {object} map[string]float64
// @Failure 404 {object} errorResponse
// @Router /rates/all [get]
func (h *Handler) GetAllRates(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.AllRates(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrRateNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		msg := "couldn't read current rates this time"
		logrus.WithError(err).WithField("handler", "GetAllRates").Error(msg)
		writeError(w, http.StatusInternalServerError, errFetchFailed)
		return
	}

	writeJSON(w, http.StatusOK, view.Rates)
}

type SupportedCodesResponse struct {
	Codes []string `json:"codes" example:"USD,EUR,MLC"`
}

// GetSupportedCodes godoc
// @Summary List tracked currency codes
// @Tags Rates
// @Produce json
// @Success 200 {object} SupportedCodesResponse
// @Router /rates/supported [get]
func (h *Handler) GetSupportedCodes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, SupportedCodesResponse{Codes: h.service.KnownCodes()})
}
