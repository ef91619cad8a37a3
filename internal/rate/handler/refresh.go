package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/domain"
	"github.com/RusoMDK/Tienda-Virtual-sub002/internal/rate"
)

type RefreshResponse struct {
	OK       bool                `json:"ok"`
	Source   string              `json:"source"`
	Strategy string              `json:"strategy,omitempty"`
	AsOf     time.Time           `json:"as_of"`
	Items    []domain.RateRecord `json:"items"`
}

func refreshResponse(res rate.RefreshResult) RefreshResponse {
	return RefreshResponse{
		OK:       true,
		Source:   string(res.Source),
		Strategy: res.Strategy,
		AsOf:     res.AsOf,
		Items:    res.Items,
	}
}

// Refresh godoc
// @Summary Refresh rates now
// @Description Fetch the configured upstream and store extracted rates
// @Tags Rates
// @Produce json
// @Success 200 {object} RefreshResponse
// @Failure 409 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /rates/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.RefreshNow(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotConfigured):
			writeError(w, http.StatusConflict, errNoSourceConfigured)
		case errors.Is(err, domain.ErrUpstreamUnavailable):
			logrus.WithError(err).Warn("Rate refresh failed: upstream unavailable")
			writeError(w, http.StatusBadGateway, errUpstreamUnavailable)
		case errors.Is(err, domain.ErrParseEmpty):
			logrus.WithError(err).Warn("Rate refresh failed: nothing extracted")
			writeError(w, http.StatusBadGateway, errParseEmpty)
		default:
			logrus.WithError(err).Error("Rate refresh failed")
			writeError(w, http.StatusInternalServerError, errFetchFailed)
		}
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse(res))
}
