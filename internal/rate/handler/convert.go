package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

type ConvertResponse struct {
	Amount    int64  `json:"amount"`
	From      string `json:"from"`
	To        string `json:"to"`
	Converted int64  `json:"converted"`
	Formatted string `json:"formatted"`
}

// Convert godoc
// @Summary Convert an amount between currencies
// @Description Amounts are in minor units; a missing rate returns the amount unchanged
// @Tags Rates
// @Produce json
// @Param amount query int true "amount in minor units"
// @Param from query string true "source currency code"
// @Param to query string true "target currency code"
// @Success 200 {object} ConvertResponse
// @Failure 400 {object} errorResponse
// @Router /rates/convert [get]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	amount, err := strconv.ParseInt(q.Get("amount"), 10, 64)
	from := strings.TrimSpace(q.Get("from"))
	to := strings.TrimSpace(q.Get("to"))
	if err != nil || from == "" || to == "" {
		writeError(w, http.StatusBadRequest, errValidation)
		return
	}

	converted, formatted, convErr := h.service.ConvertAmount(r.Context(), amount, from, to)
	if convErr != nil {
		logrus.WithError(convErr).WithField("handler", "Convert").Error("conversion read failed")
		writeError(w, http.StatusInternalServerError, errFetchFailed)
		return
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		Amount:    amount,
		From:      strings.ToUpper(from),
		To:        strings.ToUpper(to),
		Converted: converted,
		Formatted: formatted,
	})
}
