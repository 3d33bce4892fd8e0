// README: Quote handler; validates the trip payload and returns ranked
// pricing results.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carcalc/internal/modules/quote"
)

type QuoteHandler struct {
	quote *quote.Service
}

func NewQuoteHandler(svc *quote.Service) *QuoteHandler {
	return &QuoteHandler{quote: svc}
}

type quoteReq struct {
	Start       string  `json:"start"`
	TotalTime   string  `json:"total_time"`
	ParkingTime string  `json:"parking_time"`
	DistanceKm  float64 `json:"distance_km"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Provider    string  `json:"provider"`
	Airport     bool    `json:"airport"`

	FuelPriceE95EUR      float64 `json:"fuel_price_e95_eur"`
	FuelPriceDieselEUR   float64 `json:"fuel_price_diesel_eur"`
	ConsumptionLPer100Km float64 `json:"consumption_l_per_100km"`
	ConsumptionOverride  bool    `json:"consumption_override"`
}

// startLayouts accepts both datetime-local form values and RFC 3339.
var startLayouts = []string{"2006-01-02T15:04", time.RFC3339}

func parseStart(raw string) (time.Time, bool) {
	for _, layout := range startLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func (h *QuoteHandler) Create(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Start == "" {
		writeError(c, http.StatusBadRequest, "start is required")
		return
	}
	start, ok := parseStart(req.Start)
	if !ok {
		writeError(c, http.StatusBadRequest, "invalid start time")
		return
	}

	resp, err := h.quote.Quote(c.Request.Context(), quote.Request{
		Start:                      start,
		TotalText:                  req.TotalTime,
		ParkingText:                req.ParkingTime,
		DistanceKm:                 req.DistanceKm,
		Origin:                     req.Origin,
		Destination:                req.Destination,
		Provider:                   req.Provider,
		Airport:                    req.Airport,
		FuelPriceE95EUR:            req.FuelPriceE95EUR,
		FuelPriceDieselEUR:         req.FuelPriceDieselEUR,
		ConsumptionLPer100Km:       req.ConsumptionLPer100Km,
		ConsumptionOverrideEnabled: req.ConsumptionOverride,
	})
	if err != nil {
		writeQuoteError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, resp)
}
