package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/aerodesk/flightops_backend/internal/core/ports/services"
	"github.com/aerodesk/flightops_backend/internal/dto"
	"github.com/aerodesk/flightops_backend/internal/middleware"
)

// flightHandler handles the flight charge preview and completion endpoints.
type flightHandler struct {
	flightChargeService portssvc.FlightChargeSvcFacade
}

func newFlightHandler(fs portssvc.FlightChargeSvcFacade) *flightHandler {
	return &flightHandler{flightChargeService: fs}
}

// RegisterFlightRoutes registers routes related to flight charges.
func RegisterFlightRoutes(rg *gin.RouterGroup, flightChargeService portssvc.FlightChargeSvcFacade) {
	h := newFlightHandler(flightChargeService)

	bookings := rg.Group("/bookings")
	{
		bookings.POST("/:id/charges/preview", h.previewCharges)
		bookings.POST("/:id/complete", h.completeFlight)
	}
}

// previewCharges godoc
// @Summary Preview flight charges
// @Description Calculates the flight log and provisional invoice items without writing anything.
// @Tags flights
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param charge body dto.FlightChargeRequest true "Meter readings and flight context"
// @Success 200 {object} dto.ChargePreviewResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Booking, aircraft or charge rate not found"
// @Security BearerAuth
// @Router /bookings/{id}/charges/preview [post]
func (h *flightHandler) previewCharges(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.FlightChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for previewCharges", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := mustGetActor(c, logger)
	if !ok {
		return
	}

	resp, err := h.flightChargeService.PreviewCharges(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// completeFlight godoc
// @Summary Complete a flight
// @Description Persists the calculated charges idempotently: retrying with the same readings converges on the same invoice items.
// @Tags flights
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param charge body dto.FlightChargeRequest true "Meter readings and flight context"
// @Success 200 {object} dto.CompleteFlightResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Booking, aircraft or charge rate not found"
// @Security BearerAuth
// @Router /bookings/{id}/complete [post]
func (h *flightHandler) completeFlight(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.FlightChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for completeFlight", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := mustGetActor(c, logger)
	if !ok {
		return
	}

	resp, err := h.flightChargeService.CompleteFlight(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
