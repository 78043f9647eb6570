package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/aerodesk/flightops_backend/internal/core/ports/services"
	"github.com/aerodesk/flightops_backend/internal/dto"
	"github.com/aerodesk/flightops_backend/internal/middleware"
)

// paymentHandler handles HTTP requests for payments and credit notes.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers routes related to payments and credit notes.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.recordPayment)
		payments.POST("/:id/reverse", h.reversePayment)
	}
	creditNotes := rg.Group("/credit-notes")
	{
		creditNotes.POST("", h.createCreditNote)
		creditNotes.POST("/:id/apply", h.applyCreditNote)
	}
}

// recordPayment godoc
// @Summary Record a payment
// @Description Records money received against an invoice, or as a standalone account credit when no invoice is given.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.RecordPaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := mustGetActor(c, logger)
	if !ok {
		return
	}

	resp, err := h.paymentService.RecordPayment(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// reversePayment godoc
// @Summary Reverse a payment
// @Description Inserts a compensating payment, plus an optional corrective payment, in one operation. The original row is never changed.
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param reversal body dto.ReversePaymentRequest true "Reversal details"
// @Success 201 {object} dto.ReversePaymentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /payments/{id}/reverse [post]
func (h *paymentHandler) reversePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReversePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for reversePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := mustGetActor(c, logger)
	if !ok {
		return
	}

	resp, err := h.paymentService.ReversePayment(c.Request.Context(), c.Param("id"), req, actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// createCreditNote godoc
// @Summary Create a credit note
// @Description Drafts a correction document against a non-draft invoice.
// @Tags credit-notes
// @Accept json
// @Produce json
// @Param creditNote body dto.CreateCreditNoteRequest true "Credit note details"
// @Success 201 {object} dto.CreditNoteResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /credit-notes [post]
func (h *paymentHandler) createCreditNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCreditNote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := mustGetActor(c, logger)
	if !ok {
		return
	}

	note, err := h.paymentService.CreateCreditNote(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCreditNoteResponse(note))
}

// applyCreditNote godoc
// @Summary Apply a credit note
// @Description Applies a draft credit note once, reducing the invoice's effective balance and the member's account balance atomically.
// @Tags credit-notes
// @Produce json
// @Param id path string true "Credit note ID"
// @Success 200 {object} dto.ApplyCreditNoteResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /credit-notes/{id}/apply [post]
func (h *paymentHandler) applyCreditNote(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := mustGetActor(c, logger)
	if !ok {
		return
	}

	resp, err := h.paymentService.ApplyCreditNote(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
