package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/aerodesk/flightops_backend/internal/core/ports/services"
	"github.com/aerodesk/flightops_backend/internal/dto"
	"github.com/aerodesk/flightops_backend/internal/middleware"
)

// userHandler handles member lookups, invoice listings, statements and
// memberships, all keyed by user ID.
type userHandler struct {
	userService       portssvc.UserSvcFacade
	invoiceService    portssvc.InvoiceSvcFacade
	statementService  portssvc.StatementSvcFacade
	membershipService portssvc.MembershipSvcFacade
}

func newUserHandler(
	us portssvc.UserSvcFacade,
	is portssvc.InvoiceSvcFacade,
	ss portssvc.StatementSvcFacade,
	ms portssvc.MembershipSvcFacade,
) *userHandler {
	return &userHandler{
		userService:       us,
		invoiceService:    is,
		statementService:  ss,
		membershipService: ms,
	}
}

// registerUserRoutes registers the per-member routes.
func registerUserRoutes(
	rg *gin.RouterGroup,
	userService portssvc.UserSvcFacade,
	invoiceService portssvc.InvoiceSvcFacade,
	statementService portssvc.StatementSvcFacade,
	membershipService portssvc.MembershipSvcFacade,
) {
	h := newUserHandler(userService, invoiceService, statementService, membershipService)

	users := rg.Group("/users")
	{
		users.GET("/:id", h.getUser)
		users.GET("/:id/invoices", h.listInvoices)
		users.GET("/:id/statement", h.getStatement)
		users.GET("/:id/membership", h.getActiveMembership)
	}
}

// getUser godoc
// @Summary Get a user
// @Description Retrieves the externally visible subset of a member.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if _, ok := mustGetActor(c, logger); !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// listInvoices godoc
// @Summary List a member's invoices
// @Description Lists all non-deleted invoices of a member, ordered by issue date ascending.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} dto.InvoiceResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/invoices [get]
func (h *userHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := mustGetActor(c, logger)
	if !ok {
		return
	}

	invoices, err := h.invoiceService.ListInvoices(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	responses := make([]dto.InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = dto.ToInvoiceResponse(&invoices[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getStatement godoc
// @Summary Get a member's account statement
// @Description Merges invoices, payments and applied credit notes chronologically with running balances.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.AccountStatementResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/statement [get]
func (h *userHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := mustGetActor(c, logger)
	if !ok {
		return
	}

	statement, err := h.statementService.BuildStatement(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountStatementResponse(statement))
}

// getActiveMembership godoc
// @Summary Get a member's active membership
// @Description Retrieves the single active membership with its derived status.
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.MembershipResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/membership [get]
func (h *userHandler) getActiveMembership(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := mustGetActor(c, logger)
	if !ok {
		return
	}

	membership, err := h.membershipService.GetActiveMembership(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, membership)
}
