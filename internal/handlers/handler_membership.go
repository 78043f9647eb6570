package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/aerodesk/flightops_backend/internal/core/ports/services"
	"github.com/aerodesk/flightops_backend/internal/dto"
	"github.com/aerodesk/flightops_backend/internal/middleware"
)

// membershipHandler handles membership renewal.
type membershipHandler struct {
	membershipService portssvc.MembershipSvcFacade
}

func newMembershipHandler(ms portssvc.MembershipSvcFacade) *membershipHandler {
	return &membershipHandler{membershipService: ms}
}

// registerMembershipRoutes registers routes related to memberships.
func registerMembershipRoutes(rg *gin.RouterGroup, membershipService portssvc.MembershipSvcFacade) {
	h := newMembershipHandler(membershipService)

	memberships := rg.Group("/memberships")
	{
		memberships.POST("/renew", h.renewMembership)
	}
}

// renewMembership godoc
// @Summary Renew a membership
// @Description Starts a new membership year, deactivating the prior one. The fee invoice is best effort; its failure surfaces as a warning.
// @Tags memberships
// @Accept json
// @Produce json
// @Param renewal body dto.RenewMembershipRequest true "Renewal details"
// @Success 201 {object} dto.RenewMembershipResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /memberships/renew [post]
func (h *membershipHandler) renewMembership(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RenewMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for renewMembership", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := mustGetActor(c, logger)
	if !ok {
		return
	}

	resp, err := h.membershipService.RenewMembership(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
