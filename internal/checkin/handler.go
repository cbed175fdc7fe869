package checkin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ricore77995/strikehouse-sub000/internal/api"
	"github.com/ricore77995/strikehouse-sub000/internal/auth"
	"github.com/ricore77995/strikehouse-sub000/internal/member"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Member check-in
// @Description  Evaluates door access for a member; every attempt is recorded
// @Tags         check-ins
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body checkin.MemberCheckInRequest true "Member check-in"
// @Success      200 {object} checkin.Decision
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /check-ins/member [post]
func (h *Handler) CheckInMember(c *gin.Context) {
	staffID, exists := auth.GetStaffID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Staff not authenticated"})
		return
	}

	var req MemberCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	decision, err := h.service.CheckInMember(c.Request.Context(), req.MemberID, staffID, time.Now())
	if err != nil {
		if errors.Is(err, member.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to process check-in"})
		return
	}

	c.JSON(http.StatusOK, decision)
}

// @Summary      Guest check-in
// @Description  Admits a guest attending a rental; counts toward the rental's guest total
// @Tags         check-ins
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body checkin.GuestCheckInRequest true "Guest check-in"
// @Success      200 {object} checkin.Decision
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /check-ins/guest [post]
func (h *Handler) CheckInGuest(c *gin.Context) {
	staffID, exists := auth.GetStaffID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Staff not authenticated"})
		return
	}

	var req GuestCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	decision, err := h.service.CheckInGuest(c.Request.Context(), req.RentalID, req.GuestName, staffID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to process check-in"})
		return
	}

	c.JSON(http.StatusOK, decision)
}

// @Summary      List check-in records
// @Tags         check-ins
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size (default 50, max 100)"
// @Param        offset query int false "Offset"
// @Success      200 {array} checkin.CheckInRecord
// @Failure      500 {object} api.ErrorResponse
// @Router       /check-ins [get]
func (h *Handler) ListRecords(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	records, err := h.service.ListRecords(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch check-ins"})
		return
	}

	c.JSON(http.StatusOK, records)
}
