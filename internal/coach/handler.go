package coach

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ricore77995/strikehouse-sub000/internal/api"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Create a coach
// @Description  Admin-only: register an external coach with a fee model
// @Tags         admin,coaches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body coach.CreateCoachRequest true "Coach payload"
// @Success      201 {object} coach.Coach
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/coaches [post]
func (h *Handler) CreateCoach(c *gin.Context) {
	var req CreateCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	coach, err := h.service.CreateCoach(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create coach"})
		return
	}

	c.JSON(http.StatusCreated, coach)
}

// @Summary      List coaches
// @Tags         coaches
// @Produce      json
// @Security     BearerAuth
// @Param        include_inactive query bool false "Include deactivated coaches"
// @Success      200 {array} coach.Coach
// @Failure      500 {object} api.ErrorResponse
// @Router       /coaches [get]
func (h *Handler) ListCoaches(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	coaches, err := h.service.GetAllCoaches(c.Request.Context(), includeInactive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch coaches"})
		return
	}

	c.JSON(http.StatusOK, coaches)
}

// @Summary      Get coach
// @Tags         coaches
// @Produce      json
// @Security     BearerAuth
// @Param        coachID path int true "Coach ID"
// @Success      200 {object} coach.Coach
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /coaches/{coachID} [get]
func (h *Handler) GetCoach(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("coachID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid coach ID"})
		return
	}

	coach, err := h.service.GetCoachByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Coach not found"})
		return
	}

	c.JSON(http.StatusOK, coach)
}

// @Summary      Update coach
// @Description  Admin-only: change name, email or fee model
// @Tags         admin,coaches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        coachID path int true "Coach ID"
// @Param        request body coach.UpdateCoachRequest true "Fields to update"
// @Success      200 {object} coach.Coach
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/coaches/{coachID} [patch]
func (h *Handler) UpdateCoach(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("coachID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid coach ID"})
		return
	}

	var req UpdateCoachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	coach, err := h.service.UpdateCoach(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Coach not found"})
		return
	}

	c.JSON(http.StatusOK, coach)
}

// @Summary      Deactivate coach
// @Tags         admin,coaches
// @Produce      json
// @Security     BearerAuth
// @Param        coachID path int true "Coach ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/coaches/{coachID}/deactivate [post]
func (h *Handler) DeactivateCoach(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("coachID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid coach ID"})
		return
	}

	if err := h.service.DeactivateCoach(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Coach not found or already inactive"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Coach deactivated"})
}

// @Summary      Quote a rental fee
// @Description  Computes the fee for a coach given base plan price and guest count
// @Tags         coaches
// @Produce      json
// @Security     BearerAuth
// @Param        coachID path int true "Coach ID"
// @Param        base_price_cents query int true "Base plan price in cents"
// @Param        guest_count query int false "Number of attending guests"
// @Success      200 {object} map[string]int64
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /coaches/{coachID}/quote [get]
func (h *Handler) QuoteFee(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("coachID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid coach ID"})
		return
	}

	basePrice, err := strconv.ParseInt(c.Query("base_price_cents"), 10, 64)
	if err != nil || basePrice < 0 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid base_price_cents"})
		return
	}

	guestCount, _ := strconv.Atoi(c.DefaultQuery("guest_count", "0"))

	fee, err := h.service.QuoteFee(c.Request.Context(), id, basePrice, guestCount)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Coach not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fee_cents": fee})
}
