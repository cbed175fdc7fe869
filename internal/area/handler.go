package area

import (
	"errors"
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

// @Summary      Create an area
// @Description  Admin-only: register a new bookable area
// @Tags         admin,areas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body area.CreateAreaRequest true "Area payload"
// @Success      201 {object} area.Area
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/areas [post]
func (h *Handler) CreateArea(c *gin.Context) {
	var req CreateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	area, err := h.service.CreateArea(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCapacity) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create area"})
		return
	}

	c.JSON(http.StatusCreated, area)
}

// @Summary      List areas
// @Tags         areas
// @Produce      json
// @Security     BearerAuth
// @Param        include_inactive query bool false "Include deactivated areas"
// @Success      200 {array} area.Area
// @Failure      500 {object} api.ErrorResponse
// @Router       /areas [get]
func (h *Handler) ListAreas(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	areas, err := h.service.GetAllAreas(c.Request.Context(), includeInactive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch areas"})
		return
	}

	c.JSON(http.StatusOK, areas)
}

// @Summary      Get area
// @Tags         areas
// @Produce      json
// @Security     BearerAuth
// @Param        areaID path int true "Area ID"
// @Success      200 {object} area.Area
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /areas/{areaID} [get]
func (h *Handler) GetArea(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("areaID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid area ID"})
		return
	}

	area, err := h.service.GetAreaByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Area not found"})
		return
	}

	c.JSON(http.StatusOK, area)
}

// @Summary      Update area
// @Description  Admin-only: change name, capacity or exclusivity
// @Tags         admin,areas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        areaID path int true "Area ID"
// @Param        request body area.UpdateAreaRequest true "Fields to update"
// @Success      200 {object} area.Area
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/areas/{areaID} [patch]
func (h *Handler) UpdateArea(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("areaID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid area ID"})
		return
	}

	var req UpdateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	area, err := h.service.UpdateArea(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrInvalidCapacity) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Area not found"})
		return
	}

	c.JSON(http.StatusOK, area)
}

// @Summary      Deactivate area
// @Description  Admin-only: areas are never deleted, only deactivated
// @Tags         admin,areas
// @Produce      json
// @Security     BearerAuth
// @Param        areaID path int true "Area ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/areas/{areaID}/deactivate [post]
func (h *Handler) DeactivateArea(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("areaID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid area ID"})
		return
	}

	if err := h.service.DeactivateArea(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Area not found or already inactive"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Area deactivated"})
}
