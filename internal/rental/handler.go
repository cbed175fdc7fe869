package rental

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ricore77995/strikehouse-sub000/internal/api"
	"github.com/ricore77995/strikehouse-sub000/internal/area"
	"github.com/ricore77995/strikehouse-sub000/internal/auth"
	"github.com/ricore77995/strikehouse-sub000/internal/coach"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Book a rental
// @Description  Reserves a time window in an area for a coach; optional recurrence creates a series with independent occurrences
// @Tags         rentals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body rental.CreateRentalRequest true "Rental payload"
// @Success      201 {object} rental.Rental
// @Success      207 {object} rental.SeriesResult
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /rentals [post]
func (h *Handler) CreateRental(c *gin.Context) {
	staffID, exists := auth.GetStaffID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Staff not authenticated"})
		return
	}

	var req CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := api.BindingErrors(err); details != nil {
			api.RespondWithValidationErrors(c, details)
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	rental, series, err := h.service.CreateRental(c.Request.Context(), req, staffID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTimeRange), errors.Is(err, ErrInvalidDate),
			errors.Is(err, ErrAreaInactive), errors.Is(err, ErrCoachInactive):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, area.ErrAreaNotFound), errors.Is(err, coach.ErrCoachNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrSlotConflict):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create rental"})
		}
		return
	}

	if series != nil {
		// Partial success is possible: some occurrences may have
		// conflicted while siblings were created.
		status := http.StatusCreated
		if len(series.Failed) > 0 {
			status = http.StatusMultiStatus
		}
		c.JSON(status, series)
		return
	}

	c.JSON(http.StatusCreated, rental)
}

// @Summary      Get rental
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        rentalID path int true "Rental ID"
// @Success      200 {object} rental.Rental
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /rentals/{rentalID} [get]
func (h *Handler) GetRental(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("rentalID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid rental ID"})
		return
	}

	rental, err := h.service.GetRental(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Rental not found"})
		return
	}

	c.JSON(http.StatusOK, rental)
}

// @Summary      List rentals by area and date
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        areaID path int true "Area ID"
// @Param        date query string true "Date (YYYY-MM-DD)"
// @Success      200 {array} rental.Rental
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /areas/{areaID}/rentals [get]
func (h *Handler) ListByArea(c *gin.Context) {
	areaID, err := strconv.Atoi(c.Param("areaID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid area ID"})
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "date query param is required"})
		return
	}

	rentals, err := h.service.ListByArea(c.Request.Context(), areaID, date)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch rentals"})
		return
	}

	c.JSON(http.StatusOK, rentals)
}

// @Summary      List rentals by coach
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        coachID path int true "Coach ID"
// @Success      200 {array} rental.RentalWithDetails
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /coaches/{coachID}/rentals [get]
func (h *Handler) ListByCoach(c *gin.Context) {
	coachID, err := strconv.Atoi(c.Param("coachID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid coach ID"})
		return
	}

	rentals, err := h.service.ListByCoach(c.Request.Context(), coachID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch rentals"})
		return
	}

	c.JSON(http.StatusOK, rentals)
}

// @Summary      List rentals in a series
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        seriesID path string true "Series ID"
// @Success      200 {array} rental.Rental
// @Failure      500 {object} api.ErrorResponse
// @Router       /series/{seriesID}/rentals [get]
func (h *Handler) ListBySeries(c *gin.Context) {
	rentals, err := h.service.ListBySeries(c.Request.Context(), c.Param("seriesID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch series"})
		return
	}

	c.JSON(http.StatusOK, rentals)
}

// @Summary      Cancel rental
// @Description  Cancels a scheduled rental; with enough notice and a charged fee, the coach earns a session credit
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        rentalID path int true "Rental ID"
// @Success      200 {object} rental.CancelResult
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /rentals/{rentalID}/cancel [post]
func (h *Handler) CancelRental(c *gin.Context) {
	staffID, exists := auth.GetStaffID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Staff not authenticated"})
		return
	}
	role, _ := auth.GetStaffRole(c)

	id, err := strconv.Atoi(c.Param("rentalID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid rental ID"})
		return
	}

	result, err := h.service.CancelRental(c.Request.Context(), id, staffID, role, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, ErrRentalNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrAlreadyTerminal):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel rental"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary      Cancel a series
// @Description  Cancels every scheduled member of the series; each occurrence applies the credit policy independently
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        seriesID path string true "Series ID"
// @Success      200 {array} rental.CancelResult
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /series/{seriesID}/cancel [post]
func (h *Handler) CancelSeries(c *gin.Context) {
	staffID, exists := auth.GetStaffID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Staff not authenticated"})
		return
	}
	role, _ := auth.GetStaffRole(c)

	results, err := h.service.CancelSeries(c.Request.Context(), c.Param("seriesID"), staffID, role, time.Now())
	if err != nil {
		if errors.Is(err, ErrRentalNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "No scheduled rentals in series"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel series"})
		return
	}

	c.JSON(http.StatusOK, results)
}

// @Summary      Complete rental
// @Description  Admin/sweep: marks a scheduled rental whose window elapsed as completed
// @Tags         admin,rentals
// @Produce      json
// @Security     BearerAuth
// @Param        rentalID path int true "Rental ID"
// @Success      200 {object} rental.Rental
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/rentals/{rentalID}/complete [post]
func (h *Handler) CompleteRental(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("rentalID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid rental ID"})
		return
	}

	rental, err := h.service.CompleteRental(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrRentalNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrAlreadyTerminal):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to complete rental"})
		}
		return
	}

	c.JSON(http.StatusOK, rental)
}

// @Summary      Complete all elapsed rentals
// @Description  Entry point for the external sweep job
// @Tags         admin,rentals
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]int
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/rentals/complete-elapsed [post]
func (h *Handler) CompleteElapsed(c *gin.Context) {
	count, err := h.service.CompleteElapsed(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to complete rentals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"completed": count})
}
