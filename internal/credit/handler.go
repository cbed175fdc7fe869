package credit

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

// @Summary      Coach credit balance
// @Tags         credits
// @Produce      json
// @Security     BearerAuth
// @Param        coachID path int true "Coach ID"
// @Param        include_expired query bool false "Include expired grants"
// @Success      200 {object} map[string]int
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /coaches/{coachID}/credits/balance [get]
func (h *Handler) GetBalance(c *gin.Context) {
	coachID, err := strconv.Atoi(c.Param("coachID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid coach ID"})
		return
	}

	includeExpired := c.Query("include_expired") == "true"

	balance, err := h.service.Balance(c.Request.Context(), coachID, includeExpired)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"coach_id": coachID, "balance": balance})
}

// @Summary      Coach credit ledger
// @Tags         credits
// @Produce      json
// @Security     BearerAuth
// @Param        coachID path int true "Coach ID"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Page offset"
// @Success      200 {array} credit.Entry
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /coaches/{coachID}/credits [get]
func (h *Handler) ListEntries(c *gin.Context) {
	coachID, err := strconv.Atoi(c.Param("coachID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid coach ID"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, err := h.service.ListEntries(c.Request.Context(), coachID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch ledger"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// @Summary      Adjust coach credits
// @Description  Admin-only manual correction; may drive the balance negative
// @Tags         admin,credits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        coachID path int true "Coach ID"
// @Param        request body credit.AdjustRequest true "Adjustment"
// @Success      201 {object} credit.Entry
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/coaches/{coachID}/credits/adjust [post]
func (h *Handler) Adjust(c *gin.Context) {
	coachID, err := strconv.Atoi(c.Param("coachID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid coach ID"})
		return
	}

	var req AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	entry, err := h.service.Adjust(c.Request.Context(), coachID, req.Delta, req.Note)
	if err != nil {
		if errors.Is(err, ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to adjust credits"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// @Summary      Consume coach credits
// @Description  Spends credits against a rental fee; fails without touching the ledger when the balance is short
// @Tags         credits
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        coachID path int true "Coach ID"
// @Param        request body credit.ConsumeRequest true "Consumption"
// @Success      201 {object} credit.Entry
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /coaches/{coachID}/credits/consume [post]
func (h *Handler) Consume(c *gin.Context) {
	coachID, err := strconv.Atoi(c.Param("coachID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid coach ID"})
		return
	}

	var req ConsumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	entry, err := h.service.Consume(c.Request.Context(), coachID, req.Amount, req.RentalID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInsufficientCredit):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to consume credits"})
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// @Summary      Recompute cached balance
// @Description  Admin/reconciliation: rewrites the cached balance from ledger truth
// @Tags         admin,credits
// @Produce      json
// @Security     BearerAuth
// @Param        coachID path int true "Coach ID"
// @Success      200 {object} map[string]int
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/coaches/{coachID}/credits/recompute [post]
func (h *Handler) Recompute(c *gin.Context) {
	coachID, err := strconv.Atoi(c.Param("coachID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid coach ID"})
		return
	}

	balance, err := h.service.Recompute(c.Request.Context(), coachID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to recompute balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"coach_id": coachID, "balance": balance})
}
