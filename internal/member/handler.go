package member

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ricore77995/strikehouse-sub000/internal/api"
)

// Member records are plain CRUD; the handler talks to the repository
// directly. Access decisions live in the checkin package.
type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{
		repo: repo,
	}
}

// @Summary      Register a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body member.CreateMemberRequest true "Member payload"
// @Success      201 {object} member.Member
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members [post]
func (h *Handler) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if details := api.BindingErrors(err); details != nil {
			api.RespondWithValidationErrors(c, details)
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, err := h.repo.CreateMember(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create member"})
		return
	}

	c.JSON(http.StatusCreated, m)
}

// @Summary      List members
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} member.Member
// @Failure      500 {object} api.ErrorResponse
// @Router       /members [get]
func (h *Handler) ListMembers(c *gin.Context) {
	members, err := h.repo.GetAllMembers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch members"})
		return
	}

	c.JSON(http.StatusOK, members)
}

// @Summary      Get member
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      200 {object} member.Member
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{memberID} [get]
func (h *Handler) GetMember(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	m, err := h.repo.GetMemberByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch member"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary      Update member
// @Description  Partial update of profile, status and access fields
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Param        request body member.UpdateMemberRequest true "Fields to update"
// @Success      200 {object} member.Member
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{memberID} [patch]
func (h *Handler) UpdateMember(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, err := h.repo.UpdateMember(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update member"})
		return
	}

	c.JSON(http.StatusOK, m)
}
