package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/server/http/dto"
	"github.com/polkiloo/printshop/internal/usecase"
)

// AdminHandler provisions staff accounts.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler creates AdminHandler instance.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// CreateUser handles POST /functions/v1/create-user.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	in := usecase.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     model.Role(req.Role),
	}
	if req.CompanyID != nil {
		if id, err := uuid.Parse(*req.CompanyID); err == nil {
			in.CompanyID = &id
		}
	}

	user, err := h.facade.CreateUser(c.Request.Context(), CurrentPrincipal(c), in)
	if err != nil {
		respondPrivilegedError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreateUserResponse{
		Success: true,
		User: dto.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			FullName:  user.FullName,
			Role:      string(user.Role),
			CompanyID: user.CompanyID,
			CreatedAt: user.CreatedAt,
		},
	})
}

// Preflight answers OPTIONS /functions/v1/create-user with an empty 200.
func (h *AdminHandler) Preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}
