package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shareit-backend/internal/dto"
	"shareit-backend/internal/model"
	"shareit-backend/internal/parse"
	"shareit-backend/internal/store"
)

// CreateUser handles POST /users.
func (h *Handler) CreateUser(c *gin.Context) {
	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	u := model.User{Name: req.Name, Email: req.Email}
	if err := h.store.CreateUser(c.Request.Context(), &u); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewUserResponse(u))
}

// GetUser handles GET /users/:userId.
func (h *Handler) GetUser(c *gin.Context) {
	userID, err := parse.ID(c.Param("userId"), "userId")
	if err != nil {
		badRequest(c, err)
		return
	}

	u, err := h.store.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(u))
}

// ListUsers handles GET /users.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]dto.UserResponse, len(users))
	for i, u := range users {
		out[i] = dto.NewUserResponse(u)
	}
	c.JSON(http.StatusOK, out)
}

// UpdateUser handles PATCH /users/:userId.
func (h *Handler) UpdateUser(c *gin.Context) {
	userID, err := parse.ID(c.Param("userId"), "userId")
	if err != nil {
		badRequest(c, err)
		return
	}
	var req dto.UserPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	u, err := h.store.UpdateUser(c.Request.Context(), userID, store.UserPatch{Name: req.Name, Email: req.Email})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(u))
}

// DeleteUser handles DELETE /users/:userId.
func (h *Handler) DeleteUser(c *gin.Context) {
	userID, err := parse.ID(c.Param("userId"), "userId")
	if err != nil {
		badRequest(c, err)
		return
	}

	if err := h.store.DeleteUser(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
