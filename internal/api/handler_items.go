package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shareit-backend/internal/dto"
	"shareit-backend/internal/model"
	"shareit-backend/internal/mw"
	"shareit-backend/internal/parse"
	"shareit-backend/internal/store"
)

// CreateItem handles POST /items.
func (h *Handler) CreateItem(c *gin.Context) {
	var req dto.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	it, err := h.items.Create(c.Request.Context(), mw.UserID(c), model.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewItemResponse(it))
}

// UpdateItem handles PATCH /items/:itemId.
func (h *Handler) UpdateItem(c *gin.Context) {
	itemID, err := parse.ID(c.Param("itemId"), "itemId")
	if err != nil {
		badRequest(c, err)
		return
	}
	var req dto.ItemPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	it, err := h.items.Update(c.Request.Context(), mw.UserID(c), itemID, store.ItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewItemResponse(it))
}

// GetItem handles GET /items/:itemId.
func (h *Handler) GetItem(c *gin.Context) {
	itemID, err := parse.ID(c.Param("itemId"), "itemId")
	if err != nil {
		badRequest(c, err)
		return
	}

	d, err := h.items.Get(c.Request.Context(), mw.UserID(c), itemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewItemDetailsResponse(d))
}

// ListOwnerItems handles GET /items.
func (h *Handler) ListOwnerItems(c *gin.Context) {
	list, err := h.items.ListByOwner(c.Request.Context(), mw.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewItemDetailsResponses(list))
}

// SearchItems handles GET /items/search?text=.
func (h *Handler) SearchItems(c *gin.Context) {
	found, err := h.items.Search(c.Request.Context(), c.Query("text"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewItemResponses(found))
}

// AddComment handles POST /items/:itemId/comment.
func (h *Handler) AddComment(c *gin.Context) {
	itemID, err := parse.ID(c.Param("itemId"), "itemId")
	if err != nil {
		badRequest(c, err)
		return
	}
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	comment, err := h.items.AddComment(c.Request.Context(), mw.UserID(c), itemID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCommentResponse(comment))
}

// DeleteItem handles DELETE /items/:itemId.
func (h *Handler) DeleteItem(c *gin.Context) {
	itemID, err := parse.ID(c.Param("itemId"), "itemId")
	if err != nil {
		badRequest(c, err)
		return
	}

	if err := h.items.Delete(c.Request.Context(), mw.UserID(c), itemID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
