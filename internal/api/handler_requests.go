package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shareit-backend/internal/dto"
	"shareit-backend/internal/mw"
	"shareit-backend/internal/parse"
)

// CreateRequest handles POST /requests.
func (h *Handler) CreateRequest(c *gin.Context) {
	var req dto.RequestCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	d, err := h.requests.Create(c.Request.Context(), mw.UserID(c), req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewRequestResponse(d))
}

// GetRequest handles GET /requests/:requestId.
func (h *Handler) GetRequest(c *gin.Context) {
	requestID, err := parse.ID(c.Param("requestId"), "requestId")
	if err != nil {
		badRequest(c, err)
		return
	}

	d, err := h.requests.Get(c.Request.Context(), mw.UserID(c), requestID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRequestResponse(d))
}

// ListOwnRequests handles GET /requests.
func (h *Handler) ListOwnRequests(c *gin.Context) {
	list, err := h.requests.ListOwn(c.Request.Context(), mw.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRequestResponses(list))
}

// ListOtherRequests handles GET /requests/all?from=&size=.
func (h *Handler) ListOtherRequests(c *gin.Context) {
	from, size, err := parse.Paging(c.Query("from"), c.Query("size"))
	if err != nil {
		badRequest(c, err)
		return
	}

	list, err := h.requests.ListOthers(c.Request.Context(), mw.UserID(c), from, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRequestResponses(list))
}
