package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/ora-group-views/internal/api/middleware"
	"github.com/Marga-Ghale/ora-group-views/internal/service"
	"github.com/gin-gonic/gin"
)

// GroupDetailsHandler serves the group details view
type GroupDetailsHandler struct {
	groupDetailsSvc service.GroupDetailsService
}

// NewGroupDetailsHandler creates a new group details handler
func NewGroupDetailsHandler(groupDetailsSvc service.GroupDetailsService) *GroupDetailsHandler {
	return &GroupDetailsHandler{groupDetailsSvc: groupDetailsSvc}
}

// GetMembersQuery holds the pagination query parameters of the details view
type GetMembersQuery struct {
	Next        *int64 `form:"next"`
	Size        *int64 `form:"size"`
	MembersNext *int64 `form:"members_next"`
}

// Get returns the group's metadata, curator and member pages, and counts
func (h *GroupDetailsHandler) Get(c *gin.Context) {
	groupName := c.Param("group_name")

	var query GetMembersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	q := service.DetailsQuery{
		GroupName:   groupName,
		Scope:       middleware.GetScope(c),
		Next:        query.Next,
		MembersNext: query.MembersNext,
	}
	if query.Size != nil {
		if *query.Size <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size must be positive"})
			return
		}
		q.PageSize = *query.Size
	}

	details, err := h.groupDetailsSvc.GetDetails(c.Request.Context(), q)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}
