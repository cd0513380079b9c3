package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"smarttodo/internal/model"
	"smarttodo/internal/repository"
)

type TemplateHandler struct {
	templates TemplateStore
}

func NewTemplateHandler(templates TemplateStore) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

type createTemplateRequest struct {
	Name              string `json:"name" binding:"required"`
	Title             string `json:"title" binding:"required"`
	Description       string `json:"description"`
	EstimatedDuration int    `json:"estimated_duration"`
	Priority          int    `json:"priority"`
}

func (h *TemplateHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	tpl := &model.TaskTemplate{
		ID:                uuid.New(),
		Name:              req.Name,
		Title:             req.Title,
		Description:       req.Description,
		EstimatedDuration: 60,
		Priority:          3,
		CreatedBy:         userID,
	}
	if req.EstimatedDuration != 0 {
		tpl.EstimatedDuration = req.EstimatedDuration
	}
	if req.Priority != 0 {
		tpl.Priority = req.Priority
	}
	if tpl.Priority < 1 || tpl.Priority > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "priority must be between 1 and 5"})
		return
	}

	if err := h.templates.Create(c.Request.Context(), tpl); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create failed"})
		return
	}

	c.JSON(http.StatusCreated, tpl)
}

func (h *TemplateHandler) GetByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tplID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid template ID"})
		return
	}

	tpl, err := h.templates.GetByIDForOwner(c.Request.Context(), tplID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
		return
	}

	c.JSON(http.StatusOK, tpl)
}

func (h *TemplateHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tpls, err := h.templates.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
		return
	}

	c.JSON(http.StatusOK, tpls)
}
