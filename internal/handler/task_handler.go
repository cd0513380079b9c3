package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"smarttodo/internal/lifecycle"
	"smarttodo/internal/middleware"
	"smarttodo/internal/model"
	"smarttodo/internal/repository"
)

// TaskStore is the slice of the task repository the handler needs.
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	GetByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, status *model.Status) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
}

type TemplateStore interface {
	Create(ctx context.Context, tpl *model.TaskTemplate) error
	GetByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.TaskTemplate, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.TaskTemplate, error)
}

type TaskHandler struct {
	tasks     TaskStore
	templates TemplateStore
}

func NewTaskHandler(tasks TaskStore, templates TemplateStore) *TaskHandler {
	return &TaskHandler{tasks: tasks, templates: templates}
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	str, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

type createTaskRequest struct {
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Deadline          time.Time  `json:"deadline"`
	Priority          int        `json:"priority"`
	EstimatedDuration int        `json:"estimated_duration"`
	IsRecurring       bool       `json:"is_recurring"`
	RecurrencePattern string     `json:"recurrence_pattern"`
	TemplateID        *uuid.UUID `json:"template_id"`
	Tags              []string   `json:"tags"`
}

// Create makes a new task, optionally pre-filled from one of the owner's
// templates. Request fields override template defaults.
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	task := &model.Task{
		ID:                uuid.New(),
		Status:            model.StatusOngoing,
		Priority:          3,
		EstimatedDuration: 60,
		RecurrencePattern: model.RecurrenceNone,
		CreatedBy:         userID,
	}

	if req.TemplateID != nil {
		tpl, err := h.templates.GetByIDForOwner(c.Request.Context(), *req.TemplateID, userID)
		if err != nil {
			if errors.Is(err, repository.ErrTemplateNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
			return
		}
		task = model.NewTaskFromTemplate(tpl, req.Deadline, userID)
	}

	if req.Title != "" {
		task.Title = req.Title
	}
	if req.Description != "" {
		task.Description = req.Description
	}
	task.Deadline = req.Deadline
	if req.Priority != 0 {
		task.Priority = req.Priority
	}
	if req.EstimatedDuration != 0 {
		task.EstimatedDuration = req.EstimatedDuration
	}
	task.IsRecurring = req.IsRecurring
	if req.RecurrencePattern != "" {
		task.RecurrencePattern = model.RecurrencePattern(req.RecurrencePattern)
	}
	task.Tags = req.Tags

	if err := task.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tasks.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Create failed"})
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetByID returns one of the owner's tasks.
func (h *TaskHandler) GetByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	task, err := h.tasks.GetByIDForOwner(c.Request.Context(), taskID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// List returns the owner's tasks, optionally filtered by ?status=.
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var status *model.Status
	if raw := c.Query("status"); raw != "" {
		s := model.Status(raw)
		if !s.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		status = &s
	}

	tasks, err := h.tasks.ListByOwner(c.Request.Context(), userID, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// Start records that work on the task began.
func (h *TaskHandler) Start(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	task, err := h.tasks.GetByIDForOwner(c.Request.Context(), taskID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
		return
	}

	outcome, err := lifecycle.Start(task, time.Now())
	if err != nil {
		if errors.Is(err, lifecycle.ErrTaskNotOngoing) {
			c.JSON(http.StatusConflict, gin.H{"error": "Task is not ongoing"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Start failed"})
		return
	}

	if outcome.Changed {
		if err := h.tasks.Update(c.Request.Context(), task); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
			return
		}
	}

	c.JSON(http.StatusOK, task)
}

// Complete marks the task successful. Completing a recurring task spawns
// its successor in the same request; the response carries the successor so
// clients can show it immediately.
func (h *TaskHandler) Complete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	task, err := h.tasks.GetByIDForOwner(c.Request.Context(), taskID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
		return
	}

	outcome := lifecycle.Complete(task, time.Now())
	if !outcome.Changed {
		c.JSON(http.StatusOK, gin.H{"task": task})
		return
	}

	var successor *model.Task
	for _, effect := range outcome.Effects {
		if effect != lifecycle.EffectExpandRecurrence {
			continue
		}
		successor, err = lifecycle.Successor(task)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Recurrence expansion failed"})
			return
		}
		task.NextOccurrence = &successor.Deadline
	}

	if err := h.tasks.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
		return
	}

	if successor != nil {
		if err := h.tasks.Create(c.Request.Context(), successor); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Successor creation failed"})
			return
		}
	}

	resp := gin.H{"task": task}
	if successor != nil {
		resp["successor"] = successor
	}
	c.JSON(http.StatusOK, resp)
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetStatus writes the status directly. Privileged and permissive: backward
// transitions such as failure to success are allowed here.
func (h *TaskHandler) SetStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID"})
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	status := model.Status(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	task, err := h.tasks.GetByIDForOwner(c.Request.Context(), taskID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
		return
	}

	outcome := lifecycle.SetStatus(task, status, time.Now())
	if outcome.Changed {
		if err := h.tasks.Update(c.Request.Context(), task); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
			return
		}
	}

	c.JSON(http.StatusOK, task)
}
