package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smarttodo/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task by its ID regardless of owner
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// GetByIDForOwner retrieves a task by its ID scoped to its owner. A task
// belonging to someone else is indistinguishable from a missing one.
func (r *TaskRepository) GetByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ? AND created_by = ?", id, ownerID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// ListByOwner retrieves the owner's tasks, optionally filtered by status,
// newest first
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, status *model.Status) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Where("created_by = ?", ownerID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var tasks []model.Task
	if err := q.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update persists an existing task
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	result := r.db.WithContext(ctx).Save(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// FindOverdue retrieves every ongoing task whose deadline has passed.
// Intentionally not owner-scoped: the sweep operates globally.
func (r *TaskRepository) FindOverdue(ctx context.Context, now time.Time) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Where("status = ? AND deadline < ?", model.StatusOngoing, now).
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// MarkFailed flips the given tasks to failure in a single bulk UPDATE. The
// status predicate makes the write idempotent: rows completed between the
// select and this update are left alone, and rerunning affects nothing new.
func (r *TaskRepository) MarkFailed(ctx context.Context, ids []uuid.UUID, now time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id IN ? AND status = ?", ids, model.StatusOngoing).
		Updates(map[string]interface{}{
			"status":     model.StatusFailure,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

// DueWithin retrieves ongoing tasks with a deadline inside [from, until),
// with the owner preloaded for notification addressing
func (r *TaskRepository) DueWithin(ctx context.Context, from, until time.Time) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Preload("Creator").
		Where("status = ? AND deadline >= ? AND deadline < ?", model.StatusOngoing, from, until).
		Order("deadline").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// CountFinishedBefore counts terminal tasks last touched before cutoff
func (r *TaskRepository) CountFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("status IN ? AND updated_at < ?", []model.Status{model.StatusSuccess, model.StatusFailure}, cutoff).
		Count(&count)
	return count, result.Error
}

// DeleteFinishedBefore removes terminal tasks last touched before cutoff
// and reports how many rows went away
func (r *TaskRepository) DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status IN ? AND updated_at < ?", []model.Status{model.StatusSuccess, model.StatusFailure}, cutoff).
		Delete(&model.Task{})
	return result.RowsAffected, result.Error
}
