package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smarttodo/internal/model"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create adds a new task template to the database
func (r *TemplateRepository) Create(ctx context.Context, tpl *model.TaskTemplate) error {
	return r.db.WithContext(ctx).Create(tpl).Error
}

// GetByIDForOwner retrieves a template by its ID scoped to its owner
func (r *TemplateRepository) GetByIDForOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.TaskTemplate, error) {
	var tpl model.TaskTemplate
	result := r.db.WithContext(ctx).First(&tpl, "id = ? AND created_by = ?", id, ownerID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, result.Error
	}
	return &tpl, nil
}

// ListByOwner retrieves the owner's templates
func (r *TemplateRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.TaskTemplate, error) {
	var tpls []model.TaskTemplate
	result := r.db.WithContext(ctx).Where("created_by = ?", ownerID).Order("name").Find(&tpls)
	if result.Error != nil {
		return nil, result.Error
	}
	return tpls, nil
}
