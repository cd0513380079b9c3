package repository_test

import (
	"context"
	"testing"
	"time"

	"smarttodo/internal/model"
	"smarttodo/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

func TestTaskRepository_Create(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	task := &model.Task{
		ID:                uuid.New(),
		Title:             "write report",
		Deadline:          time.Now().Add(24 * time.Hour),
		Status:            model.StatusOngoing,
		Priority:          3,
		RecurrencePattern: model.RecurrenceNone,
		EstimatedDuration: 60,
		CreatedBy:         uuid.New(),
		Tags:              model.StringSlice{"work"},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "tasks"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// Act
	err := taskRepo.Create(context.Background(), task)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_GetByIDForOwner_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	taskID := uuid.New()
	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE id = .* AND created_by = .*`).
		WithArgs(taskID, ownerID).
		WillReturnError(gorm.ErrRecordNotFound)

	// Act
	task, err := taskRepo.GetByIDForOwner(context.Background(), taskID, ownerID)

	// Assert
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.Nil(t, task)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_FindOverdue(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	now := time.Now()
	taskID := uuid.New()
	ownerID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "tasks" WHERE status = .* AND deadline < .*`).
		WithArgs(string(model.StatusOngoing), now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "deadline", "status", "priority", "created_by"}).
			AddRow(taskID.String(), "overdue task", now.Add(-time.Hour), "ongoing", 3, ownerID.String()))

	// Act
	tasks, err := taskRepo.FindOverdue(context.Background(), now)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, taskID, tasks[0].ID)
	assert.Equal(t, model.StatusOngoing, tasks[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_MarkFailed(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	now := time.Now()
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tasks" SET .* WHERE id IN .* AND status = .*`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	// Act
	affected, err := taskRepo.MarkFailed(context.Background(), ids, now)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_MarkFailed_EmptyIDs(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Act - no query should be issued at all
	affected, err := taskRepo.MarkFailed(context.Background(), nil, time.Now())

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_DeleteFinishedBefore(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	cutoff := time.Now().Add(-90 * 24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tasks" WHERE status IN .* AND updated_at < .*`).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectCommit()

	// Act
	deleted, err := taskRepo.DeleteFinishedBefore(context.Background(), cutoff)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(5), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
