package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-dashboard.com/task-dashboard/internal/constants"
	dto "task-dashboard.com/task-dashboard/internal/data_models"
	apperrors "task-dashboard.com/task-dashboard/internal/errors"
	model "task-dashboard.com/task-dashboard/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) CreateTask(ctx context.Context, ownerID string, input *dto.CreateTaskInput) (*model.Task, error) {
	now := time.Now().UTC()
	task := &model.Task{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		StartTime:   input.StartTime.UTC(),
		EndTime:     input.EndTime.UTC(),
		Priority:    input.Priority,
		Status:      constants.StatusPending,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}

	return task, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// ListByOwner returns the owner's tasks matching every filter set in query.
// Without a sort field rows come back in the store's natural order.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string, query *dto.TaskQuery) ([]model.Task, error) {
	tx := r.db.WithContext(ctx).Where("user_id = ?", ownerID)

	if query != nil {
		if query.Priority != nil {
			tx = tx.Where("priority = ?", *query.Priority)
		}
		if query.Status != nil {
			tx = tx.Where("status = ?", *query.Status)
		}
		if column := query.SortBy.Column(); column != "" {
			order := column + " asc"
			if query.SortDir == constants.SortDesc {
				order = column + " desc"
			}
			tx = tx.Order(order)
		}
	}

	tasks := make([]model.Task, 0)
	if err := tx.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListForStats loads only the columns the dashboard aggregates need.
func (r *TaskRepository) ListForStats(ctx context.Context, ownerID string) ([]model.Task, error) {
	tasks := make([]model.Task, 0)
	err := r.db.WithContext(ctx).
		Select("id", "user_id", "start_time", "end_time", "priority", "status").
		Where("user_id = ?", ownerID).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update writes every mutable column guarded by the task's version. A stale
// version yields ErrOptimisticLock and leaves the row untouched.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	updatedAt := time.Now().UTC()

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"start_time":  task.StartTime.UTC(),
			"end_time":    task.EndTime.UTC(),
			"priority":    task.Priority,
			"status":      task.Status,
			"updated_at":  updatedAt,
			"version":     gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}

	task.Version++
	task.UpdatedAt = updatedAt
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}
