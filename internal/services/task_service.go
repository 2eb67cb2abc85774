package services

import (
	"context"
	"net/url"
	"time"

	"task-dashboard.com/task-dashboard/internal/auth"
	"task-dashboard.com/task-dashboard/internal/constants"
	dto "task-dashboard.com/task-dashboard/internal/data_models"
	apperrors "task-dashboard.com/task-dashboard/internal/errors"
	"task-dashboard.com/task-dashboard/internal/logger"
	model "task-dashboard.com/task-dashboard/internal/models"
	repository "task-dashboard.com/task-dashboard/internal/repositories"
	"task-dashboard.com/task-dashboard/internal/validators"
)

// ReopenDeadline is how far in the future a reopened task's end time moves.
const ReopenDeadline = 24 * time.Hour

type TaskService struct {
	repo *repository.TaskRepository
	now  func() time.Time
}

func NewTaskService(repo *repository.TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, ownerID string, body dto.Payload) (*model.Task, error) {
	input, err := validators.ValidateCreateTaskRequest(body)
	if err != nil {
		return nil, err
	}

	task, err := s.repo.CreateTask(ctx, ownerID, input)
	if err != nil {
		return nil, err
	}

	logger.Info("task created", "task_id", task.ID, "user_id", ownerID, "priority", task.Priority)
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id, callerID string) (*model.Task, error) {
	return s.loadOwned(ctx, id, callerID)
}

func (s *TaskService) ListTasks(ctx context.Context, ownerID string, params url.Values) ([]model.Task, error) {
	query, err := validators.ValidateListTasksQuery(params)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByOwner(ctx, ownerID, query)
}

// UpdateTask applies a partial update: only fields present in body change.
func (s *TaskService) UpdateTask(ctx context.Context, id, callerID string, body dto.Payload) (*model.Task, error) {
	return s.mutate(ctx, id, callerID, body, validators.ValidateUpdateTaskRequest)
}

// ReplaceTask overwrites every mutable field of the task.
func (s *TaskService) ReplaceTask(ctx context.Context, id, callerID string, body dto.Payload) (*model.Task, error) {
	return s.mutate(ctx, id, callerID, body, validators.ValidateReplaceTaskRequest)
}

func (s *TaskService) DeleteTask(ctx context.Context, id, callerID string) error {
	if _, err := s.loadOwned(ctx, id, callerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("task deleted", "task_id", id, "user_id", callerID)
	return nil
}

// mutate checks existence, then ownership, then the payload.
func (s *TaskService) mutate(
	ctx context.Context,
	id,
	callerID string,
	body dto.Payload,
	validate func(dto.Payload) (*dto.TaskPatch, error),
) (*model.Task, error) {
	task, err := s.loadOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	patch, err := validate(body)
	if err != nil {
		return nil, err
	}

	previous := task.Status
	if err := ApplyPatch(task, patch, s.now()); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	if previous != task.Status {
		logger.Info("task status changed", "task_id", task.ID, "from", previous, "to", task.Status)
	}
	return task, nil
}

func (s *TaskService) loadOwned(ctx context.Context, id, callerID string) (*model.Task, error) {
	if id == "" {
		return nil, apperrors.ErrTaskIDRequired
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := auth.AuthorizeUser(callerID, task.UserID); err != nil {
		logger.Warn("task access denied", "task_id", id, "user_id", callerID)
		return nil, err
	}
	return task, nil
}

// ApplyPatch merges patch into task. A status change stamps the end time:
// completion records now, reopening sets a fresh deadline. Whenever either
// time moved, the resulting window must satisfy start < end.
func ApplyPatch(task *model.Task, patch *dto.TaskPatch, now time.Time) error {
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.StartTime != nil {
		task.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		task.EndTime = *patch.EndTime
	}

	statusChanged := patch.Status != nil && *patch.Status != task.Status
	if statusChanged {
		transition(task, *patch.Status, now)
	}

	if patch.TouchesWindow() || statusChanged {
		return validators.ValidateWindow(task.StartTime, task.EndTime)
	}
	return nil
}

func transition(task *model.Task, to constants.TaskStatus, now time.Time) {
	task.Status = to

	switch to {
	case constants.StatusFinished:
		task.EndTime = now.UTC()
	case constants.StatusPending:
		task.EndTime = now.UTC().Add(ReopenDeadline)
	}
}
