package services

import (
	"context"
	"time"

	repository "task-dashboard.com/task-dashboard/internal/repositories"
	"task-dashboard.com/task-dashboard/internal/stats"
)

// DashboardService reads the caller's tasks once per call and samples the
// clock once per call.
type DashboardService struct {
	repo *repository.TaskRepository
	now  func() time.Time
}

func NewDashboardService(repo *repository.TaskRepository) *DashboardService {
	return &DashboardService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *DashboardService) Overview(ctx context.Context, userID string) (stats.Overview, error) {
	tasks, err := s.repo.ListForStats(ctx, userID)
	if err != nil {
		return stats.Overview{}, err
	}
	return stats.ComputeOverview(tasks), nil
}

func (s *DashboardService) CompletionTime(ctx context.Context, userID string) (stats.CompletionTime, error) {
	tasks, err := s.repo.ListForStats(ctx, userID)
	if err != nil {
		return stats.CompletionTime{}, err
	}
	return stats.ComputeCompletionTime(tasks), nil
}

func (s *DashboardService) Priority(ctx context.Context, userID string) (stats.PriorityStats, error) {
	tasks, err := s.repo.ListForStats(ctx, userID)
	if err != nil {
		return stats.PriorityStats{}, err
	}
	return stats.ComputePriority(tasks, s.now()), nil
}

// Snapshot computes all views from one read so they agree with each other.
func (s *DashboardService) Snapshot(ctx context.Context, userID string) (stats.Snapshot, error) {
	tasks, err := s.repo.ListForStats(ctx, userID)
	if err != nil {
		return stats.Snapshot{}, err
	}
	return stats.ComputeSnapshot(tasks, s.now()), nil
}
