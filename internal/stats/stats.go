// Package stats computes the dashboard aggregates over one user's task set.
//
// Every function works on an already fetched slice and, where elapsed time
// matters, a single caller-supplied "now". Intermediate values keep full
// precision; only the exported result fields are rounded to two decimals.
package stats

import (
	"math"
	"time"

	"task-dashboard.com/task-dashboard/internal/constants"
	model "task-dashboard.com/task-dashboard/internal/models"
)

type Overview struct {
	TotalTasks                 int     `json:"totalTasks"`
	CompletedTasks             int     `json:"completedTasks"`
	PendingTasks               int     `json:"pendingTasks"`
	PercentCompleted           float64 `json:"percentCompleted"`
	PercentPending             float64 `json:"percentPending"`
	AverageCompletionTimeHours float64 `json:"averageCompletionTimeHours"`
}

type CompletionTime struct {
	AverageCompletionTimeHours   float64 `json:"averageCompletionTimeHours"`
	AverageCompletionTimeMinutes float64 `json:"averageCompletionTimeMinutes"`
	AverageCompletionTimeDays    float64 `json:"averageCompletionTimeDays"`
	CompletedTaskCount           int     `json:"completedTaskCount"`
	PendingTaskCount             int     `json:"pendingTaskCount"`
}

// PriorityBreakdown describes the pending tasks of one priority. Times are
// in milliseconds.
type PriorityBreakdown struct {
	Priority             constants.Priority `json:"priority"`
	PendingCount         int                `json:"pendingCount"`
	AverageTimeLapsed    float64            `json:"averageTimeLapsed"`
	AverageTimeRemaining float64            `json:"averageTimeRemaining"`
	TotalTimeLapsed      float64            `json:"totalTimeLapsed"`
	TotalTimeRemaining   float64            `json:"totalTimeRemaining"`
}

type PriorityStats struct {
	TotalTasks     int                 `json:"totalTasks"`
	CompletedTasks int                 `json:"completedTasks"`
	PendingTasks   int                 `json:"pendingTasks"`
	PriorityStats  []PriorityBreakdown `json:"priorityStats"`
}

// Snapshot holds all three views computed from the same task set and clock.
type Snapshot struct {
	Overview       Overview       `json:"overview"`
	CompletionTime CompletionTime `json:"completionTime"`
	Priority       PriorityStats  `json:"priority"`
	GeneratedAt    time.Time      `json:"generatedAt"`
}

type tally struct {
	total                int
	completed            int
	averageCompletionHrs float64
}

func (t tally) pending() int {
	return t.total - t.completed
}

func count(tasks []model.Task) tally {
	var (
		t          = tally{total: len(tasks)}
		sumElapsed time.Duration
	)

	for i := range tasks {
		if !tasks[i].IsFinished() {
			continue
		}
		t.completed++
		sumElapsed += tasks[i].EndTime.Sub(tasks[i].StartTime)
	}

	if t.completed > 0 {
		t.averageCompletionHrs = sumElapsed.Hours() / float64(t.completed)
	}
	return t
}

func ComputeOverview(tasks []model.Task) Overview {
	t := count(tasks)

	var percentCompleted, percentPending float64
	if t.total > 0 {
		percentCompleted = float64(t.completed) / float64(t.total) * 100
		percentPending = 100 - percentCompleted
	}

	return Overview{
		TotalTasks:                 t.total,
		CompletedTasks:             t.completed,
		PendingTasks:               t.pending(),
		PercentCompleted:           Round2(percentCompleted),
		PercentPending:             Round2(percentPending),
		AverageCompletionTimeHours: Round2(t.averageCompletionHrs),
	}
}

func ComputeCompletionTime(tasks []model.Task) CompletionTime {
	t := count(tasks)

	return CompletionTime{
		AverageCompletionTimeHours:   Round2(t.averageCompletionHrs),
		AverageCompletionTimeMinutes: Round2(t.averageCompletionHrs * 60),
		AverageCompletionTimeDays:    Round2(t.averageCompletionHrs / 24),
		CompletedTaskCount:           t.completed,
		PendingTaskCount:             t.pending(),
	}
}

type priorityMetrics struct {
	count         int
	timeLapsed    float64
	timeRemaining float64
}

// ComputePriority groups PENDING tasks by priority. Priorities without
// pending tasks are left out of the result.
func ComputePriority(tasks []model.Task, now time.Time) PriorityStats {
	t := count(tasks)
	metrics := make(map[constants.Priority]*priorityMetrics)

	for i := range tasks {
		task := &tasks[i]
		if task.Status != constants.StatusPending {
			continue
		}

		m, ok := metrics[task.Priority]
		if !ok {
			m = &priorityMetrics{}
			metrics[task.Priority] = m
		}

		m.count++
		m.timeLapsed += millis(clampedSub(now, task.StartTime))
		m.timeRemaining += millis(clampedSub(task.EndTime, now))
	}

	breakdown := make([]PriorityBreakdown, 0, len(metrics))
	for _, p := range constants.Priorities {
		m, ok := metrics[p]
		if !ok || m.count == 0 {
			continue
		}
		breakdown = append(breakdown, PriorityBreakdown{
			Priority:             p,
			PendingCount:         m.count,
			AverageTimeLapsed:    Round2(m.timeLapsed / float64(m.count)),
			AverageTimeRemaining: Round2(m.timeRemaining / float64(m.count)),
			TotalTimeLapsed:      Round2(m.timeLapsed),
			TotalTimeRemaining:   Round2(m.timeRemaining),
		})
	}

	return PriorityStats{
		TotalTasks:     t.total,
		CompletedTasks: t.completed,
		PendingTasks:   t.pending(),
		PriorityStats:  breakdown,
	}
}

func ComputeSnapshot(tasks []model.Task, now time.Time) Snapshot {
	return Snapshot{
		Overview:       ComputeOverview(tasks),
		CompletionTime: ComputeCompletionTime(tasks),
		Priority:       ComputePriority(tasks, now),
		GeneratedAt:    now.UTC(),
	}
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// clampedSub returns a-b, or zero when b is after a.
func clampedSub(a, b time.Time) time.Duration {
	if d := a.Sub(b); d > 0 {
		return d
	}
	return 0
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
