package dto

import (
	"encoding/json"
	"time"

	"task-dashboard.com/task-dashboard/internal/constants"
)

// Payload is a JSON object body kept undecoded per field so that each field
// can be type-checked and reported on its own.
type Payload map[string]json.RawMessage

type CreateTaskInput struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Priority    constants.Priority
}

// TaskPatch carries only the fields present in an update request.
type TaskPatch struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	Priority    *constants.Priority
	Status      *constants.TaskStatus
}

func (p *TaskPatch) TouchesWindow() bool {
	return p.StartTime != nil || p.EndTime != nil
}

type TaskQuery struct {
	Priority *constants.Priority
	Status   *constants.TaskStatus
	SortBy   constants.SortField
	SortDir  constants.SortDirection
}
