package constants

import "slices"

type TaskStatus string

const (
	StatusPending  TaskStatus = "PENDING"
	StatusFinished TaskStatus = "FINISHED"
)

var TaskStatuses = []TaskStatus{StatusPending, StatusFinished}

func (s TaskStatus) Valid() bool {
	return slices.Contains(TaskStatuses, s)
}
