package repository

import model "task-dashboard.com/task-dashboard/internal/models"

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].ID
	}
	return out
}
