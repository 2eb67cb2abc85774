package validators

import (
	"net/url"

	"task-dashboard.com/task-dashboard/internal/constants"
	dto "task-dashboard.com/task-dashboard/internal/data_models"
	apperrors "task-dashboard.com/task-dashboard/internal/errors"
)

var (
	sortByField = field{
		name:     "sortBy",
		tag:      "oneof=startTime endTime",
		messages: map[string]string{"oneof": "sortBy must be one of: startTime, endTime"},
	}
	sortDirField = field{
		name:     "sortDir",
		tag:      "oneof=asc desc",
		messages: map[string]string{"oneof": "sortDir must be one of: asc, desc"},
	}
)

// ValidateListTasksQuery parses the optional filters and sort order. Empty
// parameters are treated as absent. sortDir defaults to asc and is ignored
// without sortBy.
func ValidateListTasksQuery(values url.Values) (*dto.TaskQuery, error) {
	ve := apperrors.NewValidationError("Invalid query parameters")
	query := &dto.TaskQuery{}

	if v := values.Get("priority"); v != "" && priorityField.check(ve, v) {
		p := constants.Priority(v)
		query.Priority = &p
	}
	if v := values.Get("status"); v != "" && statusField.check(ve, v) {
		s := constants.TaskStatus(v)
		query.Status = &s
	}
	if v := values.Get("sortBy"); v != "" && sortByField.check(ve, v) {
		query.SortBy = constants.SortField(v)
		query.SortDir = constants.SortAsc
	}
	if v := values.Get("sortDir"); v != "" && sortDirField.check(ve, v) && query.SortBy != "" {
		query.SortDir = constants.SortDirection(v)
	}

	if err := ve.Err(); err != nil {
		return nil, err
	}
	return query, nil
}
