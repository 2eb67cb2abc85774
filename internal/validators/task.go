package validators

import (
	"time"

	"task-dashboard.com/task-dashboard/internal/constants"
	dto "task-dashboard.com/task-dashboard/internal/data_models"
	apperrors "task-dashboard.com/task-dashboard/internal/errors"
)

var (
	titleField = field{
		name: "title",
		tag:  "required,min=2",
		trim: true,
		messages: map[string]string{
			"required": "Task title is required",
			"min":      "Task title must be at least 2 characters long",
		},
	}
	descriptionField = field{name: "description"}
	startTimeField   = field{
		name: "startTime",
		tag:  "required,timestamp",
		messages: map[string]string{
			"required":  "Start time is required",
			"timestamp": "Start time must be a valid date format",
		},
	}
	endTimeField = field{
		name: "endTime",
		tag:  "required,timestamp",
		messages: map[string]string{
			"required":  "End time is required",
			"timestamp": "End time must be a valid date format",
		},
	}
	priorityField = field{
		name: "priority",
		tag:  "required,priority",
		messages: map[string]string{
			"required": "Priority is required",
			"priority": "Priority must be one of: LOW, MEDIUM, HIGH, URGENT, CRITICAL",
		},
	}
	statusField = field{
		name: "status",
		tag:  "required,status",
		messages: map[string]string{
			"required": "Status is required",
			"status":   "Status must be either PENDING or FINISHED",
		},
	}
)

const (
	titleType       = "Task title must be a string"
	descriptionType = "Description must be a string"
	startTimeType   = "Start time must be a valid date string"
	endTimeType     = "End time must be a valid date string"
	priorityType    = "Priority must be one of: LOW, MEDIUM, HIGH, URGENT, CRITICAL"
	statusType      = "Status must be either PENDING or FINISHED"
)

// CheckWindow records InvalidTemporalRange on endTime unless end is strictly
// after start.
func CheckWindow(ve *apperrors.ValidationError, start, end time.Time) {
	if !end.After(start) {
		ve.Add("endTime", apperrors.InvalidTemporalRange, "End time must be after start time")
	}
}

// ValidateWindow returns a ValidationError unless end is strictly after start.
func ValidateWindow(start, end time.Time) error {
	ve := apperrors.NewValidationError(validationFailed)
	CheckWindow(ve, start, end)
	return ve.Err()
}

func ValidateCreateTaskRequest(body dto.Payload) (*dto.CreateTaskInput, error) {
	ve := apperrors.NewValidationError(validationFailed)

	title, _ := required(body, ve, titleField, titleType)
	description, _ := optional(body, ve, descriptionField, descriptionType)
	startRaw, startOK := required(body, ve, startTimeField, startTimeType)
	endRaw, endOK := required(body, ve, endTimeField, endTimeType)
	priority, _ := required(body, ve, priorityField, priorityType)

	input := &dto.CreateTaskInput{
		Title:       title,
		Description: description,
		Priority:    constants.Priority(priority),
	}

	if startOK && endOK {
		input.StartTime, _ = ParseTimestamp(startRaw)
		input.EndTime, _ = ParseTimestamp(endRaw)
		CheckWindow(ve, input.StartTime, input.EndTime)
	}

	if err := ve.Err(); err != nil {
		return nil, err
	}
	return input, nil
}

// ValidateUpdateTaskRequest checks only the fields present in body.
func ValidateUpdateTaskRequest(body dto.Payload) (*dto.TaskPatch, error) {
	ve := apperrors.NewValidationError(validationFailed)
	patch := &dto.TaskPatch{}

	if v, ok := optional(body, ve, titleField, titleType); ok {
		patch.Title = &v
	}
	if v, ok := optional(body, ve, descriptionField, descriptionType); ok {
		patch.Description = &v
	}
	if v, ok := optional(body, ve, startTimeField, startTimeType); ok {
		t, _ := ParseTimestamp(v)
		patch.StartTime = &t
	}
	if v, ok := optional(body, ve, endTimeField, endTimeType); ok {
		t, _ := ParseTimestamp(v)
		patch.EndTime = &t
	}
	if v, ok := optional(body, ve, priorityField, priorityType); ok {
		p := constants.Priority(v)
		patch.Priority = &p
	}
	if v, ok := optional(body, ve, statusField, statusType); ok {
		s := constants.TaskStatus(v)
		patch.Status = &s
	}

	if patch.StartTime != nil && patch.EndTime != nil {
		CheckWindow(ve, *patch.StartTime, *patch.EndTime)
	}

	if err := ve.Err(); err != nil {
		return nil, err
	}
	return patch, nil
}

// ValidateReplaceTaskRequest validates a full replacement. Every field except
// description is mandatory; an omitted description clears it.
func ValidateReplaceTaskRequest(body dto.Payload) (*dto.TaskPatch, error) {
	ve := apperrors.NewValidationError(validationFailed)

	title, _ := required(body, ve, titleField, titleType)
	description, _ := optional(body, ve, descriptionField, descriptionType)
	startRaw, startOK := required(body, ve, startTimeField, startTimeType)
	endRaw, endOK := required(body, ve, endTimeField, endTimeType)
	priority := constants.Priority(first(required(body, ve, priorityField, priorityType)))
	status := constants.TaskStatus(first(required(body, ve, statusField, statusType)))

	var start, end time.Time
	if startOK && endOK {
		start, _ = ParseTimestamp(startRaw)
		end, _ = ParseTimestamp(endRaw)
		CheckWindow(ve, start, end)
	}

	if err := ve.Err(); err != nil {
		return nil, err
	}

	return &dto.TaskPatch{
		Title:       &title,
		Description: &description,
		StartTime:   &start,
		EndTime:     &end,
		Priority:    &priority,
		Status:      &status,
	}, nil
}

func first(value string, _ bool) string {
	return value
}
