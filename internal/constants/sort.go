package constants

type SortField string

const (
	SortByStartTime SortField = "startTime"
	SortByEndTime   SortField = "endTime"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Column returns the task table column backing the sort field.
func (f SortField) Column() string {
	switch f {
	case SortByStartTime:
		return "start_time"
	case SortByEndTime:
		return "end_time"
	default:
		return ""
	}
}
