package errors

import "net/http"

var ErrOptimisticLock = &Exception{
	Message:    "Task was modified concurrently, retry with fresh data",
	StatusCode: http.StatusConflict,
}
