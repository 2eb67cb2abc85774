package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumsValid(t *testing.T) {
	for _, p := range Priorities {
		assert.True(t, p.Valid(), p)
	}
	assert.False(t, Priority("low").Valid())
	assert.False(t, Priority("").Valid())

	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusFinished.Valid())
	assert.False(t, TaskStatus("DONE").Valid())
}

func TestSortFieldColumn(t *testing.T) {
	assert.Equal(t, "start_time", SortByStartTime.Column())
	assert.Equal(t, "end_time", SortByEndTime.Column())
}
