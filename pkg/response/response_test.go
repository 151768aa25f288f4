package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccessWithPagination(t *testing.T) {
	resp := SuccessWithPagination(200, []int{1, 2}, 2, 20, 41)
	assert.Equal(t, "success", resp.Status)
	if assert.NotNil(t, resp.Meta) {
		assert.Equal(t, int64(3), resp.Meta.TotalPages)
		assert.Equal(t, 2, resp.Meta.Page)
	}

	empty := SuccessWithPagination(200, []int{}, 1, 20, 0)
	assert.Equal(t, int64(0), empty.Meta.TotalPages)
}

func TestErrorWithDetails(t *testing.T) {
	resp := ErrorWithDetails(400, "validation failed", map[string]string{"amount": "required"})
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, map[string]string{"amount": "required"}, resp.Details)
}
