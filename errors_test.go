package trigvk

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestNewError(t *testing.T) {
	assert.NoError(t, NewError(vk.Success))

	err := NewError(vk.ErrorOutOfHostMemory)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vulkan error")

	wrapped := errors.Wrap(errors.Wrap(err, "create buffer"), "vertex buffer")
	code, ok := Result(wrapped)
	assert.True(t, ok)
	assert.Equal(t, vk.ErrorOutOfHostMemory, code)
	assert.Contains(t, wrapped.Error(), "vertex buffer: create buffer: ")
}

func TestResultWithoutVulkanError(t *testing.T) {
	code, ok := Result(ErrCapacityExceeded)
	assert.False(t, ok)
	assert.Equal(t, vk.Success, code)
}
