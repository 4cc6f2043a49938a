package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Status_Valid(t *testing.T) {
	for _, s := range []Status{StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, s.Valid(), "expected %q to be valid", s)
	}
	assert.False(t, Status("Pending").Valid())
	assert.False(t, Status("").Valid())
}

func Test_Status_Cancellable(t *testing.T) {
	assert.True(t, StatusProcessing.Cancellable())
	assert.False(t, StatusShipped.Cancellable())
	assert.False(t, StatusDelivered.Cancellable())
	assert.False(t, StatusCancelled.Cancellable())
}

func Test_Status_Display(t *testing.T) {
	assert.Equal(t, "warning", StatusProcessing.Display().Emphasis)
	assert.Equal(t, "info", StatusShipped.Display().Emphasis)
	assert.Equal(t, "success", StatusDelivered.Display().Emphasis)

	// Cancelled and unknown statuses resolve to the neutral descriptor.
	neutral := StatusCancelled.Display()
	assert.Equal(t, "neutral", neutral.Emphasis)
	assert.Equal(t, "Cancelled", neutral.Label)
	assert.Equal(t, "neutral", Status("Whatever").Display().Emphasis)
}
