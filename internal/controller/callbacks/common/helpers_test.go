package common

import (
	"errors"
	"testing"

	"github.com/Freeeeeet/skilllink_bot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDFromCallback(t *testing.T) {
	id, err := ParseIDFromCallback("book_slot:42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParseIDFromCallback("book_slot")
	assert.Error(t, err)

	_, err = ParseIDFromCallback("book_slot:x")
	assert.Error(t, err)
}

func TestParseValueFromCallback(t *testing.T) {
	v, ok := ParseValueFromCallback("rate_type:DAY", "rate_type:")
	assert.True(t, ok)
	assert.Equal(t, "DAY", v)

	_, ok = ParseValueFromCallback("rate_type:", "rate_type:")
	assert.False(t, ok)
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "❌ Invalid button data", ErrorMessage(ErrInvalidFormat))
	assert.Equal(t, service.MsgPageNotLoaded, ErrorMessage(ErrNoBookingPage))
	assert.Equal(t, "⚠️ Please enter at least one rate.", ErrorMessage(service.ErrMissingRate))
	assert.True(t, IsMessageNotModifiedError(errors.New("Bad Request: message is not modified")))
	assert.False(t, IsMessageNotModifiedError(nil))
}
