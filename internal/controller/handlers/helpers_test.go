package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandArgs(t *testing.T) {
	cases := map[string]string{
		"/trainer 42":          "42",
		"/search  Yoga class ": "Yoga class",
		"/search":              "",
		"/trainer@skill_bot 7": "7",
		"/search\nBoxing":      "Boxing",
	}
	for in, want := range cases {
		assert.Equal(t, want, commandArgs(in), in)
	}
}

func TestOptionalTreatsDashAsSkip(t *testing.T) {
	assert.Equal(t, "", optional(" - "))
	assert.Equal(t, "Mumbai", optional(" Mumbai "))
	assert.Equal(t, "", optional(""))
}
