// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/katha/internal/platform/apperr"
	"github.com/taibuivan/katha/internal/platform/validate"
)

func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"valid_string", "Katha", false},
		{"empty_string", "", true},
		{"whitespace_only", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required("title", tt.value)

			if !tt.hasError {
				assert.NoError(t, v.Err())
				return
			}

			ae := apperr.As(v.Err())
			require.NotNil(t, ae)
			assert.Equal(t, apperr.CodeValidation, ae.Code)
			assert.Equal(t, "title", ae.Details[0].Field)
		})
	}
}

func TestValidator_Email(t *testing.T) {
	tests := []struct {
		email   string
		isValid bool
	}{
		{"reader@example.com", true},
		{"invalid-email", false},
		{"reader@", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

func TestValidator_Float(t *testing.T) {
	v := &validate.Validator{}
	assert.Equal(t, 1.5, v.Float("chapter_number", "1.5"))
	assert.Equal(t, 2.0, v.Float("chapter_number", " 2 "))
	assert.False(t, v.HasErrors())

	assert.Zero(t, v.Float("chapter_number", "one"))
	assert.True(t, v.HasErrors())

	for _, raw := range []string{"NaN", "Inf", "-inf"} {
		v := &validate.Validator{}
		assert.Zero(t, v.Float("chapter_number", raw))
		assert.True(t, v.HasErrors(), raw)
	}
}

func TestValidator_OptionalTime(t *testing.T) {
	v := &validate.Validator{}
	assert.Nil(t, v.OptionalTime("scheduled_publish", ""))

	parsed := v.OptionalTime("scheduled_publish", "2026-03-01 18:30")
	require.NotNil(t, parsed)
	assert.Equal(t, time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC), *parsed)
	assert.False(t, v.HasErrors())

	assert.Nil(t, v.OptionalTime("scheduled_publish", "tomorrow"))
	assert.True(t, v.HasErrors())
}

func TestValidator_OptionalOneOf(t *testing.T) {
	v := &validate.Validator{}
	v.OptionalOneOf("schedule", "", "weekly", "monthly")
	v.OptionalOneOf("schedule", "weekly", "weekly", "monthly")
	assert.False(t, v.HasErrors())

	v.OptionalOneOf("schedule", "daily", "weekly", "monthly")
	assert.True(t, v.HasErrors())
}

func TestValidator_ChainFailure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("username", "").
		MinLen("username", "a", 3).
		Email("email", "not-an-email").
		Range("rating", 9, 1, 5).
		Err()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 4)
}
