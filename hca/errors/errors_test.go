package errors

import (
	goerrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorStrings(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"CodeNotFound", &CodeNotFoundError{Code: "Z999"}, "no reference record found for code Z999"},
		{"NoMatchingCodes", &NoMatchingCodesError{Criteria: "benefit DENTAL"}, "no codes match criteria benefit DENTAL"},
		{"Validation", &ValidationError{Field: "patient", Msg: "must not be nil"}, "invalid patient: must not be nil"},
		{"InvalidState", &InvalidStateError{Op: "submit claim", State: "APPROVED"}, "cannot submit claim in state APPROVED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.expected)
		})
	}
}

func TestErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("lookup failed: %w", &CodeNotFoundError{Code: "A00"})

	var notFound *CodeNotFoundError
	assert.True(t, goerrors.As(wrapped, &notFound))
	assert.Equal(t, "A00", notFound.Code)
}
