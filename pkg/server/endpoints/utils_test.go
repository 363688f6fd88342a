package endpoints

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doodlesbykumbi/autocrud/pkg/authenticator"
	"github.com/doodlesbykumbi/autocrud/pkg/rbac"
	"github.com/doodlesbykumbi/autocrud/pkg/registry"
)

func TestMessageFor(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{rbac.ErrUnauthenticated, "Not authenticated"},
		{rbac.ErrInsufficientPermission, "Forbidden: insufficient permission"},
		{rbac.ErrNotOwner, "Forbidden: not owner"},
		{registry.ErrModelNotFound, "Model not found"},
		{authenticator.ErrInvalidCredentials, "Invalid credentials"},
		{errInvalidBody, "Invalid JSON body"},
		{fmt.Errorf("lookup: %w", rbac.ErrNotOwner), "Forbidden: not owner"},
		{errors.New("something else"), "something else"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, messageFor(tt.err))
		})
	}
}

func TestSentinelErrorsAreLowercase(t *testing.T) {
	for _, m := range responseMessages {
		text := m.err.Error()
		assert.NotEqual(t, text, m.message)
		assert.Equal(t, text[:1], string(text[0]|0x20), "error %q should start lowercase", text)
	}
}
