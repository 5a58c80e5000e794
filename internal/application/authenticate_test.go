package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bratat/go-user-accounts/pkg/helpers"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	m := helpers.NewJWTManager("session-secret", "email-secret", time.Hour, time.Hour)
	session, _, err := m.GenerateSessionToken("u1", "Juan Mata", "jo.mata@gmail.com")
	require.NoError(t, err)
	confirm, _, err := m.GenerateConfirmationToken("u1")
	require.NoError(t, err)

	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "raw token", raw: session},
		{name: "bearer prefix", raw: "Bearer " + session},
		{name: "lowercase bearer", raw: "bearer " + session},
		{name: "empty", raw: "", wantErr: ErrMissingToken},
		{name: "bearer only", raw: "Bearer ", wantErr: ErrMissingToken},
		{name: "garbage", raw: "abc", wantErr: ErrInvalidToken},
		{name: "confirmation token", raw: confirm, wantErr: ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Authenticate(m, tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "u1", id.UserID)
			assert.Equal(t, "Juan Mata", id.Name)
			assert.Equal(t, "jo.mata@gmail.com", id.Email)
			assert.False(t, id.ExpiresAt.IsZero())
		})
	}
}
