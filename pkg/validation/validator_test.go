package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name     string `json:"name" validate:"required,min=6,max=255"`
	Email    string `json:"email" validate:"required,min=6,max=255,email"`
	Password string `json:"password" validate:"required,min=6,max=1024"`
}

func TestStruct_Valid(t *testing.T) {
	v := New()
	assert.NoError(t, v.Struct(sample{Name: "Juan Mata", Email: "jo.mata@gmail.com", Password: "123456"}))
}

func TestStruct_FirstViolationOnly(t *testing.T) {
	v := New()
	err := v.Struct(sample{Name: "Jo", Email: "nope", Password: ""})

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "name", fe.Field)
	assert.Equal(t, "min", fe.Tag)
	assert.Equal(t, "name length must be at least 6 characters long", fe.Message)
}

func TestStruct_EmailFormat(t *testing.T) {
	v := New()
	err := v.Struct(sample{Name: "Juan Mata", Email: "not-an-email", Password: "123456"})
	require.Error(t, err)
	assert.Equal(t, "email must be a valid email", err.Error())
}

func TestVar(t *testing.T) {
	v := New()
	assert.NoError(t, v.Var("email", "a@b.co", "required,email"))

	err := v.Var("email", "", "required,email")
	require.Error(t, err)
	assert.Equal(t, "email is required", err.Error())
}

func TestToDetails(t *testing.T) {
	assert.Nil(t, ToDetails(nil))

	var syn map[string]any
	err := json.Unmarshal([]byte("{bad"), &syn)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	assert.Equal(t, map[string]string{"name": "name is required"},
		ToDetails(&FieldError{Field: "name", Tag: "required", Message: "name is required"}))

	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("x")))
}
