package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_ConfirmOnlyOnce(t *testing.T) {
	u := &User{}
	assert.True(t, u.Confirm())
	assert.True(t, u.Confirmed)
	assert.False(t, u.Confirm())
	assert.True(t, u.Confirmed)
}

func TestUser_ApplyMode(t *testing.T) {
	u := &User{Settings: Settings{Mode: ModeLight}}

	assert.True(t, u.ApplyMode(ModeDark))
	assert.Equal(t, ModeDark, u.Settings.Mode)

	assert.False(t, u.ApplyMode("blue"))
	assert.Equal(t, ModeDark, u.Settings.Mode)
}

func TestUser_EffectiveMode(t *testing.T) {
	assert.Equal(t, ModeLight, (&User{}).EffectiveMode())
	assert.Equal(t, ModeDark, (&User{Settings: Settings{Mode: ModeDark}}).EffectiveMode())
}

func TestUser_CloneIsIndependent(t *testing.T) {
	u := &User{ID: "1", Name: "a"}
	c := u.Clone()
	c.Name = "b"
	assert.Equal(t, "a", u.Name)
	assert.Nil(t, (*User)(nil).Clone())
}
