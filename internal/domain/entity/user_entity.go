package entity

import (
	"time"
)

// Mode is the UI colour scheme a user picked.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	return m == ModeLight || m == ModeDark
}

// Settings groups per-user preferences
type Settings struct {
	Mode Mode
}

// User is the aggregate root for user domain
// Passwords are stored as bcrypt hashes in PasswordHash field
//
// Confirmed only ever moves from false to true; stores refuse to reset it.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Confirmed    bool
	Settings     Settings
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Confirm marks the email address as verified. It reports whether the
// user changed.
func (u *User) Confirm() bool {
	if u.Confirmed {
		return false
	}
	u.Confirmed = true
	return true
}

// ApplyMode sets the settings mode when m is valid. Invalid values are
// ignored and reported as false.
func (u *User) ApplyMode(m Mode) bool {
	if !m.Valid() {
		return false
	}
	u.Settings.Mode = m
	return true
}

// EffectiveMode returns the stored mode, defaulting to light when unset.
func (u *User) EffectiveMode() Mode {
	if u.Settings.Mode == "" {
		return ModeLight
	}
	return u.Settings.Mode
}

// Clone returns a copy that can be mutated without touching u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
