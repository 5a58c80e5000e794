package handlers

import (
	"time"

	"github.com/bratat/go-user-accounts/internal/domain/entity"
)

type settingsView struct {
	Mode entity.Mode `json:"mode"`
}

type userView struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Confirmed bool         `json:"confirmed"`
	Settings  settingsView `json:"settings"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func toUserView(u *entity.User) userView {
	return userView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Confirmed: u.Confirmed,
		Settings:  settingsView{Mode: u.EffectiveMode()},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// publicUser is the reduced shape returned after register and profile edits.
type publicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toPublicUser(u *entity.User) publicUser {
	return publicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}
