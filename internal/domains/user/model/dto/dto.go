package dto

import (
	"stayhub/internal/domains/user/model"
)

// UserResponse is the read-only representation nested into listing and
// booking payloads. Password and role are never exposed.
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Username = model.Username
	r.Email = model.Email
	r.FirstName = model.FirstName
	r.LastName = model.LastName
}
