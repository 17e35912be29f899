package models

import "time"

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
	RoleUser  = "user"
)

type User struct {
	ID        ID        `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Username  string    `bson:"username" json:"username"`
	Password  string    `bson:"password" json:"-"` // hash.salt credential, never serialized
	Role      string    `bson:"role" json:"role"`  // "admin", "staff", "user"
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) ApplyDefaults() {
	if u.Role == "" {
		u.Role = RoleUser
	}
}

// UserPatch holds the profile fields a user may change about themselves.
type UserPatch struct {
	Name     *string `bson:"name,omitempty" json:"name,omitempty"`
	Username *string `bson:"username,omitempty" json:"username,omitempty"`
	Password *string `bson:"password,omitempty" json:"-"`
}

// Profile is the public view of a user returned by the auth endpoints.
type Profile struct {
	ID       ID     `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Username: u.Username, Name: u.Name, Email: u.Email, Role: u.Role}
}
