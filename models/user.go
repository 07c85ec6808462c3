package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gorm.io/gorm"
)

// Role is the authorization level of an account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is an account that can authenticate against the API.
type User struct {
	ID        string    `json:"id" db:"id" gorm:"type:char(24);primaryKey;not null"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex:idx_users_email"`
	Password  string    `json:"-" db:"password" gorm:"type:text;not null"`
	Role      Role      `json:"role" db:"role" gorm:"type:varchar(16);not null;default:'user'"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" gorm:"not null"`
}

// Validate checks the constraints the users table enforces on every write.
func (u *User) Validate() error {
	err := validation.ValidateStruct(u,
		validation.Field(&u.Email, validation.Required, is.EmailFormat),
		validation.Field(&u.Password, validation.Required),
		validation.Field(&u.Role, validation.Required, validation.In(RoleAdmin, RoleUser)),
	)
	if err != nil {
		return &ValidationError{Entity: "User", Err: err}
	}
	return nil
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = normalizeEmail(u.Email)
	if u.Role == "" {
		u.Role = RoleUser
	}
	return u.Validate()
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewObjectID()
	}
	return nil
}
