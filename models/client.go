package models

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

// Client represents a customer that projects are delivered for.
// Projects is never stored on the client row; it is filled by a preload on
// projects.client_id when a read asks for it.
type Client struct {
	ID        string    `json:"id" db:"id" gorm:"type:char(24);primaryKey;not null"`
	Name      string    `json:"name" db:"name" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex:idx_clients_email"`
	Phone     string    `json:"phone" db:"phone" gorm:"type:varchar(16);not null"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" gorm:"not null"`
	Projects  []Project `json:"projects,omitempty" gorm:"foreignKey:ClientID;references:ID"`
}

func (c *Client) normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = normalizeEmail(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
}

// Validate checks the constraints the clients table enforces on every write.
func (c *Client) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Name,
			validation.Required.Error("Client name is required"),
			validation.RuneLength(0, 100).Error("Client name cannot be more than 100 characters"),
		),
		validation.Field(&c.Email,
			validation.Required.Error("Email is required"),
			validation.Match(emailPattern).Error("Please enter a valid email"),
		),
		validation.Field(&c.Phone,
			validation.Required.Error("Phone number is required"),
			validation.Match(phonePattern).Error("Please enter a valid phone number"),
		),
	)
	if err != nil {
		return &ValidationError{Entity: "Client", Err: err}
	}
	return nil
}

func (c *Client) BeforeSave(tx *gorm.DB) error {
	c.normalize()
	return c.Validate()
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewObjectID()
	}
	return nil
}
