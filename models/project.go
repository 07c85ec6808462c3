package models

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/gorm"
)

// ProjectStatus is the stored representation of a project's progress.
type ProjectStatus string

const (
	StatusPending    ProjectStatus = "pending"
	StatusInProgress ProjectStatus = "in progress"
	StatusCompleted  ProjectStatus = "completed"
)

// ProjectStatuses lists every accepted stored status, in display order.
var ProjectStatuses = []ProjectStatus{StatusPending, StatusInProgress, StatusCompleted}

// Project represents a piece of work delivered for a client
type Project struct {
	ID          string        `json:"id" db:"id" gorm:"type:char(24);primaryKey;not null"`
	Title       string        `json:"title" db:"title" gorm:"type:varchar(150);not null"`
	Description string        `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	Status      ProjectStatus `json:"status" db:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	Deadline    time.Time     `json:"deadline" db:"deadline" gorm:"not null"`
	ClientID    string        `json:"clientId" db:"client_id" gorm:"type:char(24);not null;index:idx_projects_client_id"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at" gorm:"not null"`

	Client *Client `json:"client,omitempty" gorm:"foreignKey:ClientID;references:ID"`
}

// ProjectFilter narrows a project listing. Empty fields match everything.
type ProjectFilter struct {
	ClientID string
}

func (p *Project) normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.ClientID = NormalizeObjectID(p.ClientID)
	if p.Status == "" {
		p.Status = StatusPending
	}
}

// Validate checks the constraints the projects table enforces on every write.
// The deadline is only required to be set here; the future-date rule belongs
// to request validation.
func (p *Project) Validate() error {
	statuses := make([]interface{}, len(ProjectStatuses))
	for i, s := range ProjectStatuses {
		statuses[i] = s
	}

	err := validation.ValidateStruct(p,
		validation.Field(&p.Title,
			validation.Required.Error("Project title is required"),
			validation.RuneLength(0, 150).Error("Project title cannot be more than 150 characters"),
		),
		validation.Field(&p.Description,
			validation.RuneLength(0, 1000).Error("Description cannot be more than 1000 characters"),
		),
		validation.Field(&p.Status,
			validation.In(statuses...).Error("`"+string(p.Status)+"` is not a valid enum value for path `status`"),
		),
		validation.Field(&p.Deadline,
			validation.Required.Error("Project deadline is required"),
		),
		validation.Field(&p.ClientID,
			validation.Required.Error("Client reference is required"),
			validation.By(objectIDRule),
		),
	)
	if err != nil {
		return &ValidationError{Entity: "Project", Err: err}
	}
	return nil
}

func objectIDRule(value interface{}) error {
	s, _ := value.(string)
	if s != "" && !IsObjectID(s) {
		return validation.NewError("validation_object_id", "Cast to ObjectId failed for value \""+s+"\"")
	}
	return nil
}

func (p *Project) BeforeSave(tx *gorm.DB) error {
	p.normalize()
	return p.Validate()
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewObjectID()
	}
	return nil
}
