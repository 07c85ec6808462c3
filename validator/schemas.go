package validator

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/models"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

var ClientSchema = NewSchema(
	Field{
		Key:      "name",
		Label:    "Client name",
		Required: "Client name is required",
		Rules: []validation.Rule{
			validation.Required.Error("Client name cannot be empty"),
			validation.RuneLength(1, 100).Error("Client name cannot be more than 100 characters"),
		},
	},
	Field{
		Key:       "email",
		Label:     "Email",
		Required:  "Email is required",
		Lowercase: true,
		Rules: []validation.Rule{
			validation.Required.Error("Email cannot be empty"),
			is.EmailFormat.Error("Please provide a valid email address"),
		},
	},
	Field{
		Key:      "phone",
		Label:    "Phone number",
		Required: "Phone number is required",
		Rules: []validation.Rule{
			validation.Required.Error("Phone number cannot be empty"),
			validation.Match(phonePattern).Error("Please provide a valid phone number (7-15 digits, optionally starting with +)"),
		},
	},
)

var ClientUpdateSchema = ClientSchema.Partial()

var ProjectSchema = NewSchema(
	Field{
		Key:      "title",
		Label:    "Project title",
		Required: "Project title is required",
		Rules: []validation.Rule{
			validation.Required.Error("Project title cannot be empty"),
			validation.RuneLength(1, 150).Error("Project title cannot be more than 150 characters"),
		},
	},
	Field{
		Key:   "description",
		Label: "Description",
		Rules: []validation.Rule{
			validation.RuneLength(0, 1000).Error("Description cannot be more than 1000 characters"),
		},
	},
	Field{
		Key:     "status",
		Label:   "Status",
		Default: string(models.StatusPending),
		Rules: []validation.Rule{
			validation.Required.Error(statusMessage),
			validation.In(statusValues()...).Error(statusMessage),
		},
	},
	Field{
		Key:      "deadline",
		Label:    "Deadline",
		Kind:     KindDate,
		Required: "Deadline is required",
		After:    "Deadline must be a future date",
	},
	Field{
		Key:       "clientId",
		Label:     "Client ID",
		Required:  "Client ID is required",
		Lowercase: true,
		Rules: []validation.Rule{
			validation.Required.Error("Client ID cannot be empty"),
			is.Hexadecimal.Error("Client ID must be a valid MongoDB ObjectId"),
			validation.RuneLength(24, 24).Error("Client ID must be 24 characters long"),
		},
	},
)

var ProjectUpdateSchema = ProjectSchema.Partial()

var SignupSchema = NewSchema(
	Field{
		Key:       "email",
		Label:     "Email",
		Required:  "Email is required",
		Lowercase: true,
		Rules: []validation.Rule{
			validation.Required.Error("Email cannot be empty"),
			is.EmailFormat.Error("Please provide a valid email address"),
		},
	},
	Field{
		Key:       "password",
		Label:     "Password",
		Required:  "Password is required",
		KeepSpace: true,
		Rules: []validation.Rule{
			validation.Required.Error("Password cannot be empty"),
			validation.RuneLength(6, 0).Error("Password must be at least 6 characters long"),
		},
	},
	Field{
		Key:           "confirmPassword",
		Label:         "Confirm password",
		Required:      "Confirm password is required",
		KeepSpace:     true,
		SameAs:        "password",
		SameAsMessage: "Passwords do not match",
		Rules: []validation.Rule{
			validation.Required.Error("Confirm password cannot be empty"),
		},
	},
)

var LoginSchema = NewSchema(
	Field{
		Key:       "email",
		Label:     "Email",
		Required:  "Email is required",
		Lowercase: true,
		Rules: []validation.Rule{
			validation.Required.Error("Email cannot be empty"),
			is.EmailFormat.Error("Please provide a valid email address"),
		},
	},
	Field{
		Key:       "password",
		Label:     "Password",
		Required:  "Password is required",
		KeepSpace: true,
		Rules: []validation.Rule{
			validation.Required.Error("Password cannot be empty"),
		},
	},
)

const statusMessage = "Status must be one of: pending, in progress, completed"

func statusValues() []interface{} {
	values := make([]interface{}, len(models.ProjectStatuses))
	for i, s := range models.ProjectStatuses {
		values[i] = string(s)
	}
	return values
}
