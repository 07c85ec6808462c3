package api

import (
	"time"

	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/models"
)

// isoTime is the JSON timestamp layout: ISO-8601 in UTC with milliseconds.
const isoTime = "2006-01-02T15:04:05.000Z07:00"

// displayStatus is the wire name of each stored status. Input never accepts
// the wire names.
var displayStatus = map[models.ProjectStatus]string{
	models.StatusPending:    "on-hold",
	models.StatusInProgress: "active",
	models.StatusCompleted:  "completed",
}

type projectClientResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type projectResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Status      string                 `json:"status"`
	Deadline    string                 `json:"deadline,omitempty"`
	ClientID    string                 `json:"clientId"`
	Client      *projectClientResponse `json:"client,omitempty"`
	CreatedAt   string                 `json:"createdAt"`
}

func mapProject(p *models.Project) projectResponse {
	res := projectResponse{
		ID:          p.ID,
		Name:        p.Title,
		Description: p.Description,
		Status:      mapStatus(p.Status),
		Deadline:    formatTime(p.Deadline),
		ClientID:    p.ClientID,
		CreatedAt:   formatTime(p.CreatedAt),
	}
	if p.Client != nil && p.Client.ID != "" {
		res.ClientID = p.Client.ID
		res.Client = &projectClientResponse{
			ID:    p.Client.ID,
			Name:  p.Client.Name,
			Email: p.Client.Email,
		}
	}
	return res
}

func mapProjects(projects []*models.Project) []projectResponse {
	res := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		res = append(res, mapProject(p))
	}
	return res
}

// mapStatus passes unknown values through unchanged.
func mapStatus(status models.ProjectStatus) string {
	if display, ok := displayStatus[status]; ok {
		return display
	}
	return string(status)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(isoTime)
}
