package api

import (
	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/models"
)

type clientResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	Projects  []projectResponse `json:"projects"`
	CreatedAt string            `json:"createdAt"`
	UpdatedAt string            `json:"updatedAt"`
}

// mapClient renders a client with its derived projects. A client that was
// loaded without its projects renders an empty list.
func mapClient(c *models.Client) clientResponse {
	projects := make([]projectResponse, 0, len(c.Projects))
	for i := range c.Projects {
		p := c.Projects[i]
		p.Client = nil
		projects = append(projects, mapProject(&p))
	}

	return clientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Projects:  projects,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func mapClients(clients []*models.Client) []clientResponse {
	res := make([]clientResponse, 0, len(clients))
	for _, c := range clients {
		res = append(res, mapClient(c))
	}
	return res
}

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

func mapUser(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: formatTime(u.CreatedAt),
	}
}
