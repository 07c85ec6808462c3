package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/models"
)

func TestMapProject(t *testing.T) {
	deadline := time.Date(2030, 5, 1, 12, 30, 0, 0, time.FixedZone("WAT", 3600))
	created := time.Date(2026, 1, 2, 3, 4, 5, 6_000_000, time.UTC)

	t.Run("resolved client", func(t *testing.T) {
		res := mapProject(&models.Project{
			ID:          "64b000000000000000000001",
			Title:       "Website",
			Description: "Landing page",
			Status:      models.StatusInProgress,
			Deadline:    deadline,
			ClientID:    "64b000000000000000000002",
			CreatedAt:   created,
			Client: &models.Client{
				ID:    "64b000000000000000000002",
				Name:  "Acme",
				Email: "info@acme.com",
				Phone: "1234567",
			},
		})

		assert.Equal(t, projectResponse{
			ID:          "64b000000000000000000001",
			Name:        "Website",
			Description: "Landing page",
			Status:      "active",
			Deadline:    "2030-05-01T11:30:00.000Z",
			ClientID:    "64b000000000000000000002",
			Client: &projectClientResponse{
				ID:    "64b000000000000000000002",
				Name:  "Acme",
				Email: "info@acme.com",
			},
			CreatedAt: "2026-01-02T03:04:05.006Z",
		}, res)
	})

	t.Run("unresolved client", func(t *testing.T) {
		res := mapProject(&models.Project{
			ID:       "64b000000000000000000001",
			Status:   models.StatusPending,
			ClientID: "64b000000000000000000009",
		})

		assert.Equal(t, "on-hold", res.Status)
		assert.Equal(t, "64b000000000000000000009", res.ClientID)
		assert.Nil(t, res.Client)
		assert.Empty(t, res.Deadline)
	})
}

func TestMapStatus(t *testing.T) {
	assert.Equal(t, "on-hold", mapStatus(models.StatusPending))
	assert.Equal(t, "active", mapStatus(models.StatusInProgress))
	assert.Equal(t, "completed", mapStatus(models.StatusCompleted))
}

func TestMapClient(t *testing.T) {
	res := mapClient(&models.Client{
		ID:   "64b000000000000000000002",
		Name: "Acme",
		Projects: []models.Project{{
			ID:       "64b000000000000000000001",
			Title:    "Website",
			Status:   models.StatusCompleted,
			ClientID: "64b000000000000000000002",
			Client:   &models.Client{ID: "64b000000000000000000002"},
		}},
	})

	assert.Len(t, res.Projects, 1)
	assert.Equal(t, "Website", res.Projects[0].Name)
	assert.Nil(t, res.Projects[0].Client)
	assert.Empty(t, res.CreatedAt)

	empty := mapClient(&models.Client{ID: "64b000000000000000000003"})
	assert.NotNil(t, empty.Projects)
	assert.Empty(t, empty.Projects)
}
