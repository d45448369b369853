package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio.dev/internal/models"
)

func TestProfileService_SkillsGroupedInOrder(t *testing.T) {
	svc := NewProfileService(&models.Profile{
		Name: "Octo",
		Skills: []models.Skill{
			{Name: "Java", Category: "Backend Development"},
			{Name: "MySQL", Category: "Database"},
			{Name: "Spring Boot", Category: "Backend Development"},
			{Name: "Git", Category: "Tools & Technologies"},
		},
	})

	cats := svc.Skills()
	require.Len(t, cats, 3)
	assert.Equal(t, "Backend Development", cats[0].Name)
	assert.Len(t, cats[0].Skills, 2)
	assert.Equal(t, "Spring Boot", cats[0].Skills[1].Name)
	assert.Equal(t, "Database", cats[1].Name)
	assert.Equal(t, "Tools & Technologies", cats[2].Name)

	resp := svc.Get()
	assert.Equal(t, "Octo", resp.Name)
	assert.Equal(t, cats, resp.Categories)
}

func TestProfileService_Empty(t *testing.T) {
	assert.Empty(t, NewProfileService(nil).Skills())
}
