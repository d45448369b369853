package services

import (
	"portfolio.dev/internal/models"
)

// ProfileService serves the static portfolio content
type ProfileService struct {
	profile *models.Profile
}

// NewProfileService creates a new ProfileService
func NewProfileService(profile *models.Profile) *ProfileService {
	if profile == nil {
		profile = &models.Profile{}
	}
	return &ProfileService{profile: profile}
}

// Skills groups skills by category, categories in order of first appearance
func (s *ProfileService) Skills() []models.SkillCategory {
	var categories []models.SkillCategory
	index := make(map[string]int)
	for _, skill := range s.profile.Skills {
		i, ok := index[skill.Category]
		if !ok {
			i = len(categories)
			index[skill.Category] = i
			categories = append(categories, models.SkillCategory{Name: skill.Category})
		}
		categories[i].Skills = append(categories[i].Skills, skill)
	}
	return categories
}

// Get returns the profile for the client
func (s *ProfileService) Get() *models.ProfileResponse {
	return &models.ProfileResponse{
		Name:       s.profile.Name,
		Headline:   s.profile.Headline,
		About:      s.profile.About,
		Categories: s.Skills(),
		Contact:    s.profile.Contact,
	}
}
