package models

// Profile holds the static portfolio content
type Profile struct {
	Name     string        `yaml:"name" json:"name"`
	Headline string        `yaml:"headline" json:"headline"`
	About    []string      `yaml:"about" json:"about"`
	Skills   []Skill       `yaml:"skills" json:"-"`
	Contact  []ContactLink `yaml:"contact" json:"contact"`
}

// Skill is a single entry of the skills taxonomy
type Skill struct {
	Name        string `yaml:"name" json:"name"`
	Icon        string `yaml:"icon" json:"icon"`
	Category    string `yaml:"category" json:"category"`
	Proficiency int    `yaml:"proficiency" json:"proficiency"` // 0-100
}

// SkillCategory groups skills under a heading
type SkillCategory struct {
	Name   string  `json:"name"`
	Skills []Skill `json:"skills"`
}

// ContactLink is an outbound contact channel
type ContactLink struct {
	Label string `yaml:"label" json:"label"`
	URL   string `yaml:"url" json:"url"`
}

// ProfileResponse is the profile as sent to the client
type ProfileResponse struct {
	Name       string          `json:"name"`
	Headline   string          `json:"headline"`
	About      []string        `json:"about"`
	Categories []SkillCategory `json:"categories"`
	Contact    []ContactLink   `json:"contact"`
}
