package domain

import "time"

// SocialLinks groups the optional outbound links on a profile.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Experience is a work-history entry embedded in a profile.
// Entries are kept newest-first and addressed by ID, never by position.
type Experience struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

// Education is a schooling entry embedded in a profile.
type Education struct {
	ID           string     `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"field_of_study"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// Profile is the one-per-user document holding optional career fields
// plus the embedded experience and education lists.
type Profile struct {
	ID             string
	UserID         string
	Company        string
	Website        string
	Location       string
	Status         string
	Skills         []string
	Bio            string
	GithubUsername string
	Social         SocialLinks
	Experience     []Experience
	Education      []Education
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FindExperience returns the index of the entry with the given ID, or -1.
func (p *Profile) FindExperience(id string) int {
	for i := range p.Experience {
		if p.Experience[i].ID == id {
			return i
		}
	}
	return -1
}

// FindEducation returns the index of the entry with the given ID, or -1.
func (p *Profile) FindEducation(id string) int {
	for i := range p.Education {
		if p.Education[i].ID == id {
			return i
		}
	}
	return -1
}
