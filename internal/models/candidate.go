package models

import "time"

// CandidateProfile is the student profile read model. It is owned by the
// student-facing side and only read here.
type CandidateProfile struct {
	UID               string    `json:"uid"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone,omitempty"`
	Headline          string    `json:"headline,omitempty"`
	Location          string    `json:"location,omitempty"`
	Skills            []string  `json:"skills"`
	Domain            string    `json:"domain,omitempty"`
	ExperienceYears   float64   `json:"experienceYears"`
	CompletedCourses  []string  `json:"completedCourses,omitempty"`
	EnrolledCourses   []string  `json:"enrolledCourses,omitempty"`
	Education         []string  `json:"education,omitempty"`
	Experience        []string  `json:"experience,omitempty"`
	Projects          []string  `json:"projects,omitempty"`
	Certificates      []string  `json:"certificates,omitempty"`
	SkillScore        float64   `json:"skillScore"`
	AggregateScore    float64   `json:"aggregateScore"`
	ResumeURL         string    `json:"resumeUrl,omitempty"`
	VisibleToPartners bool      `json:"visibleToPartners"`
	CreatedAt         time.Time `json:"createdAt"`
}

// CandidateSummary is the disclosure allow-list returned to partners.
type CandidateSummary struct {
	UID              string    `json:"uid"`
	Name             string    `json:"name"`
	Headline         string    `json:"headline,omitempty"`
	Location         string    `json:"location,omitempty"`
	Domain           string    `json:"domain,omitempty"`
	Skills           []string  `json:"skills"`
	ExperienceYears  float64   `json:"experienceYears"`
	CompletedCourses []string  `json:"completedCourses,omitempty"`
	EnrolledCourses  []string  `json:"enrolledCourses,omitempty"`
	SkillScore       float64   `json:"skillScore"`
	AggregateScore   float64   `json:"aggregateScore"`
	HasResume        bool      `json:"hasResume"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (c *CandidateProfile) Summary() CandidateSummary {
	return CandidateSummary{
		UID:              c.UID,
		Name:             c.Name,
		Headline:         c.Headline,
		Location:         c.Location,
		Domain:           c.Domain,
		Skills:           append([]string(nil), c.Skills...),
		ExperienceYears:  c.ExperienceYears,
		CompletedCourses: append([]string(nil), c.CompletedCourses...),
		EnrolledCourses:  append([]string(nil), c.EnrolledCourses...),
		SkillScore:       c.SkillScore,
		AggregateScore:   c.AggregateScore,
		HasResume:        c.ResumeURL != "",
		CreatedAt:        c.CreatedAt,
	}
}

// Snapshot copies the fields frozen into an application at submit time.
func (c *CandidateProfile) Snapshot() ProfileSnapshot {
	return ProfileSnapshot{
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Skills:       append([]string(nil), c.Skills...),
		Education:    append([]string(nil), c.Education...),
		Experience:   append([]string(nil), c.Experience...),
		Projects:     append([]string(nil), c.Projects...),
		Certificates: append([]string(nil), c.Certificates...),
		Score:        c.AggregateScore,
	}
}

type ShortlistEntry struct {
	PartnerUID string    `json:"partnerUid"`
	StudentUID string    `json:"studentUid"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ShortlistedCandidate joins a shortlist entry with the candidate's current summary.
type ShortlistedCandidate struct {
	ShortlistEntry
	Available bool              `json:"available"`
	Candidate *CandidateSummary `json:"candidate,omitempty"`
}

type ResumeAccessLog struct {
	ID         string    `json:"id"`
	PartnerUID string    `json:"partnerUid"`
	StudentUID string    `json:"studentUid"`
	Granted    bool      `json:"granted"`
	AccessedAt time.Time `json:"accessedAt"`
}
