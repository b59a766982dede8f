// internal/transport/dto/student_dto.go
package dto

// DiscoverCandidatesRequest holds candidate discovery filters. Skills is comma separated.
type DiscoverCandidatesRequest struct {
	PartnerUID string   `form:"-"`
	Skills     string   `form:"skills"`
	Domain     string   `form:"domain"`
	Experience string   `form:"experience"`
	Course     string   `form:"course"`
	MinScore   *float64 `form:"minScore" validate:"omitempty,gte=0"`
	Search     string   `form:"search" validate:"omitempty,max=200"`
	SortBy     string   `form:"sortBy"`
	Pagination
}

type ShortlistRequest struct {
	PartnerUID string `json:"-"`
	StudentUID string `json:"studentUid" validate:"required,max=128"`
	Notes      string `json:"notes" validate:"omitempty,max=1000"`
}

type ResumeResponse struct {
	StudentUID string `json:"studentUid"`
	ResumeURL  string `json:"resumeUrl"`
}
