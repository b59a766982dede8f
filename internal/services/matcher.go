package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"internhub-api/internal/models"
	"internhub-api/internal/transport/dto"
)

// Candidate sort orders.
const (
	SortRecent     = "recent"
	SortSkillScore = "skillScore"
	SortExperience = "experience"
)

// ExperienceBracket is a half-open [Min, Max) range of years. Min == Max
// matches that exact value.
type ExperienceBracket struct {
	Min, Max float64
}

var experienceBrackets = map[string]ExperienceBracket{
	"fresher": {0, 0},
	"0-1":     {0, 1},
	"1-2":     {1, 2},
	"2-5":     {2, 5},
	"5+":      {5, math.Inf(1)},
}

func (b ExperienceBracket) contains(years float64) bool {
	if b.Min == b.Max {
		return years == b.Min
	}
	return years >= b.Min && years < b.Max
}

// CandidateQuery is a parsed discovery filter.
type CandidateQuery struct {
	Skills     []string
	Domain     string
	Experience *ExperienceBracket
	Course     string
	MinScore   *float64
	Search     string
	SortBy     string
}

// ParseCandidateQuery validates the raw discovery filters.
func ParseCandidateQuery(req *dto.DiscoverCandidatesRequest) (CandidateQuery, error) {
	q := CandidateQuery{
		Skills:   splitList(req.Skills),
		Domain:   strings.TrimSpace(req.Domain),
		Course:   strings.TrimSpace(req.Course),
		MinScore: req.MinScore,
		Search:   strings.TrimSpace(req.Search),
		SortBy:   SortRecent,
	}

	if raw := strings.ToLower(strings.TrimSpace(req.Experience)); raw != "" {
		bracket, ok := experienceBrackets[raw]
		if !ok {
			return q, fmt.Errorf("%w: experience must be one of fresher, 0-1, 1-2, 2-5, 5+", ErrInvalidArgument)
		}
		q.Experience = &bracket
	}

	switch req.SortBy {
	case "", SortRecent:
	case SortSkillScore, SortExperience:
		q.SortBy = req.SortBy
	default:
		return q, fmt.Errorf("%w: sortBy must be recent, skillScore or experience", ErrInvalidArgument)
	}
	return q, nil
}

// Matches applies every filter in q to one candidate.
func (q CandidateQuery) Matches(c *models.CandidateProfile) bool {
	if len(q.Skills) > 0 && !intersectsFold(c.Skills, q.Skills) {
		return false
	}
	if q.Domain != "" && !strings.EqualFold(c.Domain, q.Domain) {
		return false
	}
	if q.Experience != nil && !q.Experience.contains(c.ExperienceYears) {
		return false
	}
	if q.Course != "" && !anyContainsFold(c.CompletedCourses, q.Course) {
		return false
	}
	if q.MinScore != nil && c.AggregateScore < *q.MinScore {
		return false
	}
	if q.Search != "" && !containsFold(c.Name, q.Search) && !containsFold(c.Email, q.Search) && !anyContainsFold(c.Skills, q.Search) {
		return false
	}
	return true
}

// MatchCandidates filters pool and orders the result. Ties always fall back to
// uid ascending so equal inputs produce equal pages.
func MatchCandidates(pool []models.CandidateProfile, q CandidateQuery) []models.CandidateProfile {
	out := make([]models.CandidateProfile, 0, len(pool))
	for i := range pool {
		if q.Matches(&pool[i]) {
			out = append(out, pool[i])
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := &out[i], &out[j]
		switch q.SortBy {
		case SortSkillScore:
			if a.SkillScore != b.SkillScore {
				return a.SkillScore > b.SkillScore
			}
		case SortExperience:
			if a.ExperienceYears != b.ExperienceYears {
				return a.ExperienceYears > b.ExperienceYears
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}
		return a.UID < b.UID
	})
	return out
}

func anyContainsFold(items []string, needle string) bool {
	for _, item := range items {
		if containsFold(item, needle) {
			return true
		}
	}
	return false
}
