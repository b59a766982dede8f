package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// scanString accepts the string forms pgx and database/sql hand to Scan.
func scanString(value interface{}, typeName string) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("failed to scan %s: value is not string or []byte", typeName)
	}
}

// --- Role Enum ---
type Role string

const (
	RoleStudent Role = "student"
	RolePartner Role = "partner"
	RoleAdmin   Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RolePartner, RoleAdmin:
		return true
	}
	return false
}

// Scan implements the sql.Scanner interface for Role
func (r *Role) Scan(value interface{}) error {
	s, err := scanString(value, "Role")
	if err != nil {
		return err
	}
	v := Role(s)
	if !v.IsValid() {
		return fmt.Errorf("invalid Role value: %s", s)
	}
	*r = v
	return nil
}

// Value implements the driver.Valuer interface for Role
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// --- Verification Status Enum ---
type VerificationStatus string

const (
	VerificationPending   VerificationStatus = "pending"
	VerificationApproved  VerificationStatus = "approved"
	VerificationRejected  VerificationStatus = "rejected"
	VerificationSuspended VerificationStatus = "suspended"
)

func (s VerificationStatus) IsValid() bool {
	switch s {
	case VerificationPending, VerificationApproved, VerificationRejected, VerificationSuspended:
		return true
	}
	return false
}

// Scan implements the sql.Scanner interface for VerificationStatus
func (s *VerificationStatus) Scan(value interface{}) error {
	str, err := scanString(value, "VerificationStatus")
	if err != nil {
		return err
	}
	v := VerificationStatus(str)
	if !v.IsValid() {
		return fmt.Errorf("invalid VerificationStatus value: %s", str)
	}
	*s = v
	return nil
}

// Value implements the driver.Valuer interface for VerificationStatus
func (s VerificationStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// --- Job Status Enum ---
type JobStatus string

const (
	JobStatusDraft  JobStatus = "draft"
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
	JobStatusFilled JobStatus = "filled"
)

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusDraft, JobStatusActive, JobStatusClosed, JobStatusFilled:
		return true
	}
	return false
}

// Scan implements the sql.Scanner interface for JobStatus
func (s *JobStatus) Scan(value interface{}) error {
	str, err := scanString(value, "JobStatus")
	if err != nil {
		return err
	}
	v := JobStatus(str)
	if !v.IsValid() {
		return fmt.Errorf("invalid JobStatus value: %s", str)
	}
	*s = v
	return nil
}

// Value implements the driver.Valuer interface for JobStatus
func (s JobStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// --- Visibility Enum ---
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) IsValid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Scan implements the sql.Scanner interface for Visibility
func (v *Visibility) Scan(value interface{}) error {
	str, err := scanString(value, "Visibility")
	if err != nil {
		return err
	}
	vis := Visibility(str)
	if !vis.IsValid() {
		return fmt.Errorf("invalid Visibility value: %s", str)
	}
	*v = vis
	return nil
}

// Value implements the driver.Valuer interface for Visibility
func (v Visibility) Value() (driver.Value, error) {
	return string(v), nil
}

// --- Application Status Enum ---
type ApplicationStatus string

const (
	ApplicationApplied            ApplicationStatus = "applied"
	ApplicationReviewed           ApplicationStatus = "reviewed"
	ApplicationShortlisted        ApplicationStatus = "shortlisted"
	ApplicationInterviewScheduled ApplicationStatus = "interview-scheduled"
	ApplicationSelected           ApplicationStatus = "selected"
	ApplicationRejected           ApplicationStatus = "rejected"
)

// applicationStage orders the forward path of the pipeline. Rejected sits outside it.
var applicationStage = map[ApplicationStatus]int{
	ApplicationApplied:            0,
	ApplicationReviewed:           1,
	ApplicationShortlisted:        2,
	ApplicationInterviewScheduled: 3,
	ApplicationSelected:           4,
}

func (s ApplicationStatus) IsValid() bool {
	if s == ApplicationRejected {
		return true
	}
	_, ok := applicationStage[s]
	return ok
}

// IsFinal reports whether no further transition is possible.
func (s ApplicationStatus) IsFinal() bool {
	return s == ApplicationSelected || s == ApplicationRejected
}

// CanTransitionTo allows forward moves (skipping stages is fine) and rejection
// from any non-final status.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if s.IsFinal() || !next.IsValid() {
		return false
	}
	if next == ApplicationRejected {
		return true
	}
	return applicationStage[next] > applicationStage[s]
}

// ParseApplicationStatus normalizes client input ("Interview_Scheduled" and friends).
func ParseApplicationStatus(raw string) (ApplicationStatus, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	s := ApplicationStatus(normalized)
	return s, s.IsValid()
}

// Scan implements the sql.Scanner interface for ApplicationStatus
func (s *ApplicationStatus) Scan(value interface{}) error {
	str, err := scanString(value, "ApplicationStatus")
	if err != nil {
		return err
	}
	v := ApplicationStatus(str)
	if !v.IsValid() {
		return fmt.Errorf("invalid ApplicationStatus value: %s", str)
	}
	*s = v
	return nil
}

// Value implements the driver.Valuer interface for ApplicationStatus
func (s ApplicationStatus) Value() (driver.Value, error) {
	return string(s), nil
}
