package models

// RoleType defines the user role type
type RoleType string

const (
	RoleCandidate RoleType = "CANDIDATE"
	RoleRecruiter RoleType = "RECRUITER"
)

// IsValid reports whether the role is one the application knows
func (r RoleType) IsValid() bool {
	return r == RoleCandidate || r == RoleRecruiter
}

// Label is the human readable role name used in templates
func (r RoleType) Label() string {
	switch r {
	case RoleCandidate:
		return "Candidate"
	case RoleRecruiter:
		return "Recruiter"
	default:
		return string(r)
	}
}
