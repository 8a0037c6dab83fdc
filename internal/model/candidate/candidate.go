package candidate

import (
	"strings"
	"time"
)

// Status is the selection state of a candidate.
type Status string

const (
	StatusPending  Status = "pending"
	StatusSelected Status = "selected"
	StatusRejected Status = "rejected"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusPending, StatusSelected, StatusRejected}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSelected, StatusRejected:
		return true
	}
	return false
}

// UnknownDomain is used for emails without a usable domain part.
const UnknownDomain = "unknown"

// Candidate is a single job-application submission.
type Candidate struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Domain    string    `json:"domain"`
	AppliedAt string    `json:"appliedAt"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// ExtractDomain returns the segment after the first '@' up to any following '@'.
func ExtractDomain(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) < 2 || parts[1] == "" {
		return UnknownDomain
	}
	return parts[1]
}
