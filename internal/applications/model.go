package applications

import (
	"strings"
	"time"
)

// Status is the pipeline position of an application.
type Status string

const (
	StatusSaved        Status = "saved"
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusOffer        Status = "offer"
	StatusRejected     Status = "rejected"
)

// Statuses lists every valid status in pipeline order.
var Statuses = []Status{StatusSaved, StatusApplied, StatusInterviewing, StatusOffer, StatusRejected}

// ParseStatus validates a raw status value.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Statuses {
		if s == known {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// IsResponse reports whether the status is an employer response (offer or rejected).
func (s Status) IsResponse() bool {
	return s == StatusOffer || s == StatusRejected
}

// Record is a user's tracked application to one job posting.
type Record struct {
	ID                string
	UserID            string
	JobID             string
	Status            Status
	Notes             string
	InterviewDate     string
	InterviewTime     string
	InterviewType     string
	InterviewLocation string
	AppliedDate       *time.Time
	ResponseDate      *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// JobSummary is the subset of a job posting joined onto records.
type JobSummary struct {
	ID       string
	Title    string
	Company  string
	Location string
	Salary   string
	Type     string
}

// JoinedRecord pairs a record with its job. Job is nil when the posting no longer exists.
type JoinedRecord struct {
	Record
	Job *JobSummary
}

// Board is the list view partitioned by status.
type Board struct {
	Saved        []JoinedRecord
	Applied      []JoinedRecord
	Interviewing []JoinedRecord
	Offer        []JoinedRecord
	Rejected     []JoinedRecord
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Status            *string
	Notes             *string
	InterviewDate     *string
	InterviewTime     *string
	InterviewType     *string
	InterviewLocation *string
}

func (p Patch) empty() bool {
	return p.Status == nil && p.Notes == nil && p.InterviewDate == nil &&
		p.InterviewTime == nil && p.InterviewType == nil && p.InterviewLocation == nil
}
