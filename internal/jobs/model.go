package jobs

import "time"

// Job is a posted job listing. Salary is free text and may hold a range.
type Job struct {
	ID          string
	Title       string
	Company     string
	Location    string
	Salary      string
	Type        string
	Experience  string
	Skills      []string
	Description string
	PostedBy    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Input carries the caller-editable fields of a Job.
type Input struct {
	Title       string
	Company     string
	Location    string
	Salary      string
	Type        string
	Experience  string
	Skills      []string
	Description string
}

// Filter narrows List results. Empty fields match everything.
type Filter struct {
	Search   string
	Type     string
	Location string
	PostedBy string
}
