package jobs

import "time"

// JobRequest is the body accepted by create and update.
type JobRequest struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Salary      string   `json:"salary"`
	Type        string   `json:"type"`
	Experience  string   `json:"experience"`
	Skills      []string `json:"skills"`
	Description string   `json:"description"`
}

func (r JobRequest) toInput() Input {
	return Input{
		Title:       r.Title,
		Company:     r.Company,
		Location:    r.Location,
		Salary:      r.Salary,
		Type:        r.Type,
		Experience:  r.Experience,
		Skills:      r.Skills,
		Description: r.Description,
	}
}

// JobResponse is the outward-facing representation of a job posting.
type JobResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Salary      string    `json:"salary"`
	Type        string    `json:"type"`
	Experience  string    `json:"experience"`
	Skills      []string  `json:"skills"`
	Description string    `json:"description"`
	PostedBy    string    `json:"postedBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toResponse(job Job) JobResponse {
	skills := job.Skills
	if skills == nil {
		skills = []string{}
	}
	return JobResponse{
		ID:          job.ID,
		Title:       job.Title,
		Company:     job.Company,
		Location:    job.Location,
		Salary:      job.Salary,
		Type:        job.Type,
		Experience:  job.Experience,
		Skills:      skills,
		Description: job.Description,
		PostedBy:    job.PostedBy,
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
	}
}
