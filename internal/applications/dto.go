package applications

import "time"

// CreateRequest is the body of POST /tracker.
type CreateRequest struct {
	JobID  string `json:"jobId"`
	Status string `json:"status"`
}

// UpdateRequest is the body of PUT /tracker/:id. Absent fields are left untouched.
type UpdateRequest struct {
	Status            *string `json:"status"`
	InterviewDate     *string `json:"interviewDate"`
	InterviewTime     *string `json:"interviewTime"`
	InterviewType     *string `json:"interviewType"`
	InterviewLocation *string `json:"interviewLocation"`
	Notes             *string `json:"notes"`
}

func (r UpdateRequest) toPatch() Patch {
	return Patch{
		Status:            r.Status,
		Notes:             r.Notes,
		InterviewDate:     r.InterviewDate,
		InterviewTime:     r.InterviewTime,
		InterviewType:     r.InterviewType,
		InterviewLocation: r.InterviewLocation,
	}
}

// JobSummaryResponse is the job subset embedded in a record.
type JobSummaryResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Salary   string `json:"salary"`
	Type     string `json:"type"`
}

// RecordResponse is the outward-facing representation of an application record.
type RecordResponse struct {
	ID                string              `json:"id"`
	UserID            string              `json:"userId"`
	JobID             string              `json:"jobId"`
	Status            Status              `json:"status"`
	Notes             string              `json:"notes,omitempty"`
	InterviewDate     string              `json:"interviewDate,omitempty"`
	InterviewTime     string              `json:"interviewTime,omitempty"`
	InterviewType     string              `json:"interviewType,omitempty"`
	InterviewLocation string              `json:"interviewLocation,omitempty"`
	AppliedDate       *time.Time          `json:"appliedDate,omitempty"`
	ResponseDate      *time.Time          `json:"responseDate,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
	Job               *JobSummaryResponse `json:"job"`
}

// BoardResponse is GET /tracker's payload.
type BoardResponse struct {
	Saved        []RecordResponse `json:"saved"`
	Applied      []RecordResponse `json:"applied"`
	Interviewing []RecordResponse `json:"interviewing"`
	Offer        []RecordResponse `json:"offer"`
	Rejected     []RecordResponse `json:"rejected"`
}

// ToResponse renders a joined record.
func ToResponse(jr JoinedRecord) RecordResponse {
	resp := RecordResponse{
		ID:                jr.ID,
		UserID:            jr.UserID,
		JobID:             jr.JobID,
		Status:            jr.Status,
		Notes:             jr.Notes,
		InterviewDate:     jr.InterviewDate,
		InterviewTime:     jr.InterviewTime,
		InterviewType:     jr.InterviewType,
		InterviewLocation: jr.InterviewLocation,
		AppliedDate:       jr.AppliedDate,
		ResponseDate:      jr.ResponseDate,
		CreatedAt:         jr.CreatedAt,
		UpdatedAt:         jr.UpdatedAt,
	}
	if jr.Job != nil {
		resp.Job = &JobSummaryResponse{
			ID:       jr.Job.ID,
			Title:    jr.Job.Title,
			Company:  jr.Job.Company,
			Location: jr.Job.Location,
			Salary:   jr.Job.Salary,
			Type:     jr.Job.Type,
		}
	}
	return resp
}

func toResponses(in []JoinedRecord) []RecordResponse {
	out := make([]RecordResponse, 0, len(in))
	for _, jr := range in {
		out = append(out, ToResponse(jr))
	}
	return out
}

func toBoardResponse(b Board) BoardResponse {
	return BoardResponse{
		Saved:        toResponses(b.Saved),
		Applied:      toResponses(b.Applied),
		Interviewing: toResponses(b.Interviewing),
		Offer:        toResponses(b.Offer),
		Rejected:     toResponses(b.Rejected),
	}
}
