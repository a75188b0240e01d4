package applications

import "time"

// Changes is the field set produced by a mutation. Nil pointers leave the stored value alone.
type Changes struct {
	Status            *Status
	AppliedDate       *time.Time
	ResponseDate      *time.Time
	Notes             *string
	InterviewDate     *string
	InterviewTime     *string
	InterviewType     *string
	InterviewLocation *string
	UpdatedAt         time.Time
}

// ApplyTransition computes the changes for moving rec to the requested status.
// Any status may follow any other. appliedDate and responseDate are stamped at
// most once and never overwritten; updatedAt is always set.
func ApplyTransition(rec Record, requested string, now time.Time) (Changes, error) {
	next, err := ParseStatus(requested)
	if err != nil {
		return Changes{}, err
	}

	ch := Changes{Status: &next, UpdatedAt: now}
	if next == StatusApplied && rec.Status != StatusApplied && rec.AppliedDate == nil {
		stamp := now
		ch.AppliedDate = &stamp
	}
	if next.IsResponse() && !rec.Status.IsResponse() && rec.ResponseDate == nil {
		stamp := now
		ch.ResponseDate = &stamp
	}
	return ch, nil
}

// Merge returns rec with ch applied.
func (ch Changes) Merge(rec Record) Record {
	if ch.Status != nil {
		rec.Status = *ch.Status
	}
	if ch.AppliedDate != nil && rec.AppliedDate == nil {
		t := *ch.AppliedDate
		rec.AppliedDate = &t
	}
	if ch.ResponseDate != nil && rec.ResponseDate == nil {
		t := *ch.ResponseDate
		rec.ResponseDate = &t
	}
	if ch.Notes != nil {
		rec.Notes = *ch.Notes
	}
	if ch.InterviewDate != nil {
		rec.InterviewDate = *ch.InterviewDate
	}
	if ch.InterviewTime != nil {
		rec.InterviewTime = *ch.InterviewTime
	}
	if ch.InterviewType != nil {
		rec.InterviewType = *ch.InterviewType
	}
	if ch.InterviewLocation != nil {
		rec.InterviewLocation = *ch.InterviewLocation
	}
	if !ch.UpdatedAt.IsZero() {
		rec.UpdatedAt = ch.UpdatedAt
	}
	return rec
}
