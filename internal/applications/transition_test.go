package applications

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

func TestApplyTransitionRejectsUnknownStatus(t *testing.T) {
	_, err := ApplyTransition(Record{Status: StatusSaved}, "ghosted", time.Now())
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestTransitionScenario(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	t1 := t0.Add(24 * time.Hour)
	t2 := t1.Add(24 * time.Hour)
	t3 := t2.Add(24 * time.Hour)
	t4 := t3.Add(24 * time.Hour)

	rec := Record{ID: "r1", Status: StatusSaved, CreatedAt: t0, UpdatedAt: t0, Notes: "keep me"}

	step := func(status string, at time.Time) {
		t.Helper()
		ch, err := ApplyTransition(rec, status, at)
		if err != nil {
			t.Fatalf("transition to %s: %v", status, err)
		}
		rec = ch.Merge(rec)
	}

	step("applied", t1)
	if rec.AppliedDate == nil || !rec.AppliedDate.Equal(t1) {
		t.Fatalf("expected appliedDate=%v, got %v", t1, rec.AppliedDate)
	}
	if rec.ResponseDate != nil {
		t.Fatalf("expected responseDate unset, got %v", rec.ResponseDate)
	}

	step("interviewing", t2)
	if !rec.AppliedDate.Equal(t1) || rec.ResponseDate != nil {
		t.Fatalf("dates changed on interviewing: %v %v", rec.AppliedDate, rec.ResponseDate)
	}

	step("offer", t3)
	if rec.ResponseDate == nil || !rec.ResponseDate.Equal(t3) {
		t.Fatalf("expected responseDate=%v, got %v", t3, rec.ResponseDate)
	}

	step("interviewing", t4)
	if !rec.AppliedDate.Equal(t1) || !rec.ResponseDate.Equal(t3) {
		t.Fatalf("derived dates changed: applied=%v response=%v", rec.AppliedDate, rec.ResponseDate)
	}
	if !rec.UpdatedAt.Equal(t4) {
		t.Fatalf("expected updatedAt=%v, got %v", t4, rec.UpdatedAt)
	}
	if rec.Status != StatusInterviewing {
		t.Fatalf("expected interviewing, got %s", rec.Status)
	}
	if rec.Notes != "keep me" || !rec.CreatedAt.Equal(t0) {
		t.Fatalf("unrelated fields changed: %+v", rec)
	}
}

func TestTransitionAlwaysTouchesUpdatedAt(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	ch, err := ApplyTransition(Record{Status: StatusSaved}, "saved", now)
	if err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if !ch.UpdatedAt.Equal(now) {
		t.Fatalf("expected updatedAt=%v, got %v", now, ch.UpdatedAt)
	}
	if ch.AppliedDate != nil || ch.ResponseDate != nil {
		t.Fatalf("no derived dates expected for saved->saved")
	}
}

func TestTransitionBackwardsIsAllowed(t *testing.T) {
	applied := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	rec := Record{Status: StatusOffer, AppliedDate: &applied}
	ch, err := ApplyTransition(rec, "saved", applied.Add(time.Hour))
	if err != nil {
		t.Fatalf("offer->saved should be allowed: %v", err)
	}
	if got := ch.Merge(rec); got.Status != StatusSaved {
		t.Fatalf("expected saved, got %s", got.Status)
	}
}

func TestTransitionRejectedToOfferKeepsResponseDate(t *testing.T) {
	first := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	rec := Record{Status: StatusRejected, ResponseDate: &first}
	ch, err := ApplyTransition(rec, "offer", first.Add(48*time.Hour))
	if err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if ch.ResponseDate != nil {
		t.Fatalf("responseDate must not be restamped")
	}
}

// Random walks over the pipeline: the derived dates equal the time of the
// first entry into their statuses and never move afterwards.
func TestTransitionDerivedDatesAreFirstEntryOnly(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for walk := 0; walk < 200; walk++ {
		rec := Record{Status: StatusSaved, CreatedAt: base, UpdatedAt: base}
		var firstApplied, firstResponse *time.Time

		for step := 1; step <= 12; step++ {
			now := base.Add(time.Duration(walk*100+step) * time.Hour)
			next := Statuses[rng.Intn(len(Statuses))]
			ch, err := ApplyTransition(rec, string(next), now)
			if err != nil {
				t.Fatalf("walk %d step %d: %v", walk, step, err)
			}
			rec = ch.Merge(rec)

			if next == StatusApplied && firstApplied == nil {
				at := now
				firstApplied = &at
			}
			if next.IsResponse() && firstResponse == nil {
				at := now
				firstResponse = &at
			}

			if !sameTime(rec.AppliedDate, firstApplied) {
				t.Fatalf("walk %d step %d: appliedDate=%v want %v", walk, step, rec.AppliedDate, firstApplied)
			}
			if !sameTime(rec.ResponseDate, firstResponse) {
				t.Fatalf("walk %d step %d: responseDate=%v want %v", walk, step, rec.ResponseDate, firstResponse)
			}
			if !rec.UpdatedAt.Equal(now) {
				t.Fatalf("walk %d step %d: updatedAt not refreshed", walk, step)
			}
		}
	}
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
