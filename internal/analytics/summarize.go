package analytics

import (
	"math"
	"sort"
	"time"

	"jobtracker-backend/internal/applications"
)

const (
	trendMonths  = 6
	topCompanies = 5
)

// Metrics are the headline numbers of a summary.
type Metrics struct {
	TotalApplications   int  `json:"totalApplications"`
	Saved               int  `json:"saved"`
	Applied             int  `json:"applied"`
	Interviewing        int  `json:"interviewing"`
	Offers              int  `json:"offers"`
	Rejected            int  `json:"rejected"`
	InterviewRate       int  `json:"interviewRate"`
	OfferRate           int  `json:"offerRate"`
	AvgResponseTimeDays int  `json:"avgResponseTime"`
	AvgSalary           *int `json:"avgSalary"`
}

// StatusCount is one slice of the status distribution.
type StatusCount struct {
	Status applications.Status `json:"status"`
	Count  int                 `json:"count"`
}

// MonthBucket is one calendar month of the trend.
type MonthBucket struct {
	Month        string `json:"month"`
	Label        string `json:"label"`
	Applications int    `json:"applications"`
	Interviews   int    `json:"interviews"`
	Offers       int    `json:"offers"`
}

// CompanyStat is a per-company rollup.
type CompanyStat struct {
	Company      string `json:"company"`
	Applications int    `json:"applications"`
	Interviews   int    `json:"interviews"`
	Offers       int    `json:"offers"`
	SuccessRate  int    `json:"successRate"`
}

// Summary is the full analytics payload.
type Summary struct {
	Range              string        `json:"range"`
	Metrics            Metrics       `json:"metrics"`
	StatusDistribution []StatusCount `json:"statusDistribution"`
	MonthlyData        []MonthBucket `json:"monthlyData"`
	TopCompanies       []CompanyStat `json:"topCompanies"`
}

// Summarize aggregates the records created inside window. The result does not
// depend on the order of records.
func Summarize(records []applications.JoinedRecord, window DateRange, now time.Time) Summary {
	inWindow := make([]applications.JoinedRecord, 0, len(records))
	for _, rec := range records {
		if window.Contains(rec.CreatedAt) {
			inWindow = append(inWindow, rec)
		}
	}
	sort.Slice(inWindow, func(i, j int) bool {
		if inWindow[i].CreatedAt.Equal(inWindow[j].CreatedAt) {
			return inWindow[i].ID < inWindow[j].ID
		}
		return inWindow[i].CreatedAt.Before(inWindow[j].CreatedAt)
	})

	return Summary{
		Range:              window.Tag,
		Metrics:            computeMetrics(inWindow),
		StatusDistribution: statusDistribution(inWindow),
		MonthlyData:        monthlyTrend(inWindow, now),
		TopCompanies:       rankCompanies(inWindow),
	}
}

func computeMetrics(records []applications.JoinedRecord) Metrics {
	m := Metrics{TotalApplications: len(records)}
	var responseDays float64
	var responded int
	for _, rec := range records {
		switch rec.Status {
		case applications.StatusSaved:
			m.Saved++
		case applications.StatusApplied:
			m.Applied++
		case applications.StatusInterviewing:
			m.Interviewing++
		case applications.StatusOffer:
			m.Offers++
		case applications.StatusRejected:
			m.Rejected++
		}
		if rec.AppliedDate != nil && rec.ResponseDate != nil {
			responseDays += rec.ResponseDate.Sub(*rec.AppliedDate).Hours() / 24
			responded++
		}
	}
	m.InterviewRate = percent(m.Interviewing, m.TotalApplications)
	m.OfferRate = percent(m.Offers, m.TotalApplications)
	if responded > 0 {
		m.AvgResponseTimeDays = int(math.Round(responseDays / float64(responded)))
	}
	m.AvgSalary = averageSalary(records)
	return m
}

// averageSalary averages over distinct jobs; nil when no job has a parseable salary.
func averageSalary(records []applications.JoinedRecord) *int {
	seen := make(map[string]struct{})
	var sum float64
	var n int
	for _, rec := range records {
		if rec.Job == nil {
			continue
		}
		if _, dup := seen[rec.Job.ID]; dup {
			continue
		}
		seen[rec.Job.ID] = struct{}{}
		if v, ok := ParseSalary(rec.Job.Salary); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := int(math.Round(sum / float64(n)))
	return &avg
}

func statusDistribution(records []applications.JoinedRecord) []StatusCount {
	counts := make(map[applications.Status]int, len(applications.Statuses))
	for _, rec := range records {
		counts[rec.Status]++
	}
	out := make([]StatusCount, 0, len(applications.Statuses))
	for _, s := range applications.Statuses {
		out = append(out, StatusCount{Status: s, Count: counts[s]})
	}
	return out
}

// monthlyTrend buckets the trailing months ending with now's month. Applications
// count by createdAt; interviews and offers count records currently in that
// status by updatedAt.
func monthlyTrend(records []applications.JoinedRecord, now time.Time) []MonthBucket {
	loc := now.Location()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	buckets := make([]MonthBucket, trendMonths)
	index := make(map[string]int, trendMonths)
	for i := 0; i < trendMonths; i++ {
		month := current.AddDate(0, i-(trendMonths-1), 0)
		key := month.Format("2006-01")
		buckets[i] = MonthBucket{Month: key, Label: month.Format("Jan")}
		index[key] = i
	}

	for _, rec := range records {
		if i, ok := index[rec.CreatedAt.In(loc).Format("2006-01")]; ok {
			buckets[i].Applications++
		}
		i, ok := index[rec.UpdatedAt.In(loc).Format("2006-01")]
		if !ok {
			continue
		}
		switch rec.Status {
		case applications.StatusInterviewing:
			buckets[i].Interviews++
		case applications.StatusOffer:
			buckets[i].Offers++
		}
	}
	return buckets
}

// rankCompanies expects records ordered by createdAt then id so that ties keep
// first-appearance order.
func rankCompanies(records []applications.JoinedRecord) []CompanyStat {
	var stats []CompanyStat
	index := make(map[string]int)
	for _, rec := range records {
		if rec.Job == nil {
			continue
		}
		i, ok := index[rec.Job.Company]
		if !ok {
			i = len(stats)
			index[rec.Job.Company] = i
			stats = append(stats, CompanyStat{Company: rec.Job.Company})
		}
		stats[i].Applications++
		switch rec.Status {
		case applications.StatusInterviewing:
			stats[i].Interviews++
		case applications.StatusOffer:
			stats[i].Offers++
		}
	}
	for i := range stats {
		stats[i].SuccessRate = percent(stats[i].Offers, stats[i].Applications)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Applications > stats[j].Applications
	})
	if len(stats) > topCompanies {
		stats = stats[:topCompanies]
	}
	if stats == nil {
		stats = []CompanyStat{}
	}
	return stats
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}
