package report

import (
	"sort" // Ordering years
	"time" // Current year

	"esg_portal/internal/domain" // Domain models
)

// Point is one year's value of a metric
type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Dashboard summarizes a user's stored years
type Dashboard struct {
	Years         []int                  `json:"years"`         // Stored years, ascending
	EditableYears []int                  `json:"editableYears"` // Never empty
	Latest        *domain.YearlyResponse `json:"latest"`        // Most recent year, nil when none
	Series        map[string][]Point     `json:"series"`        // Metric key to points, nil values omitted
	Changes       map[string]*float64    `json:"changes"`       // Latest minus previous year, nil when not comparable
}

// SortedYears returns the keys of records in ascending order
func SortedYears(records map[int]domain.YearlyResponse) []int {
	years := make([]int, 0, len(records))
	for y := range records {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Series collects the non-nil values of m in year order
func Series(records map[int]domain.YearlyResponse, m Metric) []Point {
	points := []Point{}
	for _, y := range SortedYears(records) {
		if v := m.Value(records[y].DerivedMetrics); v != nil {
			points = append(points, Point{Year: y, Value: *v})
		}
	}
	return points
}

// EditableYears lists the years the questionnaire form should show.
// The form always keeps at least one year, defaulting to the current one.
func EditableYears(records map[int]domain.YearlyResponse, now time.Time) []int {
	if len(records) == 0 {
		return []int{now.Year()}
	}
	return SortedYears(records)
}

// BuildDashboard assembles the dashboard view of records
func BuildDashboard(records map[int]domain.YearlyResponse, now time.Time) Dashboard {
	years := SortedYears(records)
	d := Dashboard{
		Years:         years,
		EditableYears: EditableYears(records, now),
		Series:        make(map[string][]Point, len(Metrics)),
		Changes:       make(map[string]*float64, len(Metrics)),
	}
	if len(years) > 0 {
		latest := records[years[len(years)-1]]
		d.Latest = &latest
	}
	for _, m := range Metrics {
		d.Series[m.Key] = Series(records, m)
		d.Changes[m.Key] = nil
		if len(years) < 2 {
			continue
		}
		cur := m.Value(records[years[len(years)-1]].DerivedMetrics)
		prev := m.Value(records[years[len(years)-2]].DerivedMetrics)
		if cur != nil && prev != nil {
			change := *cur - *prev
			d.Changes[m.Key] = &change
		}
	}
	return d
}
