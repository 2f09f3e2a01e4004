// Package report turns stored yearly responses into dashboards, chart images and PDF documents.
package report

import (
	"math"    // Rounding
	"strconv" // Number formatting

	"esg_portal/internal/domain" // Domain models
)

// Metric describes one derived ratio for display
type Metric struct {
	Key   string                               // URL and JSON key
	Label string                               // Human readable name
	Unit  string                               // Display unit
	Value func(domain.DerivedMetrics) *float64 // Accessor
}

// Metrics is the display order of the derived ratios
var Metrics = []Metric{
	{"carbonIntensity", "Carbon intensity", "T CO2e / revenue", func(d domain.DerivedMetrics) *float64 { return d.CarbonIntensity }},
	{"renewableElectricityRatio", "Renewable electricity ratio", "%", func(d domain.DerivedMetrics) *float64 { return d.RenewableElectricityRatio }},
	{"diversityRatio", "Diversity ratio", "%", func(d domain.DerivedMetrics) *float64 { return d.DiversityRatio }},
	{"communitySpendRatio", "Community spend ratio", "%", func(d domain.DerivedMetrics) *float64 { return d.CommunitySpendRatio }},
}

// MetricByKey finds a metric by its key
func MetricByKey(key string) (Metric, bool) {
	for _, m := range Metrics {
		if m.Key == key {
			return m, true
		}
	}
	return Metric{}, false
}

// rawField describes one questionnaire answer for the PDF tables
type rawField struct {
	label string
	unit  string
	value func(domain.RawInputs) *float64
}

var rawFields = []rawField{
	{"Total electricity consumption", "kWh", func(r domain.RawInputs) *float64 { return r.TotalElectricityConsumption }},
	{"Renewable electricity consumption", "kWh", func(r domain.RawInputs) *float64 { return r.RenewableElectricityConsumption }},
	{"Total fuel consumption", "liters", func(r domain.RawInputs) *float64 { return r.TotalFuelConsumption }},
	{"Carbon emissions", "T CO2e", func(r domain.RawInputs) *float64 { return r.CarbonEmissions }},
	{"Total employees", "", func(r domain.RawInputs) *float64 { return r.TotalEmployees }},
	{"Female employees", "", func(r domain.RawInputs) *float64 { return r.FemaleEmployees }},
	{"Average training hours", "hrs/employee/yr", func(r domain.RawInputs) *float64 { return r.AverageTrainingHours }},
	{"Community investment", "", func(r domain.RawInputs) *float64 { return r.CommunityInvestment }},
	{"Independent board members", "%", func(r domain.RawInputs) *float64 { return r.IndependentBoardMembers }},
	{"Total revenue", "", func(r domain.RawInputs) *float64 { return r.TotalRevenue }},
}

// FormatValue renders v with at most four decimals, "n/a" when nil
func FormatValue(v *float64, unit string) string {
	if v == nil {
		return "n/a"
	}
	s := strconv.FormatFloat(math.Round(*v*1e4)/1e4, 'f', -1, 64)
	if unit != "" {
		s += " " + unit
	}
	return s
}

// formatBool renders a tri-state answer
func formatBool(v *bool) string {
	switch {
	case v == nil:
		return "n/a"
	case *v:
		return "Yes"
	default:
		return "No"
	}
}
