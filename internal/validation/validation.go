// Package validation checks a year's raw answers before they are stored.
package validation

import (
	"math"    // Integral checks
	"strings" // Joining messages

	"esg_portal/internal/domain" // Domain models
)

// Violation is a single failed rule on one field
type Violation struct {
	Field   string `json:"field"`   // JSON name of the offending field
	Message string `json:"message"` // Human readable message
}

// Violations is the full list of rules a record failed
type Violations []Violation

// Error implements error so callers can pass the list around as one value
func (v Violations) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Field + ": " + e.Message
	}
	return strings.Join(msgs, "; ")
}

// fieldRule applies check to a single numeric field; a nil value is reported by the required rule only
type fieldRule struct {
	field   string
	value   func(domain.RawInputs) *float64
	check   func(float64) bool
	message string
}

// crossRule relates two numeric fields; skipped when either is nil
type crossRule struct {
	field   string
	left    func(domain.RawInputs) *float64
	right   func(domain.RawInputs) *float64
	check   func(l, r float64) bool
	message string
}

// Field accessors
var (
	totalElectricity = func(r domain.RawInputs) *float64 { return r.TotalElectricityConsumption }
	renewable        = func(r domain.RawInputs) *float64 { return r.RenewableElectricityConsumption }
	fuel             = func(r domain.RawInputs) *float64 { return r.TotalFuelConsumption }
	emissions        = func(r domain.RawInputs) *float64 { return r.CarbonEmissions }
	totalEmployees   = func(r domain.RawInputs) *float64 { return r.TotalEmployees }
	femaleEmployees  = func(r domain.RawInputs) *float64 { return r.FemaleEmployees }
	trainingHours    = func(r domain.RawInputs) *float64 { return r.AverageTrainingHours }
	community        = func(r domain.RawInputs) *float64 { return r.CommunityInvestment }
	board            = func(r domain.RawInputs) *float64 { return r.IndependentBoardMembers }
	revenue          = func(r domain.RawInputs) *float64 { return r.TotalRevenue }
)

// Predicates
var (
	nonNegative = func(v float64) bool { return v >= 0 }
	positive    = func(v float64) bool { return v > 0 }
	whole       = func(v float64) bool { return v == math.Trunc(v) }
	atMost      = func(l, r float64) bool { return l <= r }
)

// required lists every numeric field that must be supplied, in form order
var required = []struct {
	field string
	label string
	value func(domain.RawInputs) *float64
}{
	{"totalElectricityConsumption", "Total electricity consumption", totalElectricity},
	{"renewableElectricityConsumption", "Renewable electricity consumption", renewable},
	{"totalFuelConsumption", "Total fuel consumption", fuel},
	{"carbonEmissions", "Carbon emissions", emissions},
	{"totalEmployees", "Total employees", totalEmployees},
	{"femaleEmployees", "Female employees", femaleEmployees},
	{"averageTrainingHours", "Average training hours", trainingHours},
	{"communityInvestment", "Community investment", community},
	{"independentBoardMembers", "Independent board members", board},
	{"totalRevenue", "Total revenue", revenue},
}

var fieldRules = []fieldRule{
	{"renewableElectricityConsumption", renewable, nonNegative, "Renewable electricity consumption cannot be negative"},
	{"totalFuelConsumption", fuel, nonNegative, "Total fuel consumption cannot be negative"},
	{"carbonEmissions", emissions, nonNegative, "Carbon emissions cannot be negative"},
	{"communityInvestment", community, nonNegative, "Community investment cannot be negative"},
	{"totalRevenue", revenue, nonNegative, "Total revenue cannot be negative"},
	{"independentBoardMembers", board, nonNegative, "Independent board members cannot be negative"},

	// Zero is rejected here too, so a year with no female employees cannot be saved.
	{"totalElectricityConsumption", totalElectricity, positive, "Total electricity consumption must be greater than 0"},
	{"averageTrainingHours", trainingHours, positive, "Average training hours must be greater than 0"},
	{"totalEmployees", totalEmployees, positive, "Total employees must be greater than 0"},
	{"totalEmployees", totalEmployees, whole, "Total employees must be a whole number"},
	{"femaleEmployees", femaleEmployees, positive, "Female employees must be greater than 0"},
	{"femaleEmployees", femaleEmployees, whole, "Female employees must be a whole number"},
}

var crossRules = []crossRule{
	{"femaleEmployees", femaleEmployees, totalEmployees, atMost, "Female employees cannot exceed total employees"},
	{"renewableElectricityConsumption", renewable, totalElectricity, atMost, "Renewable electricity consumption cannot exceed total electricity consumption"},
	{"communityInvestment", community, revenue, atMost, "Community investment cannot exceed total revenue"},
	{"independentBoardMembers", board, func(domain.RawInputs) *float64 { return &maxBoardPercent }, atMost, "Independent board members must be between 0 and 100 percent"},
}

var maxBoardPercent = 100.0

// Validate evaluates every rule against r and returns all violations, in rule order.
// An empty result means the record may be stored.
func Validate(r domain.RawInputs) Violations {
	var out Violations
	for _, req := range required {
		if req.value(r) == nil {
			out = append(out, Violation{Field: req.field, Message: req.label + " is required"})
		}
	}
	if r.HasDataPrivacyPolicy == nil {
		out = append(out, Violation{Field: "hasDataPrivacyPolicy", Message: "Please state whether a data privacy policy is in place"})
	}
	for _, rule := range fieldRules {
		if v := rule.value(r); v != nil && !rule.check(*v) {
			out = append(out, Violation{Field: rule.field, Message: rule.message})
		}
	}
	for _, rule := range crossRules {
		l, rv := rule.left(r), rule.right(r)
		if l != nil && rv != nil && !rule.check(*l, *rv) {
			out = append(out, Violation{Field: rule.field, Message: rule.message})
		}
	}
	return out
}
