// Package metrics derives the ESG ratios stored next to each year's raw answers.
package metrics

import (
	"math" // Finite checks

	"esg_portal/internal/domain" // Domain models
)

// Compute maps one year's raw inputs to the four derived ratios.
// Missing operands and zero denominators both yield nil.
func Compute(r domain.RawInputs) domain.DerivedMetrics {
	return domain.DerivedMetrics{
		CarbonIntensity:           ratio(r.CarbonEmissions, r.TotalRevenue, 1),
		RenewableElectricityRatio: ratio(r.RenewableElectricityConsumption, r.TotalElectricityConsumption, 100),
		DiversityRatio:            ratio(r.FemaleEmployees, r.TotalEmployees, 100),
		CommunitySpendRatio:       ratio(r.CommunityInvestment, r.TotalRevenue, 100),
	}
}

// ratio returns scale*num/den, or nil when it cannot be computed.
func ratio(num, den *float64, scale float64) *float64 {
	if num == nil || den == nil || *den == 0 {
		return nil
	}
	v := scale * *num / *den
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
