package domain

import "time" // Timestamps

// RawInputs holds one year's questionnaire answers. Every field is nil until supplied.
type RawInputs struct {
	TotalElectricityConsumption     *float64 `json:"totalElectricityConsumption"`     // kWh
	RenewableElectricityConsumption *float64 `json:"renewableElectricityConsumption"` // kWh
	TotalFuelConsumption            *float64 `json:"totalFuelConsumption"`            // Liters
	CarbonEmissions                 *float64 `json:"carbonEmissions"`                 // T CO2e
	TotalEmployees                  *float64 `json:"totalEmployees"`                  // Headcount
	FemaleEmployees                 *float64 `json:"femaleEmployees"`                 // Headcount
	AverageTrainingHours            *float64 `json:"averageTrainingHours"`            // Hours per employee per year
	CommunityInvestment             *float64 `json:"communityInvestment"`             // Currency
	IndependentBoardMembers         *float64 `json:"independentBoardMembers"`         // Percent, 0-100
	HasDataPrivacyPolicy            *bool    `json:"hasDataPrivacyPolicy"`            // Tri-state: true, false or unanswered
	TotalRevenue                    *float64 `json:"totalRevenue"`                    // Currency
}

// IsEmpty reports whether no field of the record has been supplied.
func (r RawInputs) IsEmpty() bool {
	for _, v := range []*float64{
		r.TotalElectricityConsumption,
		r.RenewableElectricityConsumption,
		r.TotalFuelConsumption,
		r.CarbonEmissions,
		r.TotalEmployees,
		r.FemaleEmployees,
		r.AverageTrainingHours,
		r.CommunityInvestment,
		r.IndependentBoardMembers,
		r.TotalRevenue,
	} {
		if v != nil {
			return false
		}
	}
	return r.HasDataPrivacyPolicy == nil
}

// DerivedMetrics are computed from RawInputs and never accepted from clients.
// A nil value means the metric could not be computed.
type DerivedMetrics struct {
	CarbonIntensity           *float64 `json:"carbonIntensity"`           // T CO2e per unit of revenue
	RenewableElectricityRatio *float64 `json:"renewableElectricityRatio"` // Percent
	DiversityRatio            *float64 `json:"diversityRatio"`            // Percent
	CommunitySpendRatio       *float64 `json:"communitySpendRatio"`       // Percent
}

// YearlyResponse Model, one row per user and financial year
type YearlyResponse struct {
	ID     uint `gorm:"primaryKey" json:"id"`                             // Primary key
	UserID uint `gorm:"not null;uniqueIndex:idx_user_year" json:"userId"` // Foreign key to User
	Year   int  `gorm:"not null;uniqueIndex:idx_user_year" json:"year"`   // Financial year

	// Questionnaire answers and the ratios calculated from them
	RawInputs      `gorm:"embedded"`
	DerivedMetrics `gorm:"embedded"`

	CreatedAt time.Time `json:"createdAt"` // Creation timestamp
	UpdatedAt time.Time `json:"updatedAt"` // Last update timestamp
}
