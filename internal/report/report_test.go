package report

import (
	"bytes"
	"testing"
	"time"

	"esg_portal/internal/domain"
	"esg_portal/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }
func b(v bool) *bool       { return &v }

func record(year int, revenue, emissions float64) domain.YearlyResponse {
	raw := domain.RawInputs{
		TotalElectricityConsumption:     f(1000),
		RenewableElectricityConsumption: f(400),
		TotalFuelConsumption:            f(250),
		CarbonEmissions:                 f(emissions),
		TotalEmployees:                  f(10),
		FemaleEmployees:                 f(4),
		AverageTrainingHours:            f(12),
		CommunityInvestment:             f(20),
		IndependentBoardMembers:         f(40),
		HasDataPrivacyPolicy:            b(true),
		TotalRevenue:                    f(revenue),
	}
	return domain.YearlyResponse{Year: year, RawInputs: raw, DerivedMetrics: metrics.Compute(raw)}
}

var now = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func TestBuildDashboard_Empty(t *testing.T) {
	d := BuildDashboard(map[int]domain.YearlyResponse{}, now)
	assert.Empty(t, d.Years)
	assert.Equal(t, []int{2025}, d.EditableYears)
	assert.Nil(t, d.Latest)
	for _, m := range Metrics {
		assert.Empty(t, d.Series[m.Key])
		assert.Nil(t, d.Changes[m.Key])
	}
}

func TestBuildDashboard_SeriesAndChanges(t *testing.T) {
	records := map[int]domain.YearlyResponse{
		2023: record(2023, 1000, 5),
		2021: record(2021, 0, 5),
		2022: record(2022, 1000, 10),
	}
	d := BuildDashboard(records, now)

	assert.Equal(t, []int{2021, 2022, 2023}, d.Years)
	assert.Equal(t, []int{2021, 2022, 2023}, d.EditableYears)
	require.NotNil(t, d.Latest)
	assert.Equal(t, 2023, d.Latest.Year)

	// 2021 has zero revenue so its carbon intensity is omitted
	ci := d.Series["carbonIntensity"]
	require.Len(t, ci, 2)
	assert.Equal(t, 2022, ci[0].Year)
	assert.InDelta(t, 0.01, ci[0].Value, 1e-9)
	assert.InDelta(t, 0.005, ci[1].Value, 1e-9)

	require.NotNil(t, d.Changes["carbonIntensity"])
	assert.InDelta(t, -0.005, *d.Changes["carbonIntensity"], 1e-9)
	require.NotNil(t, d.Changes["diversityRatio"])
	assert.InDelta(t, 0, *d.Changes["diversityRatio"], 1e-9)
}

func TestBuildDashboard_ChangeNeedsBothYears(t *testing.T) {
	records := map[int]domain.YearlyResponse{
		2022: record(2022, 0, 5),
		2023: record(2023, 1000, 5),
	}
	d := BuildDashboard(records, now)
	assert.Nil(t, d.Changes["carbonIntensity"])
	assert.NotNil(t, d.Changes["renewableElectricityRatio"])
}

func TestMetricByKey(t *testing.T) {
	m, ok := MetricByKey("diversityRatio")
	require.True(t, ok)
	assert.Equal(t, "Diversity ratio", m.Label)

	_, ok = MetricByKey("nope")
	assert.False(t, ok)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "n/a", FormatValue(nil, "%"))
	assert.Equal(t, "40 %", FormatValue(f(40), "%"))
	assert.Equal(t, "0.005", FormatValue(f(0.005), ""))
	assert.Equal(t, "33.3333 %", FormatValue(f(100.0/3), "%"))
}

func TestRenderMetricChart(t *testing.T) {
	m, _ := MetricByKey("renewableElectricityRatio")
	var buf bytes.Buffer
	require.NoError(t, RenderMetricChart(&buf, m, []Point{{2022, 35}, {2023, 40}}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	buf.Reset()
	require.NoError(t, RenderMetricChart(&buf, m, []Point{{2023, 0}}), "all-zero series still renders")

	assert.ErrorIs(t, RenderMetricChart(&buf, m, nil), ErrNoData)
}

func TestRenderPDF(t *testing.T) {
	records := map[int]domain.YearlyResponse{
		2022: record(2022, 1000, 10),
		2023: record(2023, 1000, 5),
	}
	user := domain.User{Name: "Zoë Müller", Email: "a@b.com"}

	var buf bytes.Buffer
	require.NoError(t, RenderPDF(&buf, user, records, []int{2022, 2023}, now))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	buf.Reset()
	require.NoError(t, RenderPDF(&buf, user, records, []int{2023, 1999}, now), "unknown years are skipped")
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	assert.ErrorIs(t, RenderPDF(&buf, user, records, []int{1999}, now), ErrNoData)
}

func TestRenderPDF_IncompleteRecord(t *testing.T) {
	records := map[int]domain.YearlyResponse{2024: {Year: 2024}}
	var buf bytes.Buffer
	require.NoError(t, RenderPDF(&buf, domain.User{Name: "A B"}, records, []int{2024}, now))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
