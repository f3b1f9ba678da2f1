package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status là lifecycle của một bee
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDraft    Status = "draft"
)

// Bee là entity lưu trong bảng bees (+ bee_prices, bee_usage_pricing)
type Bee struct {
	ID               int64
	Slug             string
	Name             string
	Tagline          string
	Role             string
	ShortDescription string
	LongDescription  string
	MainDescription  string
	Status           Status
	ImageURL         string

	// JSONB columns
	Features     []string
	Integrations []string
	FAQs         []FAQ
	ROI          *ROIModel
	DemoAssets   *DemoAssets

	SEOTitle       string
	SEODescription string
	SEOImage       string

	Prices       []Price
	UsagePricing []UsagePricing

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsPublic: draft không bao giờ được trả về ở public endpoint
func (b *Bee) IsPublic() bool {
	return b.Status != StatusDraft && b.DeletedAt == nil
}

// Price là một row của bee_prices (monthly price)
type Price struct {
	Currency Currency
	Amount   decimal.Decimal
}

// UsagePricing là một row của bee_usage_pricing
type UsagePricing struct {
	Currency        Currency
	UsageType       string
	RatePerUnit     decimal.Decimal
	UnitDescription string
}

type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ROIAssumptions: mọi field đều optional, nil = chưa nhập
type ROIAssumptions struct {
	HoursSavedPerWeek *float64 `json:"hours_saved_per_week,omitempty"`
	HourlyRate        *float64 `json:"hourly_rate,omitempty"`
	TeamSize          *float64 `json:"team_size,omitempty"`
	MonthlyToolCost   *float64 `json:"monthly_tool_cost,omitempty"`
}

// IsEmpty trả về true khi không có assumption nào được set
func (a ROIAssumptions) IsEmpty() bool {
	return a.HoursSavedPerWeek == nil && a.HourlyRate == nil && a.TeamSize == nil && a.MonthlyToolCost == nil
}

type ROIModel struct {
	Assumptions ROIAssumptions `json:"assumptions"`
	Benefits    []string       `json:"benefits,omitempty"`
}

// EstimatedMonthlySavings = hours × 52/12 × rate × team − tool cost.
// ok = false khi thiếu hours, rate hoặc team size.
func (m *ROIModel) EstimatedMonthlySavings() (decimal.Decimal, bool) {
	if m == nil {
		return decimal.Zero, false
	}
	a := m.Assumptions
	if a.HoursSavedPerWeek == nil || a.HourlyRate == nil || a.TeamSize == nil {
		return decimal.Zero, false
	}

	weeksPerMonth := decimal.NewFromInt(52).Div(decimal.NewFromInt(12))
	savings := decimal.NewFromFloat(*a.HoursSavedPerWeek).
		Mul(decimal.NewFromFloat(*a.HourlyRate)).
		Mul(decimal.NewFromFloat(*a.TeamSize)).
		Mul(weeksPerMonth)

	if a.MonthlyToolCost != nil {
		savings = savings.Sub(decimal.NewFromFloat(*a.MonthlyToolCost))
	}
	return savings.Round(2), true
}

type DemoAssets struct {
	VideoURL         string   `json:"video_url,omitempty"`
	Screenshots      []string `json:"screenshots,omitempty"`
	DocumentationURL string   `json:"documentation_url,omitempty"`
}

// IsEmpty: không có video, docs và screenshot
func (d DemoAssets) IsEmpty() bool {
	return d.VideoURL == "" && d.DocumentationURL == "" && len(d.Screenshots) == 0
}
