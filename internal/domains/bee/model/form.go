package model

import (
	"math"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

// ============================================
// FORM SCHEMA
// ============================================

// FormData là shape phẳng mà admin form gửi lên: mọi số đều là string
// (có thể rỗng), price/usage/ROI/demo được flatten thành field riêng.
// Features, integrations, FAQs và screenshots là list có type, không phải JSON text.
type FormData struct {
	Slug             string `json:"slug"`
	Name             string `json:"name"`
	Tagline          string `json:"tagline"`
	Role             string `json:"role"`
	ShortDescription string `json:"short_description"`
	LongDescription  string `json:"long_description"`
	MainDescription  string `json:"main_description"`
	Status           Status `json:"status"`
	ImageURL         string `json:"image_url"`

	Features     []string `json:"features"`
	Integrations []string `json:"integrations"`
	FAQs         []FAQ    `json:"faqs"`

	PriceUSD string `json:"price_usd"`
	PriceGBP string `json:"price_gbp"`
	PriceEUR string `json:"price_eur"`

	UsageTypeUSD string `json:"usage_type_usd"`
	UsageRateUSD string `json:"usage_rate_usd"`
	UsageUnitUSD string `json:"usage_unit_usd"`
	UsageTypeGBP string `json:"usage_type_gbp"`
	UsageRateGBP string `json:"usage_rate_gbp"`
	UsageUnitGBP string `json:"usage_unit_gbp"`
	UsageTypeEUR string `json:"usage_type_eur"`
	UsageRateEUR string `json:"usage_rate_eur"`
	UsageUnitEUR string `json:"usage_unit_eur"`

	ROIHoursSavedPerWeek string   `json:"roi_hours_saved_per_week"`
	ROIHourlyRate        string   `json:"roi_hourly_rate"`
	ROITeamSize          string   `json:"roi_team_size"`
	ROIMonthlyToolCost   string   `json:"roi_monthly_tool_cost"`
	ROIBenefits          []string `json:"roi_benefits"`

	DemoVideoURL         string   `json:"demo_video_url"`
	DemoDocumentationURL string   `json:"demo_documentation_url"`
	DemoScreenshots      []string `json:"demo_screenshots"`

	SEOTitle       string `json:"seo_title"`
	SEODescription string `json:"seo_description"`
	SEOImage       string `json:"seo_image"`
}

// Validate chạy form schema: cùng rule với API schema nhưng lỗi nằm ở key của form
// (price_usd, usage_rate_gbp, roi_team_size...). Số không parse được thì bỏ qua.
func (f FormData) Validate() error {
	price := validation.By(formAmount(MaxPriceDecimalPlaces))
	rate := validation.By(formAmount(MaxUsageRateDecimalPlaces))
	nonNegative := validation.By(formNonNegative)

	return validation.ValidateStruct(&f,
		validation.Field(&f.Slug, validation.Required, slugRule),
		validation.Field(&f.Name, requiredText),
		validation.Field(&f.Role, requiredText),
		validation.Field(&f.MainDescription, requiredText),
		validation.Field(&f.Status, statusRule),
		validation.Field(&f.ImageURL, is.URL),
		validation.Field(&f.FAQs),
		validation.Field(&f.DemoVideoURL, is.URL),
		validation.Field(&f.DemoDocumentationURL, is.URL),
		validation.Field(&f.DemoScreenshots, validation.Each(is.URL)),
		validation.Field(&f.SEODescription, seoDescriptionRule),
		validation.Field(&f.SEOImage, is.URL),

		validation.Field(&f.PriceUSD, price),
		validation.Field(&f.PriceGBP, price),
		validation.Field(&f.PriceEUR, price),
		validation.Field(&f.UsageRateUSD, rate),
		validation.Field(&f.UsageRateGBP, rate),
		validation.Field(&f.UsageRateEUR, rate),

		validation.Field(&f.ROIHoursSavedPerWeek, nonNegative),
		validation.Field(&f.ROIHourlyRate, nonNegative),
		validation.Field(&f.ROITeamSize, nonNegative),
		validation.Field(&f.ROIMonthlyToolCost, nonNegative),
	)
}

type usageFields struct {
	usageType string
	rate      string
	unit      string
}

func (f FormData) priceFields() map[Currency]string {
	return map[Currency]string{
		CurrencyUSD: f.PriceUSD,
		CurrencyGBP: f.PriceGBP,
		CurrencyEUR: f.PriceEUR,
	}
}

func (f FormData) usageFields() map[Currency]usageFields {
	return map[Currency]usageFields{
		CurrencyUSD: {f.UsageTypeUSD, f.UsageRateUSD, f.UsageUnitUSD},
		CurrencyGBP: {f.UsageTypeGBP, f.UsageRateGBP, f.UsageUnitGBP},
		CurrencyEUR: {f.UsageTypeEUR, f.UsageRateEUR, f.UsageUnitEUR},
	}
}

// parseNumber: chỉ nhận số hữu hạn, "", "abc", "NaN", "Inf" đều bị bỏ
func parseNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseDecimal giữ nguyên chữ số thập phân của input ("0.00002" không thành float xấp xỉ)
func parseDecimal(raw string) (decimal.Decimal, bool) {
	v, ok := parseNumber(raw)
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.NewFromFloat(v), true
	}
	return d, true
}

func parseNumberPtr(raw string) *float64 {
	v, ok := parseNumber(raw)
	if !ok {
		return nil
	}
	return &v
}

// ToPayload chuyển form sang API shape.
//   - price chỉ có mặt khi parse được
//   - usage pricing của một currency chỉ có mặt khi đủ rate, type và unit
//   - roi bị bỏ hẳn nếu không có assumption nào parse được
//   - demo_assets bị bỏ hẳn nếu mọi field đều rỗng
func (f FormData) ToPayload() BeePayload {
	p := BeePayload{
		Slug:             f.Slug,
		Name:             f.Name,
		Tagline:          f.Tagline,
		Role:             f.Role,
		ShortDescription: f.ShortDescription,
		LongDescription:  f.LongDescription,
		MainDescription:  f.MainDescription,
		Status:           f.Status,
		ImageURL:         f.ImageURL,
		Features:         f.Features,
		Integrations:     f.Integrations,
		FAQs:             f.FAQs,
		SEOTitle:         f.SEOTitle,
		SEODescription:   f.SEODescription,
		SEOImage:         f.SEOImage,
		Prices:           make(map[Currency]decimal.Decimal),
		UsagePricing:     make(map[Currency]UsagePrice),
	}

	for cur, raw := range f.priceFields() {
		if d, ok := parseDecimal(raw); ok {
			p.Prices[cur] = d
		}
	}

	for cur, u := range f.usageFields() {
		rate, ok := parseDecimal(u.rate)
		usageType := strings.TrimSpace(u.usageType)
		unit := strings.TrimSpace(u.unit)
		if !ok || usageType == "" || unit == "" {
			continue
		}
		p.UsagePricing[cur] = UsagePrice{
			UsageType:       usageType,
			RatePerUnit:     rate,
			UnitDescription: unit,
		}
	}

	assumptions := ROIAssumptions{
		HoursSavedPerWeek: parseNumberPtr(f.ROIHoursSavedPerWeek),
		HourlyRate:        parseNumberPtr(f.ROIHourlyRate),
		TeamSize:          parseNumberPtr(f.ROITeamSize),
		MonthlyToolCost:   parseNumberPtr(f.ROIMonthlyToolCost),
	}
	if !assumptions.IsEmpty() {
		p.ROI = &ROIModel{Assumptions: assumptions, Benefits: f.ROIBenefits}
	}

	demo := DemoAssets{
		VideoURL:         strings.TrimSpace(f.DemoVideoURL),
		Screenshots:      f.DemoScreenshots,
		DocumentationURL: strings.TrimSpace(f.DemoDocumentationURL),
	}
	if !demo.IsEmpty() {
		p.DemoAssets = &demo
	}

	return p
}

func formatNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// NewFormData prefill form từ API payload (màn hình edit).
// NewFormData(x.ToPayload()).ToPayload() cho lại đúng x.ToPayload().
func NewFormData(p BeePayload) FormData {
	f := FormData{
		Slug:             p.Slug,
		Name:             p.Name,
		Tagline:          p.Tagline,
		Role:             p.Role,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		MainDescription:  p.MainDescription,
		Status:           p.Status,
		ImageURL:         p.ImageURL,
		Features:         p.Features,
		Integrations:     p.Integrations,
		FAQs:             p.FAQs,
		SEOTitle:         p.SEOTitle,
		SEODescription:   p.SEODescription,
		SEOImage:         p.SEOImage,
	}

	price := func(cur Currency) string {
		if amount, ok := p.Prices[cur]; ok {
			return amount.String()
		}
		return ""
	}
	f.PriceUSD = price(CurrencyUSD)
	f.PriceGBP = price(CurrencyGBP)
	f.PriceEUR = price(CurrencyEUR)

	usage := func(cur Currency) (string, string, string) {
		u, ok := p.UsagePricing[cur]
		if !ok {
			return "", "", ""
		}
		return u.UsageType, u.RatePerUnit.String(), u.UnitDescription
	}
	f.UsageTypeUSD, f.UsageRateUSD, f.UsageUnitUSD = usage(CurrencyUSD)
	f.UsageTypeGBP, f.UsageRateGBP, f.UsageUnitGBP = usage(CurrencyGBP)
	f.UsageTypeEUR, f.UsageRateEUR, f.UsageUnitEUR = usage(CurrencyEUR)

	if p.ROI != nil {
		a := p.ROI.Assumptions
		f.ROIHoursSavedPerWeek = formatNumber(a.HoursSavedPerWeek)
		f.ROIHourlyRate = formatNumber(a.HourlyRate)
		f.ROITeamSize = formatNumber(a.TeamSize)
		f.ROIMonthlyToolCost = formatNumber(a.MonthlyToolCost)
		f.ROIBenefits = p.ROI.Benefits
	}

	if p.DemoAssets != nil {
		f.DemoVideoURL = p.DemoAssets.VideoURL
		f.DemoDocumentationURL = p.DemoAssets.DocumentationURL
		f.DemoScreenshots = p.DemoAssets.Screenshots
	}

	return f
}
