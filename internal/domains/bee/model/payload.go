package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

// ============================================
// API SCHEMA
// ============================================

// BeePayload là shape chuẩn của một bee trên API (POST/PUT /api/bees).
// FormData và BeeResponse đều convert từ/về struct này.
type BeePayload struct {
	ID *int64 `json:"id,omitempty"`

	Slug             string `json:"slug"`
	Name             string `json:"name"`
	Tagline          string `json:"tagline"`
	Role             string `json:"role"`
	ShortDescription string `json:"short_description"`
	LongDescription  string `json:"long_description"`
	MainDescription  string `json:"main_description"`
	Status           Status `json:"status"`
	ImageURL         string `json:"image_url"`

	Features     []string    `json:"features"`
	Integrations []string    `json:"integrations"`
	FAQs         []FAQ       `json:"faqs"`
	ROI          *ROIModel   `json:"roi,omitempty"`
	DemoAssets   *DemoAssets `json:"demo_assets,omitempty"`

	SEOTitle       string `json:"seo_title"`
	SEODescription string `json:"seo_description"`
	SEOImage       string `json:"seo_image"`

	Prices       map[Currency]decimal.Decimal `json:"prices"`
	UsagePricing map[Currency]UsagePrice      `json:"usage_pricing"`
}

// UsagePrice là usage pricing của một currency
type UsagePrice struct {
	UsageType       string          `json:"usage_type"`
	RatePerUnit     decimal.Decimal `json:"rate_per_unit"`
	UnitDescription string          `json:"unit_description"`
}

func (u UsagePrice) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.UsageType, validation.Required),
		validation.Field(&u.RatePerUnit, validation.By(decimalAmount(MaxUsageRateDecimalPlaces))),
		validation.Field(&u.UnitDescription, validation.Required),
	)
}

func (f FAQ) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Question, validation.Required),
		validation.Field(&f.Answer, validation.Required),
	)
}

func (a ROIAssumptions) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.HoursSavedPerWeek, validation.Min(0.0)),
		validation.Field(&a.HourlyRate, validation.Min(0.0)),
		validation.Field(&a.TeamSize, validation.Min(0.0)),
		validation.Field(&a.MonthlyToolCost, validation.Min(0.0)),
	)
}

func (m ROIModel) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Assumptions),
	)
}

func (d DemoAssets) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.VideoURL, is.URL),
		validation.Field(&d.Screenshots, validation.Each(is.URL)),
		validation.Field(&d.DocumentationURL, is.URL),
	)
}

// Validate chạy API schema. Lỗi trả về là validation.Errors lồng nhau,
// dùng FieldErrors để lấy danh sách {path, message}.
func (p BeePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Slug, validation.Required, slugRule),
		validation.Field(&p.Name, requiredText),
		validation.Field(&p.Role, requiredText),
		validation.Field(&p.MainDescription, requiredText),
		validation.Field(&p.Status, statusRule),
		validation.Field(&p.ImageURL, is.URL),
		validation.Field(&p.FAQs),
		validation.Field(&p.ROI),
		validation.Field(&p.DemoAssets),
		validation.Field(&p.SEODescription, seoDescriptionRule),
		validation.Field(&p.SEOImage, is.URL),
		validation.Field(&p.Prices,
			validation.By(currencyKeys(p.Prices)),
			validation.Each(validation.By(decimalAmount(MaxPriceDecimalPlaces))),
		),
		validation.Field(&p.UsagePricing, validation.By(currencyKeys(p.UsagePricing))),
	)
}

// Normalize trim các field text và set default trước khi validate/persist
func (p *BeePayload) Normalize() {
	p.Slug = strings.TrimSpace(p.Slug)
	p.Name = strings.TrimSpace(p.Name)
	p.Role = strings.TrimSpace(p.Role)
	p.MainDescription = strings.TrimSpace(p.MainDescription)
	p.ImageURL = strings.TrimSpace(p.ImageURL)
	p.SEOImage = strings.TrimSpace(p.SEOImage)
	if p.Status == "" {
		p.Status = StatusActive
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	if p.Integrations == nil {
		p.Integrations = []string{}
	}
	if p.FAQs == nil {
		p.FAQs = []FAQ{}
	}
	if p.DemoAssets != nil && p.DemoAssets.IsEmpty() {
		p.DemoAssets = nil
	}
}

// ToEntity chuyển payload đã validate sang entity.
// Prices/UsagePricing được sắp theo SupportedCurrencies.
func (p BeePayload) ToEntity() *Bee {
	b := &Bee{
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
		ROI:              p.ROI,
		DemoAssets:       p.DemoAssets,
		SEOTitle:         p.SEOTitle,
		SEODescription:   p.SEODescription,
		SEOImage:         p.SEOImage,
	}
	if p.ID != nil {
		b.ID = *p.ID
	}

	for _, cur := range SupportedCurrencies {
		if amount, ok := p.Prices[cur]; ok {
			b.Prices = append(b.Prices, Price{Currency: cur, Amount: amount})
		}
		if usage, ok := p.UsagePricing[cur]; ok {
			b.UsagePricing = append(b.UsagePricing, UsagePricing{
				Currency:        cur,
				UsageType:       usage.UsageType,
				RatePerUnit:     usage.RatePerUnit,
				UnitDescription: usage.UnitDescription,
			})
		}
	}

	return b
}

// PayloadFromEntity là chiều ngược lại của ToEntity
func PayloadFromEntity(b *Bee) BeePayload {
	id := b.ID
	p := BeePayload{
		ID:               &id,
		Slug:             b.Slug,
		Name:             b.Name,
		Tagline:          b.Tagline,
		Role:             b.Role,
		ShortDescription: b.ShortDescription,
		LongDescription:  b.LongDescription,
		MainDescription:  b.MainDescription,
		Status:           b.Status,
		ImageURL:         b.ImageURL,
		Features:         b.Features,
		Integrations:     b.Integrations,
		FAQs:             b.FAQs,
		ROI:              b.ROI,
		DemoAssets:       b.DemoAssets,
		SEOTitle:         b.SEOTitle,
		SEODescription:   b.SEODescription,
		SEOImage:         b.SEOImage,
		Prices:           PriceMap(b.Prices),
		UsagePricing:     UsagePriceMap(b.UsagePricing),
	}
	return p
}

// PriceMap reshape list row → map theo currency
func PriceMap(prices []Price) map[Currency]decimal.Decimal {
	m := make(map[Currency]decimal.Decimal, len(prices))
	for _, p := range prices {
		m[p.Currency] = p.Amount
	}
	return m
}

func UsagePriceMap(rows []UsagePricing) map[Currency]UsagePrice {
	m := make(map[Currency]UsagePrice, len(rows))
	for _, u := range rows {
		m[u.Currency] = UsagePrice{
			UsageType:       u.UsageType,
			RatePerUnit:     u.RatePerUnit,
			UnitDescription: u.UnitDescription,
		}
	}
	return m
}
