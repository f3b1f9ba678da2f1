package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BeeResponse là shape trả về cho GET /api/bees và /api/bees/slug/:slug
type BeeResponse struct {
	ID               int64  `json:"id"`
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
	ROI          *ROIView    `json:"roi,omitempty"`
	DemoAssets   *DemoAssets `json:"demo_assets,omitempty"`

	SEOTitle       string `json:"seo_title"`
	SEODescription string `json:"seo_description"`
	SEOImage       string `json:"seo_image"`

	Prices       map[Currency]decimal.Decimal `json:"prices"`
	UsagePricing map[Currency]UsagePrice      `json:"usage_pricing"`

	// chỉ set ở endpoint detail
	DisplayCurrency Currency `json:"display_currency,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ROIView thêm giá trị tính sẵn cho trang detail
type ROIView struct {
	ROIModel
	EstimatedMonthlySavings *decimal.Decimal `json:"estimated_monthly_savings,omitempty"`
}

func NewBeeResponse(b *Bee) *BeeResponse {
	resp := &BeeResponse{
		ID:               b.ID,
		Slug:             b.Slug,
		Name:             b.Name,
		Tagline:          b.Tagline,
		Role:             b.Role,
		ShortDescription: b.ShortDescription,
		LongDescription:  b.LongDescription,
		MainDescription:  b.MainDescription,
		Status:           b.Status,
		ImageURL:         b.ImageURL,
		Features:         nonNilStrings(b.Features),
		Integrations:     nonNilStrings(b.Integrations),
		FAQs:             b.FAQs,
		DemoAssets:       b.DemoAssets,
		SEOTitle:         b.SEOTitle,
		SEODescription:   b.SEODescription,
		SEOImage:         b.SEOImage,
		Prices:           PriceMap(b.Prices),
		UsagePricing:     UsagePriceMap(b.UsagePricing),
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
	if resp.FAQs == nil {
		resp.FAQs = []FAQ{}
	}

	if b.ROI != nil {
		view := &ROIView{ROIModel: *b.ROI}
		if savings, ok := b.ROI.EstimatedMonthlySavings(); ok {
			view.EstimatedMonthlySavings = &savings
		}
		resp.ROI = view
	}

	return resp
}

func NewBeeResponses(bees []*Bee) []*BeeResponse {
	out := make([]*BeeResponse, 0, len(bees))
	for _, b := range bees {
		out = append(out, NewBeeResponse(b))
	}
	return out
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
