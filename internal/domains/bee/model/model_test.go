package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() BeePayload {
	return BeePayload{
		Slug:            "customer-support-bee",
		Name:            "Customer Support Bee",
		Role:            "Support agent",
		MainDescription: "Answers tickets around the clock",
		Status:          StatusActive,
		Prices: map[Currency]decimal.Decimal{
			CurrencyUSD: decimal.NewFromInt(99),
		},
	}
}

func pathsOf(errs []FieldError) []string {
	paths := make([]string, 0, len(errs))
	for _, e := range errs {
		paths = append(paths, e.Path)
	}
	return paths
}

func messageFor(errs []FieldError, path string) string {
	for _, e := range errs {
		if e.Path == path {
			return e.Message
		}
	}
	return ""
}

func TestBeePayload_SlugRule(t *testing.T) {
	accepted := []string{"a", "bee-1", "customer-support", "123", "---"}
	for _, slug := range accepted {
		p := validPayload()
		p.Slug = slug
		assert.NoError(t, p.Validate(), slug)
	}

	rejected := []string{"Bee", "hello world", "bee_1", "bee.1", "bee!", "ÀBC"}
	for _, slug := range rejected {
		p := validPayload()
		p.Slug = slug
		errs := FieldErrors(p.Validate())
		assert.Equal(t, MsgInvalidSlug, messageFor(errs, "slug"), slug)
	}
}

func TestBeePayload_RequiredFields(t *testing.T) {
	err := BeePayload{}.Validate()
	require.Error(t, err)

	paths := pathsOf(FieldErrors(err))
	assert.Equal(t, []string{"main_description", "name", "role", "slug"}, paths)
}

func TestBeePayload_SEODescriptionLength(t *testing.T) {
	p := validPayload()
	p.SEODescription = strings.Repeat("a", 160)
	assert.NoError(t, p.Validate())

	// rune based, không phải byte
	p.SEODescription = strings.Repeat("é", 160)
	assert.NoError(t, p.Validate())

	p.SEODescription = strings.Repeat("a", 161)
	errs := FieldErrors(p.Validate())
	require.Len(t, errs, 1)
	assert.Equal(t, "seo_description", errs[0].Path)
	assert.Equal(t, MsgSEODescriptionTooLong, errs[0].Message)
}

func TestBeePayload_FAQMissingAnswer(t *testing.T) {
	p := validPayload()
	p.FAQs = []FAQ{
		{Question: "Does it integrate with Zendesk?", Answer: "Yes"},
		{Question: "Is there a trial?"},
	}

	errs := FieldErrors(p.Validate())
	require.Len(t, errs, 1)
	assert.Equal(t, "faqs.1.answer", errs[0].Path)
}

func TestBeePayload_PricingRules(t *testing.T) {
	p := validPayload()
	p.Prices = map[Currency]decimal.Decimal{
		CurrencyUSD: decimal.NewFromInt(10),
		CurrencyEUR: decimal.NewFromInt(-1),
	}
	p.UsagePricing = map[Currency]UsagePrice{
		CurrencyGBP: {UsageType: "per_minute", RatePerUnit: decimal.RequireFromString("-0.5")},
	}

	errs := FieldErrors(p.Validate())
	assert.Equal(t, []string{
		"prices.EUR",
		"usage_pricing.GBP.rate_per_unit",
		"usage_pricing.GBP.unit_description",
	}, pathsOf(errs))

	p = validPayload()
	p.Prices = map[Currency]decimal.Decimal{"JPY": decimal.NewFromInt(1000)}
	errs = FieldErrors(p.Validate())
	require.Len(t, errs, 1)
	assert.Equal(t, "prices", errs[0].Path)
	assert.Contains(t, errs[0].Message, "JPY")
}

func TestBeePayload_AmountPrecisionAndRange(t *testing.T) {
	tests := []struct {
		name    string
		price   string
		rate    string
		wantErr []string
	}{
		{"two decimals and eight rate decimals", "29.99", "0.00000002", nil},
		{"largest storable amount", "9999999999.99", "9999999999.99999999", nil},
		{"trailing zeros are fine", "29.990", "0.000020", nil},
		{"price with three decimals", "29.999", "0.05", []string{"prices.USD"}},
		{"rate with nine decimals", "10", "0.000000001", []string{"usage_pricing.USD.rate_per_unit"}},
		{"ten integer digits overflow", "10000000000", "1e10", []string{"prices.USD", "usage_pricing.USD.rate_per_unit"}},
		{"far out of range", "1e13", "0.1", []string{"prices.USD"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			p.Prices = map[Currency]decimal.Decimal{CurrencyUSD: decimal.RequireFromString(tt.price)}
			p.UsagePricing = map[Currency]UsagePrice{CurrencyUSD: {
				UsageType:       "per_token",
				RatePerUnit:     decimal.RequireFromString(tt.rate),
				UnitDescription: "per token",
			}}

			err := p.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantErr, pathsOf(FieldErrors(err)))
		})
	}

	p := validPayload()
	p.Prices = map[Currency]decimal.Decimal{CurrencyUSD: decimal.RequireFromString("29.999")}
	assert.Equal(t, "must have at most 2 decimal places", messageFor(FieldErrors(p.Validate()), "prices.USD"))

	p.Prices = map[Currency]decimal.Decimal{CurrencyUSD: decimal.RequireFromString("1e13")}
	assert.Equal(t, "must be less than 10000000000", messageFor(FieldErrors(p.Validate()), "prices.USD"))
}

func TestBeePayload_BlankMainDescription(t *testing.T) {
	p := validPayload()
	p.MainDescription = "   \n\t "

	errs := FieldErrors(p.Validate())
	require.Len(t, errs, 1)
	assert.Equal(t, "main_description", errs[0].Path)

	p.Normalize()
	assert.Empty(t, p.MainDescription)

	p = validPayload()
	p.MainDescription = "  Answers tickets  "
	p.Normalize()
	assert.Equal(t, "Answers tickets", p.MainDescription)
}

func TestBeePayload_NestedOptionalObjects(t *testing.T) {
	negative := -3.0
	p := validPayload()
	p.Status = "archived"
	p.ImageURL = "not a url"
	p.ROI = &ROIModel{Assumptions: ROIAssumptions{TeamSize: &negative}}
	p.DemoAssets = &DemoAssets{Screenshots: []string{"https://cdn.example.com/1.png", "bad url"}}

	assert.Equal(t, []string{
		"demo_assets.screenshots.1",
		"image_url",
		"roi.assumptions.team_size",
		"status",
	}, pathsOf(FieldErrors(p.Validate())))
}

func TestBeePayload_Normalize(t *testing.T) {
	p := BeePayload{Slug: "  bee  ", DemoAssets: &DemoAssets{}}
	p.Normalize()

	assert.Equal(t, "bee", p.Slug)
	assert.Equal(t, StatusActive, p.Status)
	assert.NotNil(t, p.Features)
	assert.NotNil(t, p.FAQs)
	assert.Nil(t, p.DemoAssets)
}

func TestFormData_ToPayload_PriceParsing(t *testing.T) {
	f := FormData{PriceUSD: "", PriceGBP: "12", PriceEUR: "abc"}

	p := f.ToPayload()

	require.Len(t, p.Prices, 1)
	assert.Equal(t, "12", p.Prices[CurrencyGBP].String())
}

func TestFormData_ToPayload_RejectsNonFinite(t *testing.T) {
	f := FormData{PriceUSD: "NaN", PriceGBP: "Inf", PriceEUR: " 9.5 "}

	p := f.ToPayload()

	require.Len(t, p.Prices, 1)
	assert.Equal(t, "9.5", p.Prices[CurrencyEUR].String())
}

func TestFormData_ToPayload_KeepsExactDigits(t *testing.T) {
	p := FormData{
		PriceUSD:     "19.99",
		UsageTypeUSD: "per_token", UsageRateUSD: "0.00002", UsageUnitUSD: "per token",
	}.ToPayload()

	assert.Equal(t, "19.99", p.Prices[CurrencyUSD].String())
	assert.Equal(t, "0.00002", p.UsagePricing[CurrencyUSD].RatePerUnit.String())
}

func TestFormData_ToPayload_UsagePricingNeedsAllParts(t *testing.T) {
	f := FormData{
		UsageTypeUSD: "per_minute", UsageRateUSD: "0.05", UsageUnitUSD: "per minute of call",
		UsageTypeGBP: "per_minute", UsageRateGBP: "", UsageUnitGBP: "per minute",
		UsageTypeEUR: "", UsageRateEUR: "0.04", UsageUnitEUR: "per minute",
	}

	p := f.ToPayload()

	require.Len(t, p.UsagePricing, 1)
	usd := p.UsagePricing[CurrencyUSD]
	assert.Equal(t, "per_minute", usd.UsageType)
	assert.Equal(t, "0.05", usd.RatePerUnit.String())
	assert.Equal(t, "per minute of call", usd.UnitDescription)
}

func TestFormData_ToPayload_OptionalObjects(t *testing.T) {
	p := FormData{ROIHourlyRate: "abc", ROIBenefits: []string{"Faster replies"}}.ToPayload()
	assert.Nil(t, p.ROI, "benefits alone do not create an ROI block")
	assert.Nil(t, p.DemoAssets)

	p = FormData{ROITeamSize: "4", DemoVideoURL: "https://youtu.be/x"}.ToPayload()
	require.NotNil(t, p.ROI)
	require.NotNil(t, p.ROI.Assumptions.TeamSize)
	assert.Equal(t, 4.0, *p.ROI.Assumptions.TeamSize)
	assert.Nil(t, p.ROI.Assumptions.HourlyRate)
	require.NotNil(t, p.DemoAssets)
	assert.Equal(t, "https://youtu.be/x", p.DemoAssets.VideoURL)
}

func sampleForm() FormData {
	return FormData{
		Slug:                 "sales-bee",
		Name:                 "Sales Bee",
		Role:                 "SDR",
		MainDescription:      "Books meetings",
		Status:               StatusDraft,
		Features:             []string{"Lead scoring", "Email sequences"},
		Integrations:         []string{"HubSpot"},
		FAQs:                 []FAQ{{Question: "Q?", Answer: "A."}},
		PriceUSD:             "49.99",
		PriceGBP:             "39",
		PriceEUR:             "",
		UsageTypeUSD:         "per_email",
		UsageRateUSD:         "0.002",
		UsageUnitUSD:         "per email sent",
		ROIHoursSavedPerWeek: "10",
		ROIHourlyRate:        "45.5",
		ROIBenefits:          []string{"More meetings"},
		DemoScreenshots:      []string{"https://cdn.example.com/s1.png"},
		SEODescription:       "Sales assistant",
	}
}

func TestFormData_ToPayload_Idempotent(t *testing.T) {
	f := sampleForm()

	first := f.ToPayload()
	second := f.ToPayload()
	assert.Equal(t, first, second)

	roundTrip := NewFormData(first).ToPayload()

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(roundTrip)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestNewFormData_Prefill(t *testing.T) {
	f := NewFormData(sampleForm().ToPayload())

	assert.Equal(t, "49.99", f.PriceUSD)
	assert.Equal(t, "39", f.PriceGBP)
	assert.Empty(t, f.PriceEUR)
	assert.Equal(t, "0.002", f.UsageRateUSD)
	assert.Equal(t, "45.5", f.ROIHourlyRate)
	assert.Empty(t, f.ROITeamSize)
	assert.Equal(t, []string{"https://cdn.example.com/s1.png"}, f.DemoScreenshots)
}

func TestFormData_Validate(t *testing.T) {
	assert.NoError(t, sampleForm().Validate())

	f := sampleForm()
	f.Slug = "Sales Bee"
	f.SEODescription = strings.Repeat("x", 161)
	f.FAQs = []FAQ{{Answer: "only answer"}}

	errs := FieldErrors(f.Validate())
	assert.Equal(t, []string{"faqs.0.question", "seo_description", "slug"}, pathsOf(errs))
	assert.Equal(t, MsgInvalidSlug, messageFor(errs, "slug"))
}

func TestToEntity_SortsChildRows(t *testing.T) {
	p := validPayload()
	p.Prices = map[Currency]decimal.Decimal{
		CurrencyEUR: decimal.NewFromInt(3),
		CurrencyUSD: decimal.NewFromInt(1),
		CurrencyGBP: decimal.NewFromInt(2),
	}

	b := p.ToEntity()

	require.Len(t, b.Prices, 3)
	assert.Equal(t, CurrencyUSD, b.Prices[0].Currency)
	assert.Equal(t, CurrencyGBP, b.Prices[1].Currency)
	assert.Equal(t, CurrencyEUR, b.Prices[2].Currency)

	back := PayloadFromEntity(b)
	assert.Len(t, back.Prices, 3)
}

func TestNewBeeResponse_ComputesSavings(t *testing.T) {
	hours, rate, team, cost := 10.0, 50.0, 2.0, 100.0
	b := &Bee{
		ID:   7,
		Slug: "ops-bee",
		ROI: &ROIModel{Assumptions: ROIAssumptions{
			HoursSavedPerWeek: &hours, HourlyRate: &rate, TeamSize: &team, MonthlyToolCost: &cost,
		}},
		Prices: []Price{{Currency: CurrencyUSD, Amount: decimal.RequireFromString("29.99")}},
	}

	resp := NewBeeResponse(b)

	require.NotNil(t, resp.ROI)
	require.NotNil(t, resp.ROI.EstimatedMonthlySavings)
	assert.Equal(t, "4233.33", resp.ROI.EstimatedMonthlySavings.String())
	assert.Equal(t, []string{}, resp.Features)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"prices":{"USD":29.99}`)
	assert.Contains(t, string(raw), `"estimated_monthly_savings":4233.33`)
}

func TestMapErrorToHTTP(t *testing.T) {
	status, code, _, _ := MapErrorToHTTP(NewBeeNotFound())
	assert.Equal(t, 404, status)
	assert.Equal(t, CodeBeeNotFound, code)

	status, _, _, _ = MapErrorToHTTP(NewSlugAlreadyExists("x"))
	assert.Equal(t, 409, status)

	status, _, _, details := MapErrorToHTTP(NewValidationError(BeePayload{}.Validate()))
	assert.Equal(t, 400, status)
	assert.Len(t, details, 4)

	status, code, msg, _ := MapErrorToHTTP(assert.AnError)
	assert.Equal(t, 500, status)
	assert.Equal(t, "INTERNAL_ERROR", code)
	assert.Equal(t, "Internal server error", msg)
}

func TestParseCurrency(t *testing.T) {
	c, ok := ParseCurrency("gbp")
	assert.True(t, ok)
	assert.Equal(t, CurrencyGBP, c)

	_, ok = ParseCurrency("JPY")
	assert.False(t, ok)
}

func TestFormData_ValidateNumbersUseFormKeys(t *testing.T) {
	f := sampleForm()
	f.PriceUSD = "-5"
	f.PriceGBP = "1e13"
	f.PriceEUR = "9.999"
	f.UsageRateGBP = "-0.1"
	f.UsageRateUSD = "0.000000001"
	f.ROITeamSize = "-3"
	f.ROIMonthlyToolCost = "-1"
	f.ROIHourlyRate = "abc"

	errs := FieldErrors(f.Validate())
	assert.Equal(t, []string{
		"price_eur",
		"price_gbp",
		"price_usd",
		"roi_monthly_tool_cost",
		"roi_team_size",
		"usage_rate_gbp",
		"usage_rate_usd",
	}, pathsOf(errs))
	assert.Equal(t, "must be no less than 0", messageFor(errs, "price_usd"))
	assert.Equal(t, "must be less than 10000000000", messageFor(errs, "price_gbp"))
}

func TestFormData_ValidateBlankText(t *testing.T) {
	f := sampleForm()
	f.MainDescription = "   "
	f.Name = "\t"

	assert.Equal(t, []string{"main_description", "name"}, pathsOf(FieldErrors(f.Validate())))
}
