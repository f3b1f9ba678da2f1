package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency là mã tiền tệ ISO 4217 mà catalog hỗ trợ
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
	CurrencyEUR Currency = "EUR"
)

// SupportedCurrencies theo thứ tự hiển thị
var SupportedCurrencies = []Currency{CurrencyUSD, CurrencyGBP, CurrencyEUR}

func init() {
	// prices trả về dạng number {"USD": 29.99} thay vì string
	decimal.MarshalJSONWithoutQuotes = true
}

func (c Currency) IsValid() bool {
	switch c {
	case CurrencyUSD, CurrencyGBP, CurrencyEUR:
		return true
	}
	return false
}

// ParseCurrency chấp nhận cả chữ thường ("gbp")
func ParseCurrency(raw string) (Currency, bool) {
	c := Currency(strings.ToUpper(strings.TrimSpace(raw)))
	if !c.IsValid() {
		return "", false
	}
	return c, true
}
