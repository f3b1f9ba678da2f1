package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ===================================
// CONSTANTS
// ===================================

const (
	CurrencyCookieName   = "currencyPreference"
	CurrencyCookieMaxAge = 60 * 60 * 24 * 365 // 1 year in seconds

	ContextKeyCurrency = "currency"

	CurrencyUSD = "USD"
	CurrencyGBP = "GBP"
	CurrencyEUR = "EUR"
)

// 27 EU member states (ISO 3166-1 alpha-2)
var euCountries = map[string]struct{}{
	"AT": {}, "BE": {}, "BG": {}, "HR": {}, "CY": {}, "CZ": {}, "DK": {},
	"EE": {}, "FI": {}, "FR": {}, "DE": {}, "GR": {}, "HU": {}, "IE": {},
	"IT": {}, "LV": {}, "LT": {}, "LU": {}, "MT": {}, "NL": {}, "PL": {},
	"PT": {}, "RO": {}, "SK": {}, "SI": {}, "ES": {}, "SE": {},
}

// ===================================
// MIDDLEWARE CONFIGURATION
// ===================================

type CurrencyMiddlewareConfig struct {
	// Header chứa country code, đọc theo thứ tự, lấy giá trị non-empty đầu tiên
	CountryHeaders []string
	CookiePath     string
	CookieDomain   string
	CookieSecure   bool
	// Request có path bắt đầu bằng các prefix này được bỏ qua
	SkipPrefixes []string
}

func DefaultCurrencyMiddlewareConfig() CurrencyMiddlewareConfig {
	return CurrencyMiddlewareConfig{
		CountryHeaders: []string{"X-Vercel-IP-Country", "CF-IPCountry"},
		CookiePath:     "/",
		CookieSecure:   false,
		SkipPrefixes:   []string{"/static/", "/uploads/", "/_next/static", "/_next/image", "/favicon.ico"},
	}
}

// ResolveCurrency chọn currency cho request.
// Cookie đã có luôn thắng (không validate lại), sau đó mới tới country.
func ResolveCurrency(cookieValue, country string) string {
	if cookieValue != "" {
		return cookieValue
	}
	return CurrencyForCountry(country)
}

// CurrencyForCountry: GB/UK → GBP, EU → EUR, còn lại USD
func CurrencyForCountry(country string) string {
	country = strings.ToUpper(strings.TrimSpace(country))
	if country == "GB" || country == "UK" {
		return CurrencyGBP
	}
	if _, ok := euCountries[country]; ok {
		return CurrencyEUR
	}
	return CurrencyUSD
}

// CurrencyMiddleware set cookie currencyPreference cho mọi request không phải static asset
// và đưa currency vào gin context
func CurrencyMiddleware(config CurrencyMiddlewareConfig) gin.HandlerFunc {
	if config.CookiePath == "" {
		config.CookiePath = "/"
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range config.SkipPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		existing, _ := c.Cookie(CurrencyCookieName)

		var country string
		for _, header := range config.CountryHeaders {
			if v := c.GetHeader(header); v != "" {
				country = v
				break
			}
		}

		currency := ResolveCurrency(existing, country)

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(
			CurrencyCookieName,
			currency,
			CurrencyCookieMaxAge,
			config.CookiePath,
			config.CookieDomain,
			config.CookieSecure,
			false, // frontend JS cần đọc được cookie
		)

		c.Set(ContextKeyCurrency, currency)
		c.Next()
	}
}

// GetCurrency lấy currency đã resolve từ context, rỗng nếu middleware không chạy
func GetCurrency(c *gin.Context) string {
	return c.GetString(ContextKeyCurrency)
}
