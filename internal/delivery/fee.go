package delivery

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Calculator computes the courier fee for an order. It is a pure value
// object: Quote has no side effects, so the same inputs always produce the
// same quote whether it runs for a storefront preview or inside the
// checkout transaction.
type Calculator struct {
	freeThreshold decimal.Decimal
	couponCode    string
	regionRates   map[string]int64
	defaultRate   int64
}

type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Fee      decimal.Decimal `json:"delivery_fee"`
	Total    decimal.Decimal `json:"total_amount"`
}

// Flat rates per delivery region, from the courier's Kerala zone bands.
// Unknown regions fall back to DefaultRate.
var defaultRegionRates = map[string]int64{
	"ernakulam":          50,
	"kochi":              100,
	"fort kochi":         150,
	"mattancherry":       150,
	"aluva":              150,
	"kalamassery":        150,
	"tripunithura":       200,
	"kottayam":           200,
	"thrissur":           200,
	"kozhikode":          200,
	"thiruvananthapuram": 200,
}

const (
	// Orders at or above this subtotal ship free, regardless of region
	// or coupon.
	FreeDeliveryThreshold = 1000

	// Flat rate applied when the region is not in the zone table.
	DefaultRate = 150

	// The single recognized free-shipping coupon, matched
	// case-insensitively.
	FreeShippingCoupon = "FREESHIP"
)

func NewCalculator(freeThreshold int64, couponCode string, regionRates map[string]int64, defaultRate int64) *Calculator {
	if regionRates == nil {
		regionRates = defaultRegionRates
	}
	return &Calculator{
		freeThreshold: decimal.NewFromInt(freeThreshold),
		couponCode:    strings.ToUpper(strings.TrimSpace(couponCode)),
		regionRates:   regionRates,
		defaultRate:   defaultRate,
	}
}

func NewDefaultCalculator() *Calculator {
	return NewCalculator(FreeDeliveryThreshold, FreeShippingCoupon, defaultRegionRates, DefaultRate)
}

// Quote applies, in order: free-delivery threshold, coupon, region flat
// rate. The returned total is subtotal + fee and never dips below the
// subtotal.
func (c *Calculator) Quote(subtotal decimal.Decimal, region string, couponCode string) Quote {
	fee := decimal.Zero

	switch {
	case subtotal.GreaterThanOrEqual(c.freeThreshold):
		// Free delivery overrides region and coupon.
	case c.couponMatches(couponCode):
		// Recognized coupon waives the fee below the threshold.
	default:
		fee = decimal.NewFromInt(c.rateFor(region))
	}

	return Quote{
		Subtotal: subtotal,
		Fee:      fee,
		Total:    subtotal.Add(fee),
	}
}

func (c *Calculator) couponMatches(code string) bool {
	if c.couponCode == "" {
		return false
	}
	return strings.ToUpper(strings.TrimSpace(code)) == c.couponCode
}

func (c *Calculator) rateFor(region string) int64 {
	key := strings.ToLower(strings.TrimSpace(region))
	if rate, ok := c.regionRates[key]; ok {
		return rate
	}
	return c.defaultRate
}
