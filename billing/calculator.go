// Package billing computes checkout charges. All arithmetic is integer-only
// in the smallest currency unit; rates are held in basis points so the
// mandated floor rounding falls out of integer division.
package billing

import (
	"math"
	"strconv"
	"strings"

	"luxpos/entities"
)

// DefaultRateBasisPoints is used when a rate setting is absent or
// unparseable: 0.10.
const DefaultRateBasisPoints = 1000

var serviceRateKeys = []string{"service_rate", "サービス料率"}
var taxRateKeys = []string{"tax_rate", "消費税率"}

type Rates struct {
	ServiceBasisPoints int64
	TaxBasisPoints     int64
}

func DefaultRates() Rates {
	return Rates{
		ServiceBasisPoints: DefaultRateBasisPoints,
		TaxBasisPoints:     DefaultRateBasisPoints,
	}
}

// RatesFromSettings reads the two billing rates from the key/value settings
// collection. Keys are matched against an ordered candidate list, first
// match wins.
func RatesFromSettings(settings map[string]string) Rates {
	return Rates{
		ServiceBasisPoints: rateFrom(settings, serviceRateKeys),
		TaxBasisPoints:     rateFrom(settings, taxRateKeys),
	}
}

func rateFrom(settings map[string]string, keys []string) int64 {
	for _, key := range keys {
		raw, ok := settings[key]
		if !ok {
			continue
		}
		if bp, ok := parseRate(raw); ok {
			return bp
		}
	}
	return DefaultRateBasisPoints
}

// parseRate accepts a fractional rate such as "0.10". Anything that does not
// parse to a rate in [0, 1] is rejected.
func parseRate(raw string) (int64, bool) {
	rate, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || rate < 0 || rate > 1 {
		return 0, false
	}
	return int64(math.Round(rate * 10000)), true
}

// Compute derives the checkout totals from the summed line totals. The
// discount is signed; a negative value reduces the subtotal, which clamps at
// zero. Service fee and tax are floored independently, never on the
// combined total.
func Compute(lineTotalSum int64, discount int64, rates Rates) entities.Totals {
	subtotal := lineTotalSum + discount
	if subtotal < 0 {
		subtotal = 0
	}

	serviceFee := subtotal * rates.ServiceBasisPoints / 10000
	tax := subtotal * rates.TaxBasisPoints / 10000

	return entities.Totals{
		Subtotal:   subtotal,
		ServiceFee: serviceFee,
		Tax:        tax,
		Discount:   discount,
		Total:      subtotal + serviceFee + tax,
	}
}
