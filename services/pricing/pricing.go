package pricing

import (
	"fmt"
	"strings"

	"fastfast-logistics/models/booking"

	"github.com/shopspring/decimal"
)

// Flat tier prices in NGN.
var (
	HigherPrice  = decimal.NewFromInt(3500)
	MediumPrice  = decimal.NewFromInt(2500)
	LowerPrice   = decimal.NewFromInt(1500)
	DefaultPrice = decimal.NewFromInt(2000)

	UrgentFee = decimal.NewFromInt(1000)
)

var sizeSurcharge = map[booking.PackageSize]decimal.Decimal{
	booking.PackageSmall:      decimal.Zero,
	booking.PackageMedium:     decimal.NewFromInt(500),
	booking.PackageLarge:      decimal.NewFromInt(1000),
	booking.PackageExtraLarge: decimal.NewFromInt(2000),
}

type routeKey struct {
	from string
	to   string
}

// Explicit route overrides. Matched in either direction.
var routeTable = map[routeKey]decimal.Decimal{
	{"amukpe roundabout", "urakpa"}: HigherPrice,
	{"amukpe", "okirigwe"}:          decimal.NewFromInt(1200),
	{"sapele", "warri"}:             decimal.NewFromInt(3000),
	{"ogorode", "okpe"}:             decimal.NewFromInt(1800),
	{"sapele", "benin"}:             decimal.NewFromInt(4500),
}

type tier struct {
	name     string
	price    decimal.Decimal
	keywords []string
}

// Checked in order; the first tier with a matching keyword wins.
var tiers = []tier{
	{"higher", HigherPrice, []string{"urakpa", "warri", "effurun", "ughelli", "benin"}},
	{"medium", MediumPrice, []string{"okpe", "oghara", "jesse", "mosogar"}},
	{"lower", LowerPrice, []string{"amukpe", "okirigwe", "ogorode", "sapele"}},
}

func normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// Quote returns the base delivery price for a pickup/delivery pair.
// Precedence: explicit route, higher, medium, lower, default.
func Quote(pickup, delivery string) decimal.Decimal {
	from, to := normalize(pickup), normalize(delivery)

	if price, ok := routeTable[routeKey{from, to}]; ok {
		return price
	}
	if price, ok := routeTable[routeKey{to, from}]; ok {
		return price
	}

	for _, t := range tiers {
		for _, keyword := range t.keywords {
			if strings.Contains(from, keyword) || strings.Contains(to, keyword) {
				return t.price
			}
		}
	}

	return DefaultPrice
}

// Breakdown is the server-side price of a booking.
type Breakdown struct {
	Base          decimal.Decimal `json:"base"`
	SizeSurcharge decimal.Decimal `json:"sizeSurcharge"`
	UrgentFee     decimal.Decimal `json:"urgentFee"`
	Total         decimal.Decimal `json:"total"`
}

// PriceBooking adds the package size surcharge and the urgent fee to Quote.
func PriceBooking(pickup, delivery string, size booking.PackageSize, urgent bool) (Breakdown, error) {
	surcharge, ok := sizeSurcharge[size]
	if !ok {
		return Breakdown{}, fmt.Errorf("unknown package size %q", size)
	}

	b := Breakdown{
		Base:          Quote(pickup, delivery),
		SizeSurcharge: surcharge,
		UrgentFee:     decimal.Zero,
	}
	if urgent {
		b.UrgentFee = UrgentFee
	}
	b.Total = b.Base.Add(b.SizeSurcharge).Add(b.UrgentFee)
	return b, nil
}
