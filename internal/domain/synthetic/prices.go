package synthetic

import (
	"math"
	"strings"
	"time"

	"github.com/yanqian/agri-advisor/internal/domain/agri"
)

// VarietiesPerMarket is the number of variety quotes generated per market.
const VarietiesPerMarket = 3

// Quote is a single generated price triple in rupees per quintal.
type Quote struct {
	Min   int
	Modal int
	Max   int
}

// GeneratePrice derives a quote from the commodity's range table entry and a
// day offset. Identical inputs always give identical quotes.
func GeneratePrice(commodity string, dayOffset int) Quote {
	r, ok := commodityRanges[tableKey(commodity)]
	if !ok {
		r = defaultPriceRange
	}
	basePrice := r.min + (r.max-r.min)*0.5
	volatility := (r.max - r.min) * 0.08
	seed := mod(firstCode(commodity)*31+dayOffset*7, 100)
	fluctuation := (float64(seed)/100 - 0.5) * 2 * volatility

	modal := math.Round(basePrice + fluctuation)
	spread := float64(seed%10) * 0.005
	return Quote{
		Min:   int(math.Round(modal * (0.85 + spread))),
		Modal: int(modal),
		Max:   int(math.Round(modal * (1.05 + spread))),
	}
}

// Varieties lists the three variety names generated for a commodity.
func Varieties(commodity string) []string {
	if v, ok := commodityVarieties[tableKey(commodity)]; ok {
		return v
	}
	return defaultVarieties
}

// Markets returns the market districts quoted for a request: the requested
// district alone, or the first three known districts of the state.
func Markets(state, district string) []string {
	if d := strings.TrimSpace(district); d != "" {
		return []string{d}
	}
	districts := Districts(state)
	if len(districts) > 3 {
		districts = districts[:3]
	}
	return districts
}

// GenerateMarketPrices builds the full record set for one request. Each
// variety shifts the day offset by its first character code so varieties
// differ while staying deterministic.
func GenerateMarketPrices(commodity, state, district string, dayOffset int, fetchedAt time.Time) []agri.PriceRecord {
	markets := Markets(state, district)
	varieties := Varieties(commodity)
	arrival := fetchedAt.Format("02/01/2006")

	records := make([]agri.PriceRecord, 0, len(markets)*len(varieties))
	for mi, marketDistrict := range markets {
		for _, variety := range varieties {
			q := GeneratePrice(commodity, dayOffset+mi+firstCode(variety))
			records = append(records, agri.PriceRecord{
				State:       state,
				District:    marketDistrict,
				Market:      marketDistrict + " APMC",
				Commodity:   commodity,
				Variety:     variety,
				MinPrice:    q.Min,
				MaxPrice:    q.Max,
				ModalPrice:  q.Modal,
				ArrivalDate: arrival,
				FetchedAt:   fetchedAt,
			})
		}
	}
	return records
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
