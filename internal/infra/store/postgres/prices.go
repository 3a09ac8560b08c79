package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/yanqian/agri-advisor/internal/domain/agri"
	"github.com/yanqian/agri-advisor/internal/domain/market"
)

// FindPrices implements market.PriceStore. Only the newest set for the
// query is returned.
func (s *Store) FindPrices(ctx context.Context, q market.Query) ([]agri.PriceRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT state, district, market, commodity, variety, min_price, max_price, modal_price, arrival_date, fetched_at
		FROM market_prices
		WHERE set_key = $1
		  AND fetched_at = (SELECT max(fetched_at) FROM market_prices WHERE set_key = $1)
		ORDER BY id
	`, q.Key())
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row rowScanner) (agri.PriceRecord, error) {
		var p agri.PriceRecord
		err := row.Scan(&p.State, &p.District, &p.Market, &p.Commodity, &p.Variety, &p.MinPrice, &p.MaxPrice, &p.ModalPrice, &p.ArrivalDate, &p.FetchedAt)
		if err == nil {
			p.FetchedAt = p.FetchedAt.UTC()
		}
		return p, err
	})
}

// SavePrices implements market.PriceStore. Older sets are left in place.
func (s *Store) SavePrices(ctx context.Context, q market.Query, records []agri.PriceRecord) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(records))
	for _, p := range records {
		rows = append(rows, []any{q.Key(), p.State, p.District, p.Market, p.Commodity, p.Variety, p.MinPrice, p.MaxPrice, p.ModalPrice, p.ArrivalDate, p.FetchedAt})
	}
	_, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{"market_prices"},
		[]string{"set_key", "state", "district", "market", "commodity", "variety", "min_price", "max_price", "modal_price", "arrival_date", "fetched_at"},
		pgx.CopyFromRows(rows),
	)
	return err
}

var _ market.PriceStore = (*Store)(nil)
