package valkeystore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/agri-advisor/internal/domain/agri"
	"github.com/yanqian/agri-advisor/internal/domain/market"
)

// PriceStore keeps the latest price set per query in Valkey. Entries expire
// after the freshness window, so a miss and a stale set look the same.
type PriceStore struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// NewPriceStore constructs the store.
func NewPriceStore(client valkey.Client, prefix string, ttl time.Duration) *PriceStore {
	if prefix == "" {
		prefix = "agri"
	}
	return &PriceStore{client: client, prefix: prefix, ttl: ttl}
}

// FindPrices implements market.PriceStore.
func (s *PriceStore) FindPrices(ctx context.Context, q market.Query) ([]agri.PriceRecord, error) {
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.key(q)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}
	var records []agri.PriceRecord
	if err := json.Unmarshal([]byte(payload), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SavePrices implements market.PriceStore.
func (s *PriceStore) SavePrices(ctx context.Context, q market.Query, records []agri.PriceRecord) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.key(q)).Value(string(payload))
	var cmd valkey.Completed
	if s.ttl > 0 {
		ttl := s.ttl
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

// Ping implements store.Pinger.
func (s *PriceStore) Ping(ctx context.Context) error {
	return s.client.Do(ctx, s.client.B().Ping().Build()).Error()
}

func (s *PriceStore) key(q market.Query) string {
	return s.prefix + ":prices:" + q.Key()
}

var _ market.PriceStore = (*PriceStore)(nil)
