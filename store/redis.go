package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	pendingKey  = "salesbot:pending"
	answeredKey = "salesbot:answered"
	salesKey    = "salesbot:sales"
)

// RedisStore backs the three collections with Redis for deployments where
// local disk does not survive a restart. Sets map to Redis sets, the sale
// log to a list of JSON records.
type RedisStore struct {
	rdb *redis.Client
	ctx context.Context
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(addr, password string, db int) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	rs := &RedisStore{
		rdb: rdb,
		ctx: context.Background(),
	}

	if err := rdb.Ping(rs.ctx).Err(); err != nil {
		log.Fatal().Err(err).
			Str("addr", addr).
			Int("db", db).
			Msg("Redis connection failed")
	}

	log.Info().
		Str("addr", addr).
		Int("db", db).
		Msg("Redis connected successfully")

	return rs
}

func (rs *RedisStore) Pending() ([]string, error) {
	return rs.rdb.SMembers(rs.ctx, pendingKey).Result()
}

func (rs *RedisStore) MarkPending(threadID string) error {
	return rs.rdb.SAdd(rs.ctx, pendingKey, threadID).Err()
}

func (rs *RedisStore) Answered() ([]string, error) {
	return rs.rdb.SMembers(rs.ctx, answeredKey).Result()
}

func (rs *RedisStore) MarkAnswered(threadID string) error {
	return rs.rdb.SAdd(rs.ctx, answeredKey, threadID).Err()
}

func (rs *RedisStore) Sales() ([]SaleRecord, error) {
	entries, err := rs.rdb.LRange(rs.ctx, salesKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	var sales []SaleRecord
	for _, entry := range entries {
		var sale SaleRecord
		if err := json.Unmarshal([]byte(entry), &sale); err != nil {
			log.Warn().Err(err).Msg("Skipping corrupt sale record")
			continue
		}
		sales = append(sales, sale)
	}

	return sales, nil
}

func (rs *RedisStore) AddSale(sale SaleRecord) error {
	data, err := json.Marshal(sale)
	if err != nil {
		return fmt.Errorf("failed to marshal sale: %w", err)
	}

	return rs.rdb.RPush(rs.ctx, salesKey, data).Err()
}

func (rs *RedisStore) UpdateSale(index int, customer *string, amount *float64) (SaleRecord, error) {
	entry, err := rs.rdb.LIndex(rs.ctx, salesKey, int64(index)).Result()
	if err == redis.Nil {
		return SaleRecord{}, ErrSaleNotFound
	}
	if err != nil {
		return SaleRecord{}, err
	}

	var sale SaleRecord
	if err := json.Unmarshal([]byte(entry), &sale); err != nil {
		return SaleRecord{}, fmt.Errorf("corrupt sale record at index %d: %w", index, err)
	}

	if customer != nil {
		sale.Customer = *customer
	}
	if amount != nil {
		sale.Amount = *amount
	}

	data, err := json.Marshal(sale)
	if err != nil {
		return SaleRecord{}, fmt.Errorf("failed to marshal sale: %w", err)
	}

	if err := rs.rdb.LSet(rs.ctx, salesKey, int64(index), data).Err(); err != nil {
		return SaleRecord{}, err
	}

	return sale, nil
}
