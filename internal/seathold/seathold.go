// Package seathold reserves seats of a travel option for pending bookings
// until they are paid or the hold expires.
package seathold

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ErrInsufficientSeats is returned when the unheld seats of a travel option
// cannot cover a new hold.
var ErrInsufficientSeats = errors.New("not enough unheld seats")

// Holder tracks temporary seat holds per travel option.
type Holder interface {
	// Hold reserves seats for bookingID, given the seats the travel option
	// still has available. Holding again for the same booking replaces the
	// previous hold.
	Hold(ctx context.Context, travelOptionID, bookingID string, seats, available int) error
	Release(ctx context.Context, travelOptionID, bookingID string) error
	// Held is the number of seats under active holds.
	Held(ctx context.Context, travelOptionID string) (int, error)
}

// KEYS[1] zset bookingID -> expiry (ms), KEYS[2] hash bookingID -> seats.
// ARGV: now, expires at, booking id, seats, available, ttl.
var holdScript = redis.NewScript(`
local expired = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
for _, id in ipairs(expired) do
	redis.call('HDEL', KEYS[2], id)
end
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])

local held = 0
for _, v in ipairs(redis.call('HVALS', KEYS[2])) do
	held = held + tonumber(v)
end
local previous = redis.call('HGET', KEYS[2], ARGV[3])
if previous then
	held = held - tonumber(previous)
end

if tonumber(ARGV[5]) - held < tonumber(ARGV[4]) then
	return {0, held}
end

redis.call('HSET', KEYS[2], ARGV[3], ARGV[4])
redis.call('ZADD', KEYS[1], ARGV[2], ARGV[3])
redis.call('PEXPIRE', KEYS[1], ARGV[6])
redis.call('PEXPIRE', KEYS[2], ARGV[6])
return {1, held}
`)

var heldScript = redis.NewScript(`
local expired = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
for _, id in ipairs(expired) do
	redis.call('HDEL', KEYS[2], id)
end
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])

local held = 0
for _, v in ipairs(redis.call('HVALS', KEYS[2])) do
	held = held + tonumber(v)
end
return held
`)

type RedisHolder struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
	log    *zap.Logger
}

func NewRedisHolder(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisHolder {
	return &RedisHolder{
		client: client,
		ttl:    ttl,
		now:    time.Now,
		log:    log.With(zap.String("component", "seathold")),
	}
}

func keys(travelOptionID string) []string {
	// hash tag keeps both keys on one cluster slot
	return []string{
		fmt.Sprintf("seat_hold:{%s}:expiry", travelOptionID),
		fmt.Sprintf("seat_hold:{%s}:seats", travelOptionID),
	}
}

func (h *RedisHolder) Hold(ctx context.Context, travelOptionID, bookingID string, seats, available int) error {
	now := h.now()
	res, err := holdScript.Run(ctx, h.client, keys(travelOptionID),
		now.UnixMilli(),
		now.Add(h.ttl).UnixMilli(),
		bookingID,
		seats,
		available,
		h.ttl.Milliseconds(),
	).Slice()
	if err != nil {
		h.log.Error("Failed to hold seats",
			zap.Error(err),
			zap.String("travel_option_id", travelOptionID),
			zap.String("booking_id", bookingID),
		)
		return fmt.Errorf("hold seats on %s: %w", travelOptionID, err)
	}

	if len(res) != 2 {
		return fmt.Errorf("hold seats on %s: unexpected reply %v", travelOptionID, res)
	}
	ok, _ := res[0].(int64)
	held, _ := res[1].(int64)
	if ok != 1 {
		h.log.Info("Seat hold refused",
			zap.String("travel_option_id", travelOptionID),
			zap.Int("requested", seats),
			zap.Int("available", available),
			zap.Int64("held", held),
		)
		return fmt.Errorf("%d requested, %d available, %d held: %w", seats, available, held, ErrInsufficientSeats)
	}

	return nil
}

func (h *RedisHolder) Release(ctx context.Context, travelOptionID, bookingID string) error {
	k := keys(travelOptionID)
	pipe := h.client.TxPipeline()
	pipe.ZRem(ctx, k[0], bookingID)
	pipe.HDel(ctx, k[1], bookingID)
	if _, err := pipe.Exec(ctx); err != nil {
		h.log.Error("Failed to release seat hold",
			zap.Error(err),
			zap.String("travel_option_id", travelOptionID),
			zap.String("booking_id", bookingID),
		)
		return fmt.Errorf("release hold %s on %s: %w", bookingID, travelOptionID, err)
	}
	return nil
}

func (h *RedisHolder) Held(ctx context.Context, travelOptionID string) (int, error) {
	held, err := heldScript.Run(ctx, h.client, keys(travelOptionID), h.now().UnixMilli()).Int()
	if err != nil {
		return 0, fmt.Errorf("count held seats on %s: %w", travelOptionID, err)
	}
	return held, nil
}

// NopHolder never holds anything; seats are only checked when a payment is
// confirmed.
type NopHolder struct{}

func (NopHolder) Hold(context.Context, string, string, int, int) error { return nil }
func (NopHolder) Release(context.Context, string, string) error        { return nil }
func (NopHolder) Held(context.Context, string) (int, error)            { return 0, nil }
