package redisstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/vibelabs/pov-video/internal/video"
)

const keyPrefix = "pov:video:"

// Store is the Redis-backed status store. Records are JSON blobs, one key per
// video id; updates use WATCH so the read-modify-write is atomic per key.
type Store struct {
	rdb *redis.Client
}

func New(addr, password string, db int) *Store {
	return &Store{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// NewWithClient wraps an existing client, used by tests.
func NewWithClient(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func key(id string) string { return keyPrefix + id }

func (s *Store) Create(ctx context.Context, rec *video.VideoStatus) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	set, err := s.rdb.SetNX(ctx, key(rec.VideoID), b, 0).Result()
	if err != nil {
		return err
	}
	if !set {
		return video.ErrDuplicateID
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*video.VideoStatus, error) {
	b, err := s.rdb.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, video.ErrNotFound
		}
		return nil, err
	}
	var rec video.VideoStatus
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) Update(ctx context.Context, id string, upd video.StatusUpdate) (*video.VideoStatus, error) {
	k := key(id)
	var merged *video.VideoStatus

	txn := func(tx *redis.Tx) error {
		b, err := tx.Get(ctx, k).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return video.ErrNotFound
			}
			return err
		}
		var rec video.VideoStatus
		if err := json.Unmarshal(b, &rec); err != nil {
			return err
		}
		video.ApplyUpdate(&rec, upd)
		out, err := json.Marshal(&rec)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, out, 0)
			return nil
		})
		if err != nil {
			return err
		}
		merged = &rec
		return nil
	}

	// Retry on write conflicts; only this key is watched.
	for i := 0; i < 10; i++ {
		err := s.rdb.Watch(ctx, txn, k)
		if err == nil {
			return merged, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, errors.New("redisstore: update contention")
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	n, err := s.rdb.Del(ctx, key(id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
