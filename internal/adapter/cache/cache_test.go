package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/polkiloo/printshop/internal/config"
	"github.com/polkiloo/printshop/internal/domain/model"
	testhelpers "github.com/polkiloo/printshop/internal/test"
)

type scanPage struct {
	keys   []string
	cursor uint64
}

type redisStub struct {
	values  map[string]string
	ttls    map[string]time.Duration
	deleted [][]string
	pages   []scanPage
	matches []string
	err     error
	closed  bool
}

func newRedisStub() *redisStub {
	return &redisStub{values: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (s *redisStub) Get(_ context.Context, key string) *redis.StringCmd {
	if s.err != nil {
		return redis.NewStringResult("", s.err)
	}
	v, ok := s.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (s *redisStub) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if s.err != nil {
		return redis.NewStatusResult("", s.err)
	}
	s.values[key] = string(value.([]byte))
	s.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (s *redisStub) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if s.err != nil {
		return redis.NewIntResult(0, s.err)
	}
	s.deleted = append(s.deleted, keys)
	for _, k := range keys {
		delete(s.values, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func (s *redisStub) Scan(_ context.Context, cursor uint64, match string, _ int64) *redis.ScanCmd {
	s.matches = append(s.matches, match)
	if s.err != nil {
		return redis.NewScanCmdResult(nil, 0, s.err)
	}
	if len(s.pages) == 0 {
		return redis.NewScanCmdResult(nil, 0, nil)
	}
	page := s.pages[0]
	s.pages = s.pages[1:]
	return redis.NewScanCmdResult(page.keys, page.cursor, nil)
}

func (s *redisStub) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", s.err)
}

func (s *redisStub) Close() error {
	s.closed = true
	return nil
}

func TestKey(t *testing.T) {
	id := uuid.MustParse("0b8f1a52-1111-4c5a-9a22-6f1f1c7e1d33")
	if got := Key(id, model.OrdersPath); got != "printshop:0b8f1a52-1111-4c5a-9a22-6f1f1c7e1d33:orders" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestRedisCacheRoundTrip(t *testing.T) {
	stub := newRedisStub()
	c := newRedisCache(stub, time.Minute)
	ctx := context.Background()
	company := uuid.New()

	var got []string
	hit, err := c.Get(ctx, company, model.OrdersPath, &got)
	if err != nil || hit {
		t.Fatalf("expected clean miss, got hit=%v err=%v", hit, err)
	}

	if err := c.Set(ctx, company, model.OrdersPath, []string{"a", "b"}); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if ttl := stub.ttls[Key(company, model.OrdersPath)]; ttl != time.Minute {
		t.Fatalf("expected configured ttl, got %v", ttl)
	}

	hit, err = c.Get(ctx, company, model.OrdersPath, &got)
	if err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if len(got) != 2 || got[1] != "b" {
		t.Fatalf("unexpected decoded value %v", got)
	}
}

func TestRedisCacheGetErrors(t *testing.T) {
	stub := newRedisStub()
	c := newRedisCache(stub, time.Minute)
	company := uuid.New()

	stub.values[Key(company, model.StatusesPath)] = "{not json"
	var dest []model.OrderStatus
	if _, err := c.Get(context.Background(), company, model.StatusesPath, &dest); err == nil {
		t.Fatal("expected decode error")
	}

	stub.err = errors.New("connection refused")
	if _, err := c.Get(context.Background(), company, model.StatusesPath, &dest); err == nil {
		t.Fatal("expected transport error")
	}
	if err := c.Set(context.Background(), company, model.StatusesPath, dest); err == nil {
		t.Fatal("expected set error")
	}
}

func TestRedisCacheInvalidateExactPaths(t *testing.T) {
	stub := newRedisStub()
	c := newRedisCache(stub, time.Minute)
	company := uuid.New()
	order := uuid.New()

	if err := c.Invalidate(context.Background(), company); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stub.deleted) != 0 {
		t.Fatalf("expected no delete for empty path set, got %v", stub.deleted)
	}

	if err := c.Invalidate(context.Background(), company, model.OrdersPath, model.OrderPath(order)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{Key(company, model.OrdersPath), Key(company, model.OrderPath(order))}
	if len(stub.deleted) != 1 || len(stub.deleted[0]) != 2 || stub.deleted[0][0] != want[0] || stub.deleted[0][1] != want[1] {
		t.Fatalf("expected delete of %v, got %v", want, stub.deleted)
	}

	stub.err = errors.New("down")
	if err := c.Invalidate(context.Background(), company, model.OrdersPath); err == nil {
		t.Fatal("expected error")
	}
}

func TestRedisCachePurgeWalksCursor(t *testing.T) {
	stub := newRedisStub()
	stub.pages = []scanPage{
		{keys: []string{"printshop:x:orders"}, cursor: 7},
		{keys: nil, cursor: 9},
		{keys: []string{"printshop:x:statuses"}, cursor: 0},
	}
	c := newRedisCache(stub, time.Minute)
	company := uuid.New()

	if err := c.Purge(context.Background(), company); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stub.matches) != 3 || stub.matches[0] != "printshop:"+company.String()+":*" {
		t.Fatalf("unexpected scans %v", stub.matches)
	}
	if len(stub.deleted) != 2 {
		t.Fatalf("expected two delete batches, got %v", stub.deleted)
	}

	stub.err = errors.New("down")
	if err := c.Purge(context.Background(), company); err == nil {
		t.Fatal("expected scan error")
	}
}

func TestRedisCachePingAndClose(t *testing.T) {
	stub := newRedisStub()
	c := newRedisCache(stub, time.Minute)
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
	if err := c.Close(); err != nil || !stub.closed {
		t.Fatalf("expected client close, err=%v", err)
	}
}

func TestNewRedisCacheRejectsBadURL(t *testing.T) {
	if _, err := NewRedisCache("http://not-redis", time.Minute); err == nil {
		t.Fatal("expected parse error")
	}
	c, err := NewRedisCache("redis://localhost:6379/0", time.Minute)
	if err != nil || c == nil {
		t.Fatalf("unexpected result %v err=%v", c, err)
	}
	_ = c.Close()
}

func TestNopCache(t *testing.T) {
	var c Store = NopCache{}
	ctx := context.Background()
	var dest any
	if hit, err := c.Get(ctx, uuid.New(), model.OrdersPath, &dest); hit || err != nil {
		t.Fatalf("expected silent miss, got %v %v", hit, err)
	}
	if c.Set(ctx, uuid.New(), model.OrdersPath, 1) != nil || c.Invalidate(ctx, uuid.New(), model.OrdersPath) != nil || c.Purge(ctx, uuid.New()) != nil {
		t.Fatal("expected nop cache to never fail")
	}
}

func TestNewStore(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	lc := &testhelpers.LifecycleRecorder{}
	store, err := newStore(storeParams{Lifecycle: lc, Config: &config.Config{}, Logger: logger})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.(NopCache); !ok {
		t.Fatalf("expected nop cache without redis url, got %T", store)
	}
	if len(lc.Hooks) != 0 {
		t.Fatalf("expected no hooks for nop cache, got %d", len(lc.Hooks))
	}

	lc = &testhelpers.LifecycleRecorder{}
	store, err = newStore(storeParams{Lifecycle: lc, Config: &config.Config{RedisURL: "redis://localhost:6379/1", CacheTTL: time.Second}, Logger: logger})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.(*RedisCache); !ok {
		t.Fatalf("expected redis cache, got %T", store)
	}
	if len(lc.Hooks) != 1 {
		t.Fatalf("expected lifecycle hook, got %d", len(lc.Hooks))
	}
	if err := lc.Hooks[0].OnStop(context.Background()); err != nil {
		t.Fatalf("unexpected stop error: %v", err)
	}

	if _, err := newStore(storeParams{Lifecycle: lc, Config: &config.Config{RedisURL: "::bad"}, Logger: logger}); err == nil {
		t.Fatal("expected error for bad url")
	}
}
