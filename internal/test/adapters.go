package test

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/polkiloo/printshop/internal/domain/model"
)

// RecorderStub counts business metrics in memory.
type RecorderStub struct {
	mu          sync.Mutex
	Transitions map[string]int
	Users       int
	Attachments int
}

// ObserveTransition counts kind/outcome pairs.
func (r *RecorderStub) ObserveTransition(kind, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Transitions == nil {
		r.Transitions = make(map[string]int)
	}
	r.Transitions[kind+"/"+outcome]++
}

// Count returns how many times kind ended with outcome.
func (r *RecorderStub) Count(kind, outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Transitions[kind+"/"+outcome]
}

// UserCreated counts created users.
func (r *RecorderStub) UserCreated() {
	r.mu.Lock()
	r.Users++
	r.mu.Unlock()
}

// AttachmentUploaded counts uploads.
func (r *RecorderStub) AttachmentUploaded() {
	r.mu.Lock()
	r.Attachments++
	r.mu.Unlock()
}

// ObjectStoreStub captures uploaded and deleted objects.
type ObjectStoreStub struct {
	Keys      []string
	Content   [][]byte
	Deleted   []string
	BaseURL   string
	Err       error
	DeleteErr error
}

// Upload reads content and returns BaseURL joined with key.
func (s *ObjectStoreStub) Upload(ctx context.Context, key string, content io.Reader) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	s.Keys = append(s.Keys, key)
	s.Content = append(s.Content, data)
	base := s.BaseURL
	if base == "" {
		base = "https://files.example.com/"
	}
	return base + key, nil
}

// Delete records key.
func (s *ObjectStoreStub) Delete(ctx context.Context, key string) error {
	s.Deleted = append(s.Deleted, key)
	return s.DeleteErr
}

// ReadCacheStub is an in-memory read cache recording invalidations.
type ReadCacheStub struct {
	mu            sync.Mutex
	entries       map[string][]byte
	Invalidations [][]model.ReadPath
	Purges        []uuid.UUID
	Sets          int
	GetErr        error
	SetErr        error
}

// NewReadCacheStub constructs an empty ReadCacheStub.
func NewReadCacheStub() *ReadCacheStub {
	return &ReadCacheStub{entries: make(map[string][]byte)}
}

func cacheKey(companyID uuid.UUID, path model.ReadPath) string {
	return companyID.String() + ":" + string(path)
}

// Get decodes a stored value into dest.
func (s *ReadCacheStub) Get(ctx context.Context, companyID uuid.UUID, path model.ReadPath, dest any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return false, s.GetErr
	}
	data, ok := s.entries[cacheKey(companyID, path)]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

// Set encodes and stores value.
func (s *ReadCacheStub) Set(ctx context.Context, companyID uuid.UUID, path model.ReadPath, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.entries[cacheKey(companyID, path)] = data
	s.Sets++
	return nil
}

// Has reports whether path is cached for companyID.
func (s *ReadCacheStub) Has(companyID uuid.UUID, path model.ReadPath) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[cacheKey(companyID, path)]
	return ok
}

// Invalidate drops paths and records the call.
func (s *ReadCacheStub) Invalidate(ctx context.Context, companyID uuid.UUID, paths ...model.ReadPath) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	recorded := append([]model.ReadPath(nil), paths...)
	s.Invalidations = append(s.Invalidations, recorded)
	for _, p := range paths {
		delete(s.entries, cacheKey(companyID, p))
	}
	return nil
}

// Purge drops every entry of companyID.
func (s *ReadCacheStub) Purge(ctx context.Context, companyID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Purges = append(s.Purges, companyID)
	prefix := companyID.String() + ":"
	for k := range s.entries {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(s.entries, k)
		}
	}
	return nil
}
