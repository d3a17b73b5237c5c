// Package storage persists assessment state as JSON values under fixed keys
// of an injected key-value medium.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/Veraticus/gxpassess/internal/apperr"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

// Watcher is implemented by backends that can observe writes made outside
// the current process.
type Watcher interface {
	Watch(ctx context.Context, changed func(key string)) error
}

// Store is the typed persistence adapter over a KV.
type Store struct {
	kv          KV
	logger      logger.Logger
	subscribers map[int]func(key string)
	saveDelay   time.Duration
	nextID      int
	mu          sync.Mutex
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithSaveDelay makes Delay wait d before a finalizing write.
func WithSaveDelay(d time.Duration) StoreOption {
	return func(s *Store) {
		s.saveDelay = d
	}
}

// WithLogger sets the store logger.
func WithLogger(log logger.Logger) StoreOption {
	return func(s *Store) {
		s.logger = log
	}
}

// NewStore returns a Store over kv.
func NewStore(kv KV, opts ...StoreOption) *Store {
	s := &Store{
		kv:          kv,
		logger:      logger.GetGlobalLogger(),
		subscribers: make(map[int]func(string)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// KV returns the underlying medium.
func (s *Store) KV() KV { return s.kv }

// Load decodes the value under key into v, which must be a non-nil pointer
// holding the caller's default. It reports whether a value was loaded. Missing
// and malformed data leave v untouched; read failures and malformed data are
// logged, never returned.
func (s *Store) Load(ctx context.Context, key string, v any) bool {
	data, found, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Failed to read stored value, using default", "key", key, "error", apperr.StorageRead(key, err))
		return false
	}
	if !found {
		return false
	}

	target := reflect.ValueOf(v)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		s.logger.Error("Load target must be a non-nil pointer", "key", key, "type", fmt.Sprintf("%T", v))
		return false
	}

	// Decode into a scratch value so a partial decode never leaks into v.
	scratch := reflect.New(target.Elem().Type())
	if err := json.Unmarshal(data, scratch.Interface()); err != nil {
		s.logger.Warn("Malformed stored value, using default", "key", key, "error", apperr.StorageRead(key, err))
		return false
	}
	target.Elem().Set(scratch.Elem())
	return true
}

// Save encodes v as JSON under key and notifies subscribers.
func (s *Store) Save(ctx context.Context, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperr.StorageWrite(key, fmt.Errorf("encoding value: %w", err))
	}
	if err := s.kv.Put(ctx, key, data); err != nil {
		return apperr.StorageWrite(key, err)
	}
	s.logger.Debug("Saved value", "key", key)
	s.Notify(key)
	return nil
}

// Delete removes key and notifies subscribers.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, key); err != nil {
		return apperr.StorageWrite(key, err)
	}
	s.Notify(key)
	return nil
}

// Keys lists stored keys with the given prefix.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.kv.Keys(ctx, prefix)
	if err != nil {
		return nil, apperr.StorageRead(prefix+"*", err)
	}
	return keys, nil
}

// Delay waits the configured save delay. It returns early with the context
// error when ctx is cancelled.
func (s *Store) Delay(ctx context.Context) error {
	if s.saveDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Subscribe registers fn to be called with the key of every change. The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func(key string)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Notify calls every subscriber with key.
func (s *Store) Notify(key string) {
	s.mu.Lock()
	fns := make([]func(string), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(key)
	}
}

// Watch forwards changes observed by the backend to subscribers until ctx is
// cancelled. Backends without a watcher return immediately.
func (s *Store) Watch(ctx context.Context) error {
	w, ok := s.kv.(Watcher)
	if !ok {
		return nil
	}
	return w.Watch(ctx, s.Notify)
}

// LoadOr returns the value under key, or def when it is missing or malformed.
func LoadOr[T any](ctx context.Context, s *Store, key string, def T) T {
	v := def
	s.Load(ctx, key, &v)
	return v
}
