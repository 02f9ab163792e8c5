// Package cart owns the in-memory cart and keeps it in step with a
// key/value storage slot.
//
// A Store starts empty, is rehydrated once by Load, and writes the whole
// list back under a single key after every mutation. A mutation only becomes
// visible in memory once its write has succeeded, so Products always matches
// the last list that reached storage.
package cart

import (
	"context"
	"errors"
	"fmt"
	"go-marketplace/models"
	"go-marketplace/storage"
	"slices"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

const DefaultStorageKey = "@GoMarketplace:cart"

var (
	ErrNotLoaded   = errors.New("cart store has not been loaded")
	ErrNotSaved    = errors.New("cart not saved")
	ErrInvalidItem = errors.New("cart item requires an id")
)

type Store struct {
	storage storage.KeyValueStorage
	key     string
	log     *logrus.Entry

	maxRetries    uint64
	retryInterval time.Duration
	maxElapsed    time.Duration

	loadOnce sync.Once
	// writeMu serializes mutations end to end, including notification.
	writeMu  sync.Mutex

	mu     sync.RWMutex
	items  []models.CartItem
	loaded bool

	subMu   sync.Mutex
	subs    []subscriber
	nextSub int
}

type subscriber struct {
	id int
	fn func([]models.CartItem)
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithRetry configures how failed writes are retried. maxRetries counts the
// attempts after the first one.
func WithRetry(maxRetries uint64, initialInterval, maxElapsed time.Duration) Option {
	return func(s *Store) {
		s.maxRetries = maxRetries
		s.retryInterval = initialInterval
		s.maxElapsed = maxElapsed
	}
}

func WithLogger(log *logrus.Entry) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

func New(kv storage.KeyValueStorage, opts ...Option) *Store {
	s := &Store{
		storage:       kv,
		key:           DefaultStorageKey,
		log:           logrus.NewEntry(logrus.StandardLogger()),
		maxRetries:    3,
		retryInterval: 100 * time.Millisecond,
		maxElapsed:    5 * time.Second,
		items:         []models.CartItem{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithFields(logrus.Fields{"component": "cart", "key": s.key})
	return s
}

func (s *Store) Key() string {
	return s.key
}

// Load reads the persisted cart once. A missing slot, a slot that stays
// unreadable after retries and a malformed payload all leave the cart empty.
// Rows with a quantity below one are dropped. Calls after the first are
// no-ops.
func (s *Store) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.loadOnce.Do(func() {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()

		items := s.read(ctx)

		s.mu.Lock()
		s.items = items
		s.loaded = true
		s.mu.Unlock()

		s.log.WithField("items", len(items)).Info("cart loaded")
		s.notify(items)
	})
	return nil
}

func (s *Store) read(ctx context.Context) []models.CartItem {
	var (
		raw   string
		found bool
	)
	err := backoff.RetryNotify(func() error {
		var err error
		raw, found, err = s.storage.Get(ctx, s.key)
		return err
	}, s.policy(ctx), func(err error, wait time.Duration) {
		s.log.WithError(err).WithField("retry_in", wait).Warn("cart read failed, retrying")
	})
	if err != nil {
		s.log.WithError(err).Warn("cart storage unreadable, starting with an empty cart; the next write replaces the stored cart")
		return []models.CartItem{}
	}
	if !found {
		return []models.CartItem{}
	}

	items, err := models.DecodeCart(raw)
	if err != nil {
		s.log.WithError(err).Warn("stored cart is malformed, starting with an empty cart")
		return []models.CartItem{}
	}

	kept := slices.DeleteFunc(items, func(item models.CartItem) bool {
		return item.Quantity < 1
	})
	if dropped := len(items) - len(kept); dropped > 0 {
		s.log.WithField("dropped", dropped).Warn("stored cart had rows without a positive quantity")
	}
	return kept
}

// Ping reports whether the storage backend is reachable. Backends without a
// health check always report nil.
func (s *Store) Ping(ctx context.Context) error {
	return storage.Ping(ctx, s.storage)
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Products returns a copy of the current cart in insertion order.
func (s *Store) Products() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// AddToCart appends item with quantity 1. An existing row with the same id is
// left alone; the new row is added after it.
//
// Like Increment and Decrement it returns the list it committed.
func (s *Store) AddToCart(ctx context.Context, item models.NewCartItem) ([]models.CartItem, error) {
	if item.ID == "" {
		return nil, ErrInvalidItem
	}
	return s.mutate(ctx, "add", func(items []models.CartItem) []models.CartItem {
		return append(items, item.WithQuantity(1))
	})
}

// Increment adds one to every row whose id matches.
func (s *Store) Increment(ctx context.Context, id string) ([]models.CartItem, error) {
	return s.mutate(ctx, "increment", func(items []models.CartItem) []models.CartItem {
		for i := range items {
			if items[i].ID == id {
				items[i].Quantity++
			}
		}
		return items
	})
}

// Decrement removes one from every row whose id matches and drops rows that
// reach zero.
func (s *Store) Decrement(ctx context.Context, id string) ([]models.CartItem, error) {
	return s.mutate(ctx, "decrement", func(items []models.CartItem) []models.CartItem {
		next := items[:0]
		for _, item := range items {
			if item.ID == id {
				item.Quantity--
			}
			if item.Quantity > 0 {
				next = append(next, item)
			}
		}
		return next
	})
}

func (s *Store) mutate(ctx context.Context, op string, apply func([]models.CartItem) []models.CartItem) ([]models.CartItem, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	loaded := s.loaded
	current := slices.Clone(s.items)
	s.mu.RUnlock()

	if !loaded {
		return nil, ErrNotLoaded
	}

	next := apply(current)
	if next == nil {
		next = []models.CartItem{}
	}

	if err := s.persist(ctx, next); err != nil {
		s.log.WithError(err).WithField("op", op).Error("cart mutation not saved")
		return nil, err
	}

	s.mu.Lock()
	s.items = next
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"op": op, "items": len(next)}).Debug("cart saved")
	s.notify(next)
	return slices.Clone(next), nil
}

func (s *Store) persist(ctx context.Context, items []models.CartItem) error {
	raw, err := models.EncodeCart(items)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotSaved, err)
	}

	err = backoff.RetryNotify(func() error {
		return s.storage.Set(ctx, s.key, raw)
	}, s.policy(ctx), func(err error, wait time.Duration) {
		s.log.WithError(err).WithField("retry_in", wait).Warn("cart write failed, retrying")
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotSaved, err)
	}
	return nil
}

func (s *Store) policy(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.retryInterval
	b.MaxElapsedTime = s.maxElapsed
	return backoff.WithContext(backoff.WithMaxRetries(b, s.maxRetries), ctx)
}
