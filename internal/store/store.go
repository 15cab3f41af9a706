// Package store holds the application state in memory and writes the whole
// snapshot to a blob backend after every change.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/diewo77/go-cotizaciones/internal/models"
	"github.com/google/uuid"
)

// DefaultKey is the blob key the snapshot is stored under.
const DefaultKey = "cotizaciones_app_data"

// ErrBlobNotFound is returned by a Backend when nothing is stored yet.
var ErrBlobNotFound = errors.New("snapshot not found")

// Backend persists the serialised snapshot.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Op names the kind of mutation reported to subscribers.
type Op string

const (
	OpAdd     Op = "add"
	OpUpdate  Op = "update"
	OpDelete  Op = "delete"
	OpReplace Op = "replace"
)

// Change describes one committed mutation. PersistErr is set when the
// snapshot could not be written; the in-memory state is still updated.
type Change struct {
	Collection string
	Op         Op
	ID         string
	PersistErr error
}

// Options configures a Store.
type Options struct {
	Key     string
	Logger  *slog.Logger
	Now     func() time.Time
	NewID   func() string
	Timeout time.Duration
}

// Store is the single owner of all collections.
type Store struct {
	mu      sync.RWMutex
	snap    models.Snapshot
	backend Backend
	key     string
	log     *slog.Logger
	now     func() time.Time
	newID   func() string
	timeout time.Duration

	subMu sync.RWMutex
	subs  []func(Change)

	Clients    *Collection[models.Client]
	Products   *Collection[models.Product]
	Services   *Collection[models.Service]
	Quotations *Collection[models.Quotation]
}

// Open loads the last snapshot from backend. A missing, unreadable or
// malformed snapshot is logged and replaced by the default state; Open never
// fails.
func Open(ctx context.Context, backend Backend, opts Options) *Store {
	s := &Store{
		snap:    models.DefaultSnapshot(),
		backend: backend,
		key:     opts.Key,
		log:     opts.Logger,
		now:     opts.Now,
		newID:   opts.NewID,
		timeout: opts.Timeout,
	}
	if s.key == "" {
		s.key = DefaultKey
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.timeout <= 0 {
		s.timeout = 5 * time.Second
	}
	s.Clients = &Collection[models.Client]{store: s, name: "clientes",
		items: func(sn *models.Snapshot) *[]models.Client { return &sn.Clients }}
	s.Products = &Collection[models.Product]{store: s, name: "productos",
		items: func(sn *models.Snapshot) *[]models.Product { return &sn.Products }}
	s.Services = &Collection[models.Service]{store: s, name: "servicios",
		items: func(sn *models.Snapshot) *[]models.Service { return &sn.Services }}
	s.Quotations = &Collection[models.Quotation]{store: s, name: "cotizaciones",
		items: func(sn *models.Snapshot) *[]models.Quotation { return &sn.Quotations }}

	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	if s.backend == nil {
		return
	}
	data, err := s.backend.Load(ctx, s.key)
	switch {
	case errors.Is(err, ErrBlobNotFound):
		s.log.Info("no stored snapshot, starting from defaults", "key", s.key)
		return
	case err != nil:
		s.log.Error("snapshot load failed, starting from defaults", "key", s.key, "error", err)
		return
	}
	snap, err := models.DecodeSnapshot(data)
	if err != nil {
		s.log.Error("snapshot is malformed, starting from defaults", "key", s.key, "error", err)
		return
	}
	s.snap = snap
	s.log.Info("snapshot loaded",
		"clientes", len(snap.Clients),
		"productos", len(snap.Products),
		"servicios", len(snap.Services),
		"cotizaciones", len(snap.Quotations))
}

// Subscribe registers fn to be called after every committed mutation.
func (s *Store) Subscribe(fn func(Change)) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs = append(s.subs, fn)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySnapshot(s.snap)
}

// Replace swaps the whole state, as an import does.
func (s *Store) Replace(snap models.Snapshot) {
	s.commit("*", OpReplace, "", func(cur *models.Snapshot) bool {
		*cur = copySnapshot(snap)
		return true
	})
}

// Company returns the company profile.
func (s *Store) Company() models.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Company
}

// UpdateCompany merges the supplied fields into the profile and returns the result.
func (s *Store) UpdateCompany(patch models.CompanyPatch) models.Company {
	var out models.Company
	s.commit("empresa", OpUpdate, "", func(cur *models.Snapshot) bool {
		cur.Company = patch.Apply(cur.Company)
		out = cur.Company
		return true
	})
	return out
}

// commit applies fn under the write lock and, if it reports a change,
// persists the full snapshot before releasing the lock so writes land in
// mutation order.
func (s *Store) commit(collection string, op Op, id string, fn func(*models.Snapshot) bool) bool {
	s.mu.Lock()
	if !fn(&s.snap) {
		s.mu.Unlock()
		return false
	}
	persistErr := s.persistLocked()
	s.mu.Unlock()

	ch := Change{Collection: collection, Op: op, ID: id, PersistErr: persistErr}
	s.subMu.RLock()
	subs := append([]func(Change){}, s.subs...)
	s.subMu.RUnlock()
	for _, fn := range subs {
		fn(ch)
	}
	return true
}

func (s *Store) persistLocked() error {
	if s.backend == nil {
		return nil
	}
	data, err := s.snap.Encode()
	if err != nil {
		s.log.Error("snapshot encode failed", "error", err)
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.backend.Save(ctx, s.key, data); err != nil {
		s.log.Error("snapshot save failed", "key", s.key, "error", err)
		return err
	}
	return nil
}

func copySnapshot(in models.Snapshot) models.Snapshot {
	out := in
	out.Clients = append([]models.Client{}, in.Clients...)
	out.Products = append([]models.Product{}, in.Products...)
	out.Services = append([]models.Service{}, in.Services...)
	out.Quotations = append([]models.Quotation{}, in.Quotations...)
	return out
}
