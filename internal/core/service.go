package core

import (
	"context"
	"fmt"
	"time"
)

// LatestInvoiceCount is the number of invoices shown on the overview.
const LatestInvoiceCount = 5

// Invalidator drops cached listings of an entity after it changes.
type Invalidator interface {
	Invalidate(entity string)
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(string) {}

// Service provides listing and mutation operations over registered entities.
type Service struct {
	store Gateway
	cache Invalidator
	now   func() time.Time
}

// NewService creates a new Service. cache may be nil.
func NewService(store Gateway, cache Invalidator) *Service {
	if cache == nil {
		cache = noopInvalidator{}
	}
	return &Service{
		store: store,
		cache: cache,
		now:   time.Now,
	}
}

// SetClock replaces the time source used by insert hooks.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Entities returns information about all registered entities.
func (s *Service) Entities() []EntityInfo {
	defs := All()
	infos := make([]EntityInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}

// Definition returns the definition for an entity key or ErrUnknownEntity.
func (s *Service) Definition(entity string) (EntityDefinition, error) {
	return MustGet(entity)
}

// Get returns a single row with its form fields, or ErrNotFound.
func (s *Service) Get(ctx context.Context, entity, id string) (Row, error) {
	def, err := MustGet(entity)
	if err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, def, id)
}

// Options returns the select-box entries offered by an entity.
func (s *Service) Options(ctx context.Context, entity string) ([]Option, error) {
	def, err := MustGet(entity)
	if err != nil {
		return nil, err
	}
	return s.store.Options(ctx, def)
}

// Lookup returns the rows of entity whose column equals value.
// Used by the dependent subcategory dropdown.
func (s *Service) Lookup(ctx context.Context, entity, column, value string) ([]LookupItem, error) {
	def, err := MustGet(entity)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.ListBy(ctx, def, column, value)
	if err != nil {
		return nil, err
	}

	items := make([]LookupItem, len(rows))
	for i, r := range rows {
		items[i] = LookupItem{ID: r.ID(), Name: r["name"], Status: r["status"]}
	}
	return items, nil
}

// Overview contains the dashboard figures.
type Overview struct {
	Invoices     int64
	Customers    int64
	Categories   int64
	Products     int64
	PaidCents    int64
	PendingCents int64
	Latest       []LatestInvoice
}

// LatestInvoice is one entry of the overview's recent invoice list.
type LatestInvoice struct {
	ID          string
	Name        string
	Email       string
	ImageURL    string
	AmountCents int64
}

// Overview returns the dashboard figures.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	return s.store.Overview(ctx)
}

// Ping checks that the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping store: %w", err)
	}
	return nil
}
