package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/botstudio/backend/internal/store"
	"github.com/botstudio/backend/internal/types"
)

// memStore mimics the record store contract in memory: listing order is
// sort_order ascending with the identifier as tie-break, writes notify
// collection subscribers.
type memStore struct {
	mu      sync.Mutex
	records map[string]map[string]store.Record
	nextID  int
	failing bool
	subs    map[string][]func(store.Event)
}

func newMemStore() *memStore {
	return &memStore{
		records: make(map[string]map[string]store.Record),
		subs:    make(map[string][]func(store.Event)),
	}
}

var errStoreDown = fmt.Errorf("store unreachable")

func (m *memStore) publish(collection string, e store.Event) {
	for _, fn := range m.subs[collection] {
		fn(e)
	}
}

func (m *memStore) Create(_ context.Context, collection string, rec store.Record) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return "", errStoreDown
	}
	if rec.ID == "" {
		m.nextID++
		rec.ID = fmt.Sprintf("id-%04d", m.nextID)
	}
	rec.CreatedAt = time.Now()
	if m.records[collection] == nil {
		m.records[collection] = make(map[string]store.Record)
	}
	m.records[collection][rec.ID] = rec
	m.publish(collection, store.Event{Action: store.CreateAction, Record: rec})
	return rec.ID, nil
}

func (m *memStore) Get(_ context.Context, collection string, id string) (*store.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return nil, errStoreDown
	}
	rec, ok := m.records[collection][id]
	if !ok {
		return nil, fmt.Errorf("%w", &store.RecordNotFoundError{Collection: collection, ID: id})
	}
	return &rec, nil
}

func (m *memStore) Update(_ context.Context, collection string, id string, rec store.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return errStoreDown
	}
	old, ok := m.records[collection][id]
	if !ok {
		return fmt.Errorf("%w", &store.RecordNotFoundError{Collection: collection, ID: id})
	}
	rec.ID = id
	rec.CreatedAt = old.CreatedAt
	m.records[collection][id] = rec
	m.publish(collection, store.Event{Action: store.UpdateAction, Record: rec})
	return nil
}

func (m *memStore) Delete(_ context.Context, collection string, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return errStoreDown
	}
	rec, ok := m.records[collection][id]
	if !ok {
		return fmt.Errorf("%w", &store.RecordNotFoundError{Collection: collection, ID: id})
	}
	delete(m.records[collection], id)
	m.publish(collection, store.Event{Action: store.DeleteAction, Record: rec})
	return nil
}

func (m *memStore) List(_ context.Context, collection string) ([]store.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failing {
		return nil, errStoreDown
	}
	records := make([]store.Record, 0, len(m.records[collection]))
	for _, rec := range m.records[collection] {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].SortOrder != records[j].SortOrder {
			return records[i].SortOrder < records[j].SortOrder
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

func (m *memStore) Subscribe(collection string, fn func(store.Event)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.subs[collection] = append(m.subs[collection], fn)
	return func() {}
}

func (m *memStore) addPlan(plan types.Plan, id string) {
	doc, _ := json.Marshal(plan)
	_, _ = m.Create(context.Background(), store.PlansCollection, store.Record{
		ID:        id,
		Doc:       doc,
		SortOrder: plan.Order,
		Active:    plan.Active,
	})
}

func (m *memStore) addOrder(order types.Order, id string) {
	doc, _ := json.Marshal(order)
	_, _ = m.Create(context.Background(), store.OrdersCollection, store.Record{
		ID:     id,
		Doc:    doc,
		Active: true,
	})
}
