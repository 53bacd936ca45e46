package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/botstudio/backend/internal/store"
	"github.com/botstudio/backend/internal/types"
)

// Lister is the slice of the record store the reader needs.
type Lister interface {
	List(ctx context.Context, collection string) ([]store.Record, error)
}

type Reader struct {
	store Lister
}

func NewReader(s Lister) *Reader {
	return &Reader{store: s}
}

// ListActive returns the customer-visible records of a collection: active
// only, in the store's listing order (sort_order ascending, id as tie-break).
func (r *Reader) ListActive(ctx context.Context, collection string) ([]store.Record, error) {

	records, err := r.store.List(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed listing %s %w", collection, err)
	}

	active := make([]store.Record, 0, len(records))
	for _, rec := range records {
		if rec.Active {
			active = append(active, rec)
		}
	}
	return active, nil
}

func (r *Reader) ActivePlans(ctx context.Context) ([]types.Plan, error) {

	records, err := r.ListActive(ctx, store.PlansCollection)
	if err != nil {
		return nil, err
	}

	plans := make([]types.Plan, 0, len(records))
	for _, rec := range records {
		var plan types.Plan
		if err := json.Unmarshal(rec.Doc, &plan); err != nil {
			return nil, fmt.Errorf("failed unpacking plan %s %w", rec.ID, err)
		}
		plan.ID = rec.ID
		plans = append(plans, plan)
	}
	return plans, nil
}

func (r *Reader) ActiveCategories(ctx context.Context) ([]types.MainCategory, error) {

	records, err := r.ListActive(ctx, store.CategoriesCollection)
	if err != nil {
		return nil, err
	}

	categories := make([]types.MainCategory, 0, len(records))
	for _, rec := range records {
		var category types.MainCategory
		if err := json.Unmarshal(rec.Doc, &category); err != nil {
			return nil, fmt.Errorf("failed unpacking category %s %w", rec.ID, err)
		}
		category.ID = rec.ID
		categories = append(categories, category)
	}
	return categories, nil
}
