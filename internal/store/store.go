package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Collection names the store accepts. Anything else is rejected before
// touching the database.
const (
	OrdersCollection     = "orders"
	PlansCollection      = "plans"
	CategoriesCollection = "categories"
	TogglesCollection    = "feature_toggles"
)

var knownCollections = map[string]struct{}{
	OrdersCollection:     {},
	PlansCollection:      {},
	CategoriesCollection: {},
	TogglesCollection:    {},
}

// Record is one document in a collection. Doc carries the entity payload;
// SortOrder and Active are lifted out of the payload so listings can order
// and filter without unpacking every document.
type Record struct {
	ID        string          `db:"id" json:"id"`
	Doc       json.RawMessage `db:"doc" json:"doc"`
	SortOrder int             `db:"sort_order" json:"sort_order"`
	Active    bool            `db:"active" json:"active"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

type Store struct {
	pool *pgxpool.Pool
	hub  *hub
}

func NewStore(connString string) (*Store, error) {

	err := Migrate(connString)

	if err != nil {
		return nil, fmt.Errorf("failed to migrate %w", err)
	}

	ctx := context.Background()
	p, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	return &Store{
		pool: p,
		hub:  newHub(),
	}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func checkCollection(collection string) error {
	if _, ok := knownCollections[collection]; !ok {
		return fmt.Errorf("%w", &UnknownCollectionError{Collection: collection})
	}
	return nil
}

// Create inserts one record and returns its generated identifier. An ID set
// on the record is kept as-is (admin imports and tests rely on that).
func (s *Store) Create(ctx context.Context, collection string, rec Record) (string, error) {
	if err := checkCollection(collection); err != nil {
		return "", err
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	query := `
		INSERT INTO document (id, collection, doc, sort_order, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
		`
	row := s.pool.QueryRow(ctx, query, rec.ID, collection, rec.Doc, rec.SortOrder, rec.Active)

	if err := row.Scan(&rec.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			return "", fmt.Errorf("%w", &DuplicateRecordError{Collection: collection, ID: rec.ID})
		}
		return "", err
	}

	s.hub.publish(collection, Event{Action: CreateAction, Record: rec})
	return rec.ID, nil
}

func (s *Store) Get(ctx context.Context, collection string, id string) (*Record, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}

	query := `
		SELECT id, doc, sort_order, active, created_at
		FROM document
		WHERE collection = $1 AND id = $2
		`
	rows, err := s.pool.Query(ctx, query, collection, id)
	if err != nil {
		return nil, fmt.Errorf("failed collecting rows %w", err)
	}

	rec, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[Record])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w", &RecordNotFoundError{Collection: collection, ID: id})
		}
		return nil, fmt.Errorf("failed unpacking rows %w", err)
	}
	return &rec, nil
}

// Update replaces the whole document. Partial patches are the caller's
// business: read, modify, write back.
func (s *Store) Update(ctx context.Context, collection string, id string, rec Record) error {
	if err := checkCollection(collection); err != nil {
		return err
	}

	query := `
		UPDATE document
		SET doc = $1, sort_order = $2, active = $3
		WHERE collection = $4 AND id = $5
		RETURNING created_at
		`
	row := s.pool.QueryRow(ctx, query, rec.Doc, rec.SortOrder, rec.Active, collection, id)

	rec.ID = id
	if err := row.Scan(&rec.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w", &RecordNotFoundError{Collection: collection, ID: id})
		}
		return fmt.Errorf("unexpected DB error %w", err)
	}

	s.hub.publish(collection, Event{Action: UpdateAction, Record: rec})
	return nil
}

// Delete removes the record entirely. There is no tombstone.
func (s *Store) Delete(ctx context.Context, collection string, id string) error {
	if err := checkCollection(collection); err != nil {
		return err
	}

	query := `
		DELETE FROM document
		WHERE collection = $1 AND id = $2
		RETURNING doc, sort_order, active, created_at
		`
	row := s.pool.QueryRow(ctx, query, collection, id)

	rec := Record{ID: id}
	if err := row.Scan(&rec.Doc, &rec.SortOrder, &rec.Active, &rec.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w", &RecordNotFoundError{Collection: collection, ID: id})
		}
		return fmt.Errorf("unexpected DB error %w", err)
	}

	s.hub.publish(collection, Event{Action: DeleteAction, Record: rec})
	return nil
}

// List returns every record of a collection ordered by sort_order, with the
// identifier as the documented tie-break.
func (s *Store) List(ctx context.Context, collection string) ([]Record, error) {
	if err := checkCollection(collection); err != nil {
		return nil, err
	}

	query := `
		SELECT id, doc, sort_order, active, created_at
		FROM document
		WHERE collection = $1
		ORDER BY sort_order, id
		LIMIT 1000
		`
	rows, err := s.pool.Query(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("failed collecting rows %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[Record])
	if err != nil {
		return nil, fmt.Errorf("failed unpacking rows %w", err)
	}
	return records, nil
}

// Subscribe registers fn for every committed change to a collection and
// returns the handle that releases the registration. Callers must release
// on teardown.
func (s *Store) Subscribe(collection string, fn func(Event)) func() {
	return s.hub.subscribe(collection, fn)
}
