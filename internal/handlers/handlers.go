package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/botstudio/backend/internal/catalog"
	"github.com/botstudio/backend/internal/store"
)

// Store is the record-store surface the handlers depend on.
type Store interface {
	Create(ctx context.Context, collection string, rec store.Record) (string, error)
	Get(ctx context.Context, collection string, id string) (*store.Record, error)
	Update(ctx context.Context, collection string, id string, rec store.Record) error
	Delete(ctx context.Context, collection string, id string) error
	List(ctx context.Context, collection string) ([]store.Record, error)
	Subscribe(collection string, fn func(store.Event)) func()
}

var (
	ErrCouldNotParseBody = errors.New("could not parse body")
	ErrAuthDataEmpty     = errors.New("login or password cannot be empty")
)

type HandlerSet struct {
	secret               []byte
	cookieExpiresSeconds int
	adminLogin           string
	adminPasswordHash    string
	store                Store
	catalog              *catalog.Reader
	now                  func() time.Time
}

func NewHandlerSet(secret []byte, cookieExpiresSecs int, adminLogin string, adminPasswordHash string, s Store) *HandlerSet {
	return &HandlerSet{
		secret:               secret,
		cookieExpiresSeconds: cookieExpiresSecs,
		adminLogin:           adminLogin,
		adminPasswordHash:    adminPasswordHash,
		store:                s,
		catalog:              catalog.NewReader(s),
		now:                  time.Now,
	}
}

func (h *HandlerSet) writeJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Could not serialize result",
			http.StatusInternalServerError)
		return
	}
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(response)
	if err != nil {
		logger.Error(err)
	}
}

func (h *HandlerSet) handleStoreError(err error, w http.ResponseWriter) {
	var notFound *store.RecordNotFoundError
	if errors.As(err, &notFound) {
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	}
	var unknownCollection *store.UnknownCollectionError
	if errors.As(err, &unknownCollection) {
		http.Error(w, "Unknown collection", http.StatusNotFound)
		return
	}
	logger.Error(err)
	http.Error(w, "Internal error", http.StatusInternalServerError)
}
