package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"github.com/botstudio/backend/internal/auth"
	"github.com/botstudio/backend/internal/store"
	"github.com/botstudio/backend/internal/types"
)

func (h *HandlerSet) parseAuthData(body []byte) (login string, password string, err error) {

	var data struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}

	err = json.Unmarshal(body, &data)
	if err != nil {
		return "", "", ErrCouldNotParseBody
	}

	if data.Login == "" || data.Password == "" {
		return "", "", ErrAuthDataEmpty
	}

	return data.Login, data.Password, nil
}

func (h *HandlerSet) HandleAdminLogin(w http.ResponseWriter, req *http.Request) {

	body, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(w, "Something went wrong",
			http.StatusInternalServerError)
		return
	}

	login, password, err := h.parseAuthData(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if login != h.adminLogin || !auth.CheckPasswordHash(password, h.adminPasswordHash) {
		http.Error(w, "Wrong login or password", http.StatusUnauthorized)
		return
	}

	err = auth.SetAuthCookie(login, w, h.secret, h.cookieExpiresSeconds)
	if err != nil {
		http.Error(w, "Something went wrong",
			http.StatusInternalServerError)
		return
	}

	w.Header().Set("content-type", "text/plain")

	_, err = w.Write([]byte("success"))
	if err != nil {
		logger.Error(err)
	}
}

func (h *HandlerSet) HandleAdminListOrders(w http.ResponseWriter, req *http.Request) {

	records, err := h.store.List(req.Context(), store.OrdersCollection)
	if err != nil {
		h.handleStoreError(err, w)
		return
	}

	orders := make([]types.Order, 0, len(records))
	for _, rec := range records {
		var order types.Order
		if err := json.Unmarshal(rec.Doc, &order); err != nil {
			logger.Errorf("skipping malformed order %s: %s", rec.ID, err)
			continue
		}
		order.ID = rec.ID
		orders = append(orders, order)
	}

	// newest submissions first
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.writeJSON(w, http.StatusOK, orders)
}

// HandleAdvanceOrderStatus moves an order's status forward. Backward moves
// and transitions out of a terminal status are refused.
func (h *HandlerSet) HandleAdvanceOrderStatus(w http.ResponseWriter, req *http.Request) {

	id := chi.URLParam(req, "id")

	body, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(w, "Something went wrong",
			http.StatusInternalServerError)
		return
	}

	var data struct {
		Status types.Status `json:"status"`
	}
	if err = json.Unmarshal(body, &data); err != nil {
		http.Error(w, "Could not parse body",
			http.StatusBadRequest)
		return
	}

	rec, err := h.store.Get(req.Context(), store.OrdersCollection, id)
	if err != nil {
		h.handleStoreError(err, w)
		return
	}

	var order types.Order
	if err = json.Unmarshal(rec.Doc, &order); err != nil {
		logger.Error(err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	if !order.Status.CanAdvanceTo(data.Status) {
		http.Error(w, "Status can only move forward",
			http.StatusConflict)
		return
	}

	order.Status = data.Status
	doc, err := json.Marshal(order)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	rec.Doc = doc
	if err = h.store.Update(req.Context(), store.OrdersCollection, id, *rec); err != nil {
		h.handleStoreError(err, w)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *HandlerSet) HandleDeleteOrder(w http.ResponseWriter, req *http.Request) {

	id := chi.URLParam(req, "id")

	if err := h.store.Delete(req.Context(), store.OrdersCollection, id); err != nil {
		h.handleStoreError(err, w)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *HandlerSet) HandleAdminListPlans(w http.ResponseWriter, req *http.Request) {
	h.listCollection(w, req, store.PlansCollection)
}

func (h *HandlerSet) HandleAdminListCategories(w http.ResponseWriter, req *http.Request) {
	h.listCollection(w, req, store.CategoriesCollection)
}

func (h *HandlerSet) HandleAdminListToggles(w http.ResponseWriter, req *http.Request) {
	h.listCollection(w, req, store.TogglesCollection)
}

// listCollection returns raw records including inactive ones, so staff see
// everything the customers cannot.
func (h *HandlerSet) listCollection(w http.ResponseWriter, req *http.Request, collection string) {

	records, err := h.store.List(req.Context(), collection)
	if err != nil {
		h.handleStoreError(err, w)
		return
	}

	h.writeJSON(w, http.StatusOK, records)
}

func (h *HandlerSet) HandleCreatePlan(w http.ResponseWriter, req *http.Request) {

	var plan types.Plan
	if !h.readEntity(w, req, &plan) {
		return
	}
	h.createRecord(w, req, store.PlansCollection, plan, plan.Order, plan.Active)
}

func (h *HandlerSet) HandleUpdatePlan(w http.ResponseWriter, req *http.Request) {

	var plan types.Plan
	if !h.readEntity(w, req, &plan) {
		return
	}
	h.updateRecord(w, req, store.PlansCollection, plan, plan.Order, plan.Active)
}

func (h *HandlerSet) HandleDeletePlan(w http.ResponseWriter, req *http.Request) {
	h.deleteRecord(w, req, store.PlansCollection)
}

func (h *HandlerSet) HandleCreateCategory(w http.ResponseWriter, req *http.Request) {

	var category types.MainCategory
	if !h.readEntity(w, req, &category) {
		return
	}
	h.createRecord(w, req, store.CategoriesCollection, category, category.Order, category.Active)
}

func (h *HandlerSet) HandleUpdateCategory(w http.ResponseWriter, req *http.Request) {

	var category types.MainCategory
	if !h.readEntity(w, req, &category) {
		return
	}
	h.updateRecord(w, req, store.CategoriesCollection, category, category.Order, category.Active)
}

func (h *HandlerSet) HandleDeleteCategory(w http.ResponseWriter, req *http.Request) {
	h.deleteRecord(w, req, store.CategoriesCollection)
}

func (h *HandlerSet) HandleUpdateToggle(w http.ResponseWriter, req *http.Request) {

	var toggle types.FeatureToggle
	if !h.readEntity(w, req, &toggle) {
		return
	}
	h.updateRecord(w, req, store.TogglesCollection, toggle, 0, toggle.Enabled)
}

func (h *HandlerSet) HandleCreateToggle(w http.ResponseWriter, req *http.Request) {

	var toggle types.FeatureToggle
	if !h.readEntity(w, req, &toggle) {
		return
	}
	h.createRecord(w, req, store.TogglesCollection, toggle, 0, toggle.Enabled)
}

func (h *HandlerSet) readEntity(w http.ResponseWriter, req *http.Request, entity any) bool {

	body, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(w, "Something went wrong",
			http.StatusInternalServerError)
		return false
	}
	if err = json.Unmarshal(body, entity); err != nil {
		http.Error(w, "Could not parse body",
			http.StatusBadRequest)
		return false
	}
	return true
}

func (h *HandlerSet) createRecord(w http.ResponseWriter, req *http.Request, collection string, entity any, sortOrder int, active bool) {

	doc, err := json.Marshal(entity)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	id, err := h.store.Create(req.Context(), collection, store.Record{
		Doc:       doc,
		SortOrder: sortOrder,
		Active:    active,
	})
	if err != nil {
		h.handleStoreError(err, w)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *HandlerSet) updateRecord(w http.ResponseWriter, req *http.Request, collection string, entity any, sortOrder int, active bool) {

	id := chi.URLParam(req, "id")

	doc, err := json.Marshal(entity)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	err = h.store.Update(req.Context(), collection, id, store.Record{
		Doc:       doc,
		SortOrder: sortOrder,
		Active:    active,
	})
	if err != nil {
		h.handleStoreError(err, w)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *HandlerSet) deleteRecord(w http.ResponseWriter, req *http.Request, collection string) {

	id := chi.URLParam(req, "id")

	if err := h.store.Delete(req.Context(), collection, id); err != nil {
		h.handleStoreError(err, w)
		return
	}
	w.WriteHeader(http.StatusOK)
}
