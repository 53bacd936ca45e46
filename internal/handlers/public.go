package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	logger "github.com/sirupsen/logrus"

	"github.com/botstudio/backend/internal/wizard"
)

func (h *HandlerSet) HandleGetPlans(w http.ResponseWriter, req *http.Request) {

	plans, err := h.catalog.ActivePlans(req.Context())
	if err != nil {
		logger.Error(err)
		http.Error(w, "Catalog temporarily unavailable, try again",
			http.StatusServiceUnavailable)
		return
	}

	h.writeJSON(w, http.StatusOK, plans)
}

func (h *HandlerSet) HandleGetCategories(w http.ResponseWriter, req *http.Request) {

	categories, err := h.catalog.ActiveCategories(req.Context())
	if err != nil {
		logger.Error(err)
		http.Error(w, "Catalog temporarily unavailable, try again",
			http.StatusServiceUnavailable)
		return
	}

	h.writeJSON(w, http.StatusOK, categories)
}

type submitRequest struct {
	Flow  wizard.Flow  `json:"flow"`
	Draft wizard.Draft `json:"draft"`
}

type submitResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Receipt  string `json:"receipt"`
}

type validationResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HandleSubmitOrder replays the customer's wizard server-side: every step
// predicate is re-checked against the submitted draft before the single
// create call happens. Validation failures name the offending field so the
// UI can show the message inline; store failures keep the draft usable for
// an explicit retry.
func (h *HandlerSet) HandleSubmitOrder(w http.ResponseWriter, req *http.Request) {

	body, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(w, "Something went wrong",
			http.StatusInternalServerError)
		return
	}

	var data submitRequest
	if err = json.Unmarshal(body, &data); err != nil {
		http.Error(w, "Could not parse body",
			http.StatusBadRequest)
		return
	}

	flow, err := wizard.New(data.Flow)
	if err != nil {
		http.Error(w, "Unknown order flow",
			http.StatusBadRequest)
		return
	}
	*flow.Draft() = data.Draft

	for !flow.FinalStep() {
		if err = flow.Advance(); err != nil {
			h.handleWizardError(err, w)
			return
		}
	}

	result, err := flow.Submit(req.Context(), h.store, h.now())
	if err != nil {
		h.handleWizardError(err, w)
		return
	}

	h.writeJSON(w, http.StatusCreated, submitResponse{
		ID:       result.OrderID,
		Filename: result.Filename,
		Receipt:  string(result.Receipt),
	})
}

func (h *HandlerSet) handleWizardError(err error, w http.ResponseWriter) {
	var validation *wizard.ValidationError
	if errors.As(err, &validation) {
		h.writeJSON(w, http.StatusUnprocessableEntity, validationResponse{
			Field:   validation.Field,
			Message: validation.Message,
		})
		return
	}
	logger.Error(err)
	http.Error(w, "Could not submit order, please try again",
		http.StatusBadGateway)
}
