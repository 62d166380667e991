package transport

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"inventory/pkg/inventory/domain/model"
)

type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

type stockErrorData struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Inventory   string `json:"inventory"`
	Available   string `json:"available"`
	Requested   string `json:"requested"`
}

func writeOK(w http.ResponseWriter, message string, data interface{}) {
	writeResponse(w, http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

func writeCreated(w http.ResponseWriter, message string, data interface{}) {
	writeResponse(w, http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

func writeList(w http.ResponseWriter, data interface{}, count int) {
	writeResponse(w, http.StatusOK, envelope{Success: true, Data: data, Count: &count})
}

// writeError maps error kinds to statuses: validation and stock errors are
// client errors, missing entities are 404 and everything else is a 500 whose
// cause is only logged.
func writeError(w http.ResponseWriter, err error) {
	var stockErr *model.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		writeResponse(w, http.StatusBadRequest, envelope{
			Message: stockErr.Error(),
			Data: stockErrorData{
				ProductID:   stockErr.ProductID,
				ProductName: stockErr.ProductName,
				Inventory:   string(stockErr.Pool),
				Available:   stockErr.Available.String(),
				Requested:   stockErr.Requested.String(),
			},
		})
	case errors.Is(err, model.ErrValidation):
		writeResponse(w, http.StatusBadRequest, envelope{Message: err.Error()})
	case model.IsNotFound(err):
		writeResponse(w, http.StatusNotFound, envelope{Message: err.Error()})
	default:
		log.WithError(err).Error("request failed")
		writeResponse(w, http.StatusInternalServerError, envelope{Message: "internal server error"})
	}
}

func writeResponse(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithField("err", err).Error("write response")
	}
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewValidationError("body", "malformed JSON: "+err.Error())
	}
	return nil
}
