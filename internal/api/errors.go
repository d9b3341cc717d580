package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/boxity/boxity/internal/provenance"
	"github.com/boxity/boxity/internal/utils"
)

type errorResponse struct {
	Error string `json:"error"`
}

// httpError attaches the response status to a domain error.
func httpError(err error) error {
	var ce *utils.CustomError
	if errors.As(err, &ce) {
		return err
	}

	switch {
	case errors.Is(err, provenance.ErrValidation):
		return utils.Wrap(http.StatusBadRequest, err)
	case errors.Is(err, provenance.ErrBatchNotFound):
		return utils.Wrap(http.StatusNotFound, err)
	case errors.Is(err, provenance.ErrNotSupplyPayload):
		return &utils.CustomError{
			Code:    http.StatusUnprocessableEntity,
			Message: "This QR code is a plain link, not a supply chain payload",
			Err:     err,
		}
	case errors.Is(err, provenance.ErrDuplicateBatch), errors.Is(err, provenance.ErrConflict):
		return utils.Wrap(http.StatusConflict, err)
	case errors.Is(err, provenance.ErrExternalService):
		return utils.Wrap(http.StatusBadGateway, err)
	default:
		return &utils.CustomError{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
			Err:     err,
		}
	}
}

func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	err = httpError(err)
	code := utils.StatusCode(err)
	if code >= http.StatusInternalServerError {
		h.log.WithError(errors.Unwrap(err)).
			WithField("requestId", requestID(r)).
			WithField("path", r.URL.Path).
			Error("Request failed")
	}
	writeError(w, err)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, utils.StatusCode(err), errorResponse{Error: utils.Message(err)})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
