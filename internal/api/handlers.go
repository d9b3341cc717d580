package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/boxity/boxity/internal/config"
	"github.com/boxity/boxity/internal/integrity"
	"github.com/boxity/boxity/internal/provenance"
	"github.com/boxity/boxity/internal/qr"
	"github.com/boxity/boxity/internal/utils"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// SourceHeader names the provider a returned batch came from.
const SourceHeader = "X-Boxity-Source"

type Handlers struct {
	config  *config.Config
	service *provenance.Service
	checker integrity.Checker
	log     *logrus.Entry
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "OK")
}

// GetTimeHandler returns the current server time in RFC3339 format
func GetTimeHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"time": time.Now().Format(time.RFC3339)})
}

func (h *Handlers) ListBatches(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ListBatches(r.Context()))
}

func (h *Handlers) GetBatch(w http.ResponseWriter, r *http.Request) {
	batch, source, err := h.service.GetBatch(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set(SourceHeader, source)
	writeJSON(w, http.StatusOK, batch)
}

func (h *Handlers) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var in provenance.BatchInput
	if err := decodeJSON(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	batch, err := h.service.CreateBatch(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, batch)
}

// BatchQR mints the code printed on a batch. It carries the batch id only.
func (h *Handlers) BatchQR(w http.ResponseWriter, r *http.Request) {
	batch, _, err := h.service.GetBatch(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	png, err := qr.PNG(batch.ID, h.config.QR.BatchSize)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writePNG(w, png, fmt.Sprintf("boxity-%s.png", batch.ID))
}

func (h *Handlers) LogEvent(w http.ResponseWriter, r *http.Request) {
	var in provenance.EventInput
	if err := decodeJSON(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	event, err := h.service.LogEvent(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

type scanRequest struct {
	Text string `json:"text"`
}

func (h *Handlers) Scan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	res, err := h.service.Scan(r.Context(), req.Text)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// TestQR serves a code holding the sample payload, for trying out scanning.
func (h *Handlers) TestQR(w http.ResponseWriter, r *http.Request) {
	png, err := qr.PNG(qr.EncodePayload(qr.SamplePayload), h.config.QR.TestSize)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writePNG(w, png, "boxity-test-qr.png")
}

type integrityRequest struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

func (h *Handlers) CheckIntegrity(w http.ResponseWriter, r *http.Request) {
	maxSize := h.config.Integrity.MaxImageSize
	// Both images base64 encoded plus some room for the envelope
	r.Body = http.MaxBytesReader(w, r.Body, 2*(maxSize/3+1)*4+4096)

	var req integrityRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	before, err := decodeImage("before", req.Before, maxSize)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	after, err := decodeImage("after", req.After, maxSize)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	diffs, err := h.checker.Check(r.Context(), before, after)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"differences": diffs})
}

func (h *Handlers) ResetDemo(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ResetDemo(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeJSON(r *http.Request, v interface{}) error {
	err := json.NewDecoder(r.Body).Decode(v)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return utils.New(http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
	}
	if err != nil {
		return &provenance.ValidationError{Message: "invalid JSON body: " + err.Error()}
	}
	return nil
}

func writePNG(w http.ResponseWriter, png []byte, filename string) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
