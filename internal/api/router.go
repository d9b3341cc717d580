package api

import (
	"net/http"

	"github.com/boxity/boxity/internal/auth"
	"github.com/boxity/boxity/internal/config"
	"github.com/boxity/boxity/internal/integrity"
	"github.com/boxity/boxity/internal/metrics"
	"github.com/boxity/boxity/internal/provenance"
	"github.com/boxity/boxity/internal/utils"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(config *config.Config, service *provenance.Service, checker integrity.Checker) *mux.Router {
	h := &Handlers{
		config:  config,
		service: service,
		checker: checker,
		log:     utils.NewSublogger("api"),
	}

	r := mux.NewRouter()
	r.Use(requestIDMiddleware, h.accessLogMiddleware)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, utils.New(http.StatusNotFound, "route not found"))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, utils.New(http.StatusMethodNotAllowed, "method not allowed"))
	})

	admin := auth.AdminMiddleware(config.Admin.TokenHash, func(w http.ResponseWriter, r *http.Request) {
		writeError(w, utils.New(http.StatusUnauthorized, "admin token required"))
	})

	r.HandleFunc("/health", HealthHandler).Methods("GET")
	r.HandleFunc("/time", GetTimeHandler).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})).Methods("GET")

	r.HandleFunc("/batches", h.ListBatches).Methods("GET")
	r.Handle("/batches", admin(http.HandlerFunc(h.CreateBatch))).Methods("POST")
	r.HandleFunc("/batches/{id}", h.GetBatch).Methods("GET")
	r.HandleFunc("/batches/{id}/qr.png", h.BatchQR).Methods("GET")
	r.HandleFunc("/batches/{id}/events", h.LogEvent).Methods("POST")

	r.HandleFunc("/scan", h.Scan).Methods("POST")
	r.HandleFunc("/qr/test.png", h.TestQR).Methods("GET")
	r.HandleFunc("/integrity/check", h.CheckIntegrity).Methods("POST")
	r.Handle("/demo/reset", admin(http.HandlerFunc(h.ResetDemo))).Methods("POST")
	return r
}
