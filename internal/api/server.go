package api

import (
	"context"
	"net/http"

	"github.com/boxity/boxity/internal/config"
	"github.com/boxity/boxity/internal/integrity"
	"github.com/boxity/boxity/internal/provenance"
	"github.com/boxity/boxity/internal/utils"
	"github.com/sirupsen/logrus"
)

// Server exposes the REST API
type Server struct {
	config     *config.Config
	httpServer *http.Server
	log        *logrus.Entry
}

func NewServer(config *config.Config, service *provenance.Service, checker integrity.Checker) (self *Server) {
	self = new(Server)
	self.config = config
	self.log = utils.NewSublogger("server")
	self.httpServer = &http.Server{
		Addr:    config.RESTListenAddress,
		Handler: NewRouter(config, service, checker),
	}
	return
}

// Run serves until Stop is called. It returns nil after a clean shutdown.
func (self *Server) Run() (err error) {
	self.log.WithField("address", self.config.RESTListenAddress).Info("Starting REST server")
	err = self.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		self.log.WithError(err).Error("Failed to start REST server")
		return
	}
	return nil
}

// Stop waits up to StopTimeout for in-flight requests.
func (self *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), self.config.StopTimeout)
	defer cancel()

	err := self.httpServer.Shutdown(ctx)
	if err != nil {
		self.log.WithError(err).Error("Failed to gracefully shutdown REST server")
		return
	}
	self.log.Info("REST server stopped")
}
