package cli

import (
	"io"

	"github.com/boxity/boxity/internal/files"
	"github.com/boxity/boxity/internal/provenance"
)

// openService wires the slot and providers selected by the configuration.
// The closer releases backend connections.
func openService() (service *provenance.Service, closer io.Closer, err error) {
	slot, closer, err := files.OpenSlot(ctx, conf)
	if err != nil {
		return
	}

	var remote []provenance.BatchProvider
	if conf.Ledger.URL != "" {
		remote = append(remote, provenance.NewRemoteProvider(conf.Ledger))
	}
	service = provenance.NewService(files.NewBatchStore(slot), remote...)
	return
}
