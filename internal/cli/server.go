package cli

import (
	"github.com/boxity/boxity/internal/api"
	"github.com/boxity/boxity/internal/integrity"
	"github.com/boxity/boxity/internal/utils"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(serverCmd)
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve the REST API until interrupted",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		log := utils.NewSublogger("server-cmd")

		service, closer, err := openService()
		if err != nil {
			return
		}
		defer closer.Close()

		server := api.NewServer(conf, service, integrity.New(conf.Integrity))

		errs := make(chan error, 1)
		go func() {
			errs <- server.Run()
		}()

		select {
		case err = <-errs:
			return
		case <-ctx.Done():
			log.Info("Shutting down")
		}

		server.Stop()
		return <-errs
	},
}
