// Package cli holds the boxity commands.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/boxity/boxity/internal/config"
	"github.com/boxity/boxity/internal/utils"
	"github.com/spf13/cobra"
)

var (
	RootCmd = &cobra.Command{
		Use:   "boxity",
		Short: "Supply chain provenance demo: batches, custody events and QR payloads",

		// All child commands will use this
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			// Setup a context that gets cancelled upon SIGINT
			ctx, cancel = context.WithCancel(context.Background())

			signalChannel = make(chan os.Signal, 1)
			signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)
			go func() {
				select {
				case <-signalChannel:
					cancel()
				case <-ctx.Done():
				}
			}()

			// Load configuration
			conf, err = config.Load(cfgFile)
			if err != nil {
				return
			}

			// Setup logging
			logCloser, err = utils.InitLogger(utils.LogSettings{
				Level: conf.LogLevel,
				File:  conf.LogFile,
			})
			return
		},

		// Run after all commands
		PersistentPostRunE: func(cmd *cobra.Command, args []string) (err error) {
			defer func() {
				signal.Stop(signalChannel)
				cancel()
			}()
			log := utils.NewSublogger("root-cmd")
			log.Debug("Finished")
			return logCloser.Close()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Configuration
	conf    *config.Config
	cfgFile string

	// Context setup
	ctx           context.Context
	cancel        context.CancelFunc
	signalChannel chan os.Signal
	logCloser     io.Closer
)

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file path")
}
