package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nguyentranbao-ct/storefront/internal/app"
	"github.com/nguyentranbao-ct/storefront/internal/server"
	"github.com/nguyentranbao-ct/storefront/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "storefront",
	Short:         "Serve the product listing backed by the hosted commerce API",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		defer logger.Sync()
		app.Invoke(
			server.StartServer,
		).Run()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.MustNamed("cmd").Error(err)
		os.Exit(1)
	}
}
