package nrc

import (
	"fmt"

	"github.com/notaslab/notas/cmd/util"
	"github.com/notaslab/notas/rpc/common"
	"github.com/notaslab/notas/rpc/nrc"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// NRCCommands represents the NRC catalog command group
	NRCCommands = &cobra.Command{
		Use:   "nrc",
		Short: "Run or query the NRC catalog service",
	}

	serveCmdConfig = &common.NRCServerConfig{}
	serveCmd       = &cobra.Command{
		Use:   "serve",
		Short: "Start the NRC catalog server",
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			serveCmdConfig.Endpoint = viper.GetString("endpoint")
			serveCmdConfig.CatalogPath = viper.GetString("catalog-file")
			serveCmdConfig.TimeoutSecond = viper.GetInt("timeout")
			serveCmdConfig.LogLevel = viper.GetString("log-level")
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			common.InitLoggers(serveCmdConfig.LogLevel)
			nrc.Logger.Infof("starting NRC catalog server with configuration: %s", serveCmdConfig.String())

			srv := nrc.NewServer(*serveCmdConfig)
			ln, err := srv.Listen()
			if err != nil {
				return err
			}
			return srv.Serve(ln)
		},
	}

	buscarCmd = &cobra.Command{
		Use:   "buscar [nrc]",
		Short: "Looks up a subject code in the catalog",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return util.BindCommandFlags(cmd)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			client := nrc.NewClient(*util.GetClientConfig())
			res, err := client.Lookup(args[0])
			if err != nil {
				return err
			}
			if !res.Found {
				fmt.Printf("nrc=%s not found\n", args[0])
				return nil
			}
			fmt.Printf("nrc=%s, materia=%s\n", res.Entry.NRC, res.Entry.Subject)
			return nil
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// serve flags
	key := "endpoint"
	serveCmd.Flags().String(key, util.DefaultNRCEndpoint, util.WrapString("The address on which the NRC catalog server will listen"))

	key = "catalog-file"
	serveCmd.Flags().String(key, "nrcs.csv", util.WrapString("Path of the catalog CSV file (created with the seed subjects if missing)"))

	key = "timeout"
	serveCmd.Flags().Int(key, 5, util.WrapString("Per-connection read/write timeout in seconds (0 disables)"))

	key = "log-level"
	serveCmd.Flags().String(key, "info", util.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))

	// client flags
	util.SetupRPCClientFlags(buscarCmd, "localhost:12346")

	// Add subcommands
	NRCCommands.AddCommand(serveCmd)
	NRCCommands.AddCommand(buscarCmd)
}
