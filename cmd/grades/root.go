package grades

import (
	"github.com/notaslab/notas/cmd/util"
	"github.com/notaslab/notas/rpc/client"
	"github.com/spf13/cobra"
)

var (
	recordClient *client.Client

	// GradeCommands represents the record service command group
	GradeCommands = &cobra.Command{
		Use:               "grades",
		Short:             "Perform grade record operations",
		PersistentPreRunE: setupClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common connection flags to the grades command
	util.SetupRPCClientFlags(GradeCommands, "localhost:12345")

	// Add subcommands
	GradeCommands.AddCommand(agregarCmd)
	GradeCommands.AddCommand(buscarCmd)
	GradeCommands.AddCommand(actualizarCmd)
	GradeCommands.AddCommand(listarCmd)
	GradeCommands.AddCommand(eliminarCmd)
}

// setupClient initializes the record service client
func setupClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	recordClient = client.NewClient(*util.GetClientConfig())
	return nil
}
