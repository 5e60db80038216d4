package cmd

import (
	"fmt"
	"os"

	"github.com/notaslab/notas/cmd/grades"
	"github.com/notaslab/notas/cmd/nrc"
	"github.com/notaslab/notas/cmd/serve"
	"github.com/spf13/cobra"
)

const (
	Version = "1.2.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "notas",
		Short: "grade record service",
		Long: fmt.Sprintf(`notas (v%s)

A grade record service over a line-oriented TCP protocol, backed by flat
CSV files, with synchronous NRC validation against a catalog microservice.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of notas",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("notas v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(nrc.NRCCommands)
	RootCmd.AddCommand(grades.GradeCommands)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
