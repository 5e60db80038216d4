package grades

import (
	"fmt"

	"github.com/notaslab/notas/rpc/common"
	"github.com/spf13/cobra"
)

// printResponse renders one server response for the terminal.
func printResponse(resp *common.Response) error {
	payload, err := resp.Encode()
	if err != nil {
		return err
	}
	fmt.Println(string(payload))
	return nil
}

var (
	agregarCmd = &cobra.Command{
		Use:   "agregar [id] [materia] [calificacion]",
		Short: "Inserts a grade record (the materia must exist in the NRC catalog)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := recordClient.Agregar(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			return printResponse(resp)
		},
	}
	buscarCmd = &cobra.Command{
		Use:   "buscar [id]",
		Short: "Finds all grade records for a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := recordClient.Buscar(args[0])
			if err != nil {
				return err
			}
			return printResponse(resp)
		},
	}
	actualizarCmd = &cobra.Command{
		Use:   "actualizar [id] [calificacion] | actualizar [id] [materia] [calificacion]",
		Short: "Updates a grade (the short form requires the student to have exactly one record)",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				resp *common.Response
				err  error
			)
			if len(args) == 2 {
				resp, err = recordClient.Actualizar(args[0], "", args[1])
			} else {
				resp, err = recordClient.Actualizar(args[0], args[1], args[2])
			}
			if err != nil {
				return err
			}
			return printResponse(resp)
		},
	}
	listarCmd = &cobra.Command{
		Use:   "listar",
		Short: "Lists all grade records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := recordClient.Listar()
			if err != nil {
				return err
			}
			return printResponse(resp)
		},
	}
	eliminarCmd = &cobra.Command{
		Use:   "eliminar [id] | eliminar [id] [materia]",
		Short: "Deletes a grade record (the short form requires the student to have exactly one record)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject := ""
			if len(args) == 2 {
				subject = args[1]
			}
			resp, err := recordClient.Eliminar(args[0], subject)
			if err != nil {
				return err
			}
			return printResponse(resp)
		},
	}
)
