package commands

import (
	"fmt"
	"os"

	"github.com/diewo77/go-cotizaciones/internal/models"
	"github.com/spf13/cobra"
)

func snapshotCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Export or import the whole application state",
	}
	cmd.AddCommand(snapshotExportCmd(e), snapshotImportCmd(e))
	return cmd
}

func snapshotExportCmd(e *env) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the snapshot as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := e.store.Snapshot().Encode()
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			return os.WriteFile(output, data, 0o644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file (default stdout)")
	return cmd
}

func snapshotImportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the state with a snapshot JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			snap, err := models.DecodeSnapshot(data)
			if err != nil {
				return err
			}
			e.store.Replace(snap)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d clientes, %d productos, %d servicios, %d cotizaciones\n",
				len(snap.Clients), len(snap.Products), len(snap.Services), len(snap.Quotations))
			return nil
		},
	}
}
