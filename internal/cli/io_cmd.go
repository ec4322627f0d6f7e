package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Append tasks from a spreadsheet (.xlsx, .csv or .json)",
		Long: "Append tasks from a spreadsheet. Rows typed \"section\" open a new\n" +
			"section; the task rows after it are nested inside until the next\n" +
			"section. Existing tasks are kept.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportFile(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d sections and %d tasks from %s\n",
				res.Sections, res.Leaves, args[0])
			return nil
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write every task to a spreadsheet (.xlsx, .csv or .json)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Export.ExportFile(commandContext(cmd), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", n, args[0])
			return nil
		},
	}
}
