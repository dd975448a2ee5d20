// Command texpop-view reads one PDF document from stdin and shows its first
// page in a pop-up window. texpop starts it after every successful compile.
//
// It never reports failure to the caller: every error, including panics, is
// written to its log file and the process exits normally.
package main

import (
	"context"
	"fmt"
	"os"
	"texpop/log"
	"texpop/viewer"

	"github.com/spf13/cobra"
)

var (
	dpiFlag    int
	marginFlag int
	rootCmd    = &cobra.Command{
		Use:           "texpop-view",
		Short:         "Show the first page of a PDF read from stdin",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := &viewer.Viewer{
				Renderer: &viewer.PopplerRenderer{DPI: dpiFlag},
				Display:  &viewer.Window{Title: "texpop"},
				Margin:   marginFlag,
			}
			return v.Run(context.Background(), os.Stdin)
		},
	}
)

func init() {
	rootCmd.Flags().IntVar(&dpiFlag, "dpi", 200, "Rasterization resolution in dots per inch")
	rootCmd.Flags().IntVar(&marginFlag, "margin", 10, "White frame around the page in pixels")
}

// run is the single error boundary of the viewer process.
func run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return rootCmd.Execute()
}

func main() {
	log.Initialize("texpop-view")
	defer log.Close()

	if err := run(); err != nil {
		log.ErrorLog.Printf("viewer failed: %v", err)
	}
}
