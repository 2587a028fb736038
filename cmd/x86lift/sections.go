package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mewmew/x86lift/internal/objfile"
)

// sectionsCmd lists the section layout of a PE image: name and the start
// and end of its load-address range. It exists to help locate the
// --entry address the lift command needs, the same information the
// decompiler this module descends from used to dump as a NASM section
// header, reshaped here as a lookup table instead of an assembly listing.
var sectionsCmd = &cobra.Command{
	Use:   "sections FILE",
	Short: "List the section layout of a PE image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pf, err := objfile.OpenPE(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer pf.Close()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSTART\tEND")
		for _, s := range pf.Sections() {
			fmt.Fprintf(w, "%s\t0x%08X\t0x%08X\n", s.Name, uint64(s.Start), uint64(s.End))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}
