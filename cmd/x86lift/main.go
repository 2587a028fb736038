// Command x86lift lifts one function of a 64-bit PE image's machine code
// into LLVM IR assembly.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/decomp/exp/bin"
	"github.com/spf13/cobra"

	"github.com/mewmew/x86lift/internal/config"
	"github.com/mewmew/x86lift/internal/emitter"
	"github.com/mewmew/x86lift/internal/lift"
	"github.com/mewmew/x86lift/internal/objfile"
	"github.com/mewmew/x86lift/internal/xlog"
)

// rootCmd is package-level so other files in this command (sections.go)
// can register their own subcommands from init().
var rootCmd = &cobra.Command{
	Use:   "x86lift",
	Short: "Lift x86-64 machine code to LLVM IR",
}

func main() {
	cfg := &config.Config{}

	liftCmd := &cobra.Command{
		Use:   "lift FILE",
		Short: "Lift the function at --entry from FILE to LLVM IR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Path = args[0]
			if cfg.Verbose {
				xlog.Dbg.SetOutput(os.Stderr)
			}
			return runLift(cfg)
		},
	}
	liftCmd.Flags().StringVar(&cfg.Entry, "entry", "", "load address of the function to lift, e.g. 0x401000")
	liftCmd.Flags().StringVar(&cfg.Out, "out", "", "output path for the emitted LLVM IR (default: stdout)")
	liftCmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "log each instruction as it is lifted")
	liftCmd.MarkFlagRequired("entry")

	rootCmd.AddCommand(liftCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runLift(cfg *config.Config) error {
	entry, err := parseAddr(cfg.Entry)
	if err != nil {
		return fmt.Errorf("invalid --entry: %w", err)
	}

	pf, err := objfile.OpenPE(cfg.Path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", cfg.Path, err)
	}
	defer pf.Close()

	mod := emitter.NewModule(cfg.Path)
	name := fmt.Sprintf("f_%06X", uint64(entry))
	fn := emitter.NewFunction(name, entry)
	pf.RegisterFunc(entry, fn.Function)

	ctx := &lift.Context{
		Module:   mod,
		Func:     fn,
		Funcs:    pf,
		Sections: pf,
	}

	if err := lift.TranslateFunction(ctx, pf, entry); err != nil {
		return err
	}
	mod.AddFunc(fn.Function)

	out := os.Stdout
	if cfg.Out != "" {
		f, err := os.Create(cfg.Out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", cfg.Out, err)
		}
		defer f.Close()
		out = f
	}
	_, err = fmt.Fprint(out, mod.String())
	return err
}

// parseAddr accepts a decimal or 0x-prefixed hexadecimal address.
func parseAddr(s string) (bin.Address, error) {
	s = strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = s[2:]
		base = 16
	}
	v, err := strconv.ParseUint(s, base, 64)
	if err != nil {
		return 0, err
	}
	return bin.Address(v), nil
}
