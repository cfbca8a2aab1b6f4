// Command asmpilc drives the two-pass lowering compiler (romgen then
// convert) over one of a small set of built-in example machines, printing
// either the generated ROM or the final PIL statement list.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dyxushuai/asmpil/asm"
	"github.com/dyxushuai/asmpil/convert"
	"github.com/dyxushuai/asmpil/number"
	"github.com/dyxushuai/asmpil/pil"
	"github.com/dyxushuai/asmpil/romgen"
)

var log = logrus.New()

// fieldBackend is a pflag.Value selecting the field implementation the
// compiler runs over. Only "bn254" exists today, but it is modeled as an
// extensible named value rather than a bare bool so a second backend has
// somewhere to go.
type fieldBackend struct {
	name  string
	field number.Field
}

func newFieldBackend() *fieldBackend {
	return &fieldBackend{name: "bn254", field: number.Bn254Field}
}

func (f *fieldBackend) String() string { return f.name }

func (f *fieldBackend) Set(v string) error {
	switch v {
	case "bn254":
		f.name, f.field = v, number.Bn254Field
		return nil
	default:
		return fmt.Errorf("unknown field backend %q (known: bn254)", v)
	}
}

func (f *fieldBackend) Type() string { return "field" }

var _ pflag.Value = (*fieldBackend)(nil)

func main() {
	backend := newFieldBackend()

	root := &cobra.Command{
		Use:   "asmpilc",
		Short: "Lower ASM-style machine definitions into ROM and PIL",
	}
	root.PersistentFlags().Var(backend, "field", "field backend to compile against")
	root.PersistentFlags().Bool("verbose", false, "log each compilation phase")

	root.AddCommand(romCommand(backend), pilCommand(backend), listCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list the built-in example machine names",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range exampleNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func romCommand(backend *fieldBackend) *cobra.Command {
	return &cobra.Command{
		Use:   "rom <example>",
		Short: "print the ROM generated for a built-in example machine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			defer recoverToError(&err, "rom")

			machine := lookupExample(args[0])
			logPhase(verbose, machine.Name, "romgen")
			_, rom := romgen.GenerateMachineROM(backend.field, machine)
			if rom == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "// no ROM: machine has no pc register")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), rom.String())
			return nil
		},
	}
}

func pilCommand(backend *fieldBackend) *cobra.Command {
	return &cobra.Command{
		Use:   "pil <example>",
		Short: "print the PIL statements produced for a built-in example machine",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			verbose, _ := cmd.Flags().GetBool("verbose")
			defer recoverToError(&err, "pil")

			machine := lookupExample(args[0])
			logPhase(verbose, machine.Name, "romgen")
			machine, rom := romgen.GenerateMachineROM(backend.field, machine)
			logPhase(verbose, machine.Name, "convert")
			machine = convert.ConvertMachine(backend.field, machine, rom)
			for _, s := range machine.Pil {
				fmt.Fprintln(cmd.OutOrStdout(), pil.RenderStatement(s))
			}
			return nil
		},
	}
}

func lookupExample(name string) *asm.Machine {
	m := exampleMachine(name)
	if m == nil {
		panic(fmt.Sprintf("asmpilc: unknown example machine %q", name))
	}
	return m
}

func logPhase(verbose bool, machine, phase string) {
	if !verbose {
		return
	}
	log.WithFields(logrus.Fields{"machine": machine, "phase": phase}).Info("compiling")
}

// recoverToError turns a panic raised anywhere in the compile pipeline into
// a returned error instead of a crash, the same boundary the bytecode
// interpreter this core replaces used around its own instruction loop.
func recoverToError(err *error, op string) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("asmpilc: %s: %v", op, r)
	}
}
