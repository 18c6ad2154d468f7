// Command cpre is a standalone C-family preprocessor CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/opensrc-tools/cpre/pkg/cpp"
	"github.com/opensrc-tools/cpre/pkg/preproc"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	defineFlags           []string
	undefineFlags         []string
	includePaths          []string
	angleIncludePaths     []string
	outputPath            string
	ignoreMissingIncludes bool
	printMacros           bool
	evalExpr              string
	useExternal           bool
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cpre [file]",
		Short:         "cpre preprocesses C-family source, expanding macros and conditionals",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(args, out, errOut)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().StringArrayVarP(&defineFlags, "define", "D", nil, "Define macro (NAME or NAME=VALUE)")
	rootCmd.Flags().StringArrayVarP(&undefineFlags, "undefine", "U", nil, "Undefine macro")
	rootCmd.Flags().StringArrayVarP(&includePaths, "include", "I", nil, "Add directory to quoted-include search path")
	rootCmd.Flags().StringArrayVar(&angleIncludePaths, "isystem", nil, "Add directory to angle-bracket include search path")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write output to a file instead of stdout")
	rootCmd.Flags().BoolVar(&ignoreMissingIncludes, "ignore-missing-includes", false, "Emit nothing for an unresolvable #include instead of failing")
	rootCmd.Flags().BoolVar(&printMacros, "print-macros", false, "After preprocessing, print the final macro table to stderr")
	rootCmd.Flags().StringVar(&evalExpr, "eval", "", "Evaluate EXPR as a #if-style condition against -D/-U and exit")
	rootCmd.Flags().BoolVar(&useExternal, "use-external", false, "Shell out to the system C preprocessor (cc -E) instead of the built-in one")

	return rootCmd
}

func buildOptions() cpp.Options {
	opts := cpp.Options{
		QuoteIncludePaths:     includePaths,
		AngleIncludePaths:     angleIncludePaths,
		IgnoreMissingIncludes: ignoreMissingIncludes,
		Defines:               make(map[string]string),
		Undefines:             undefineFlags,
	}
	for _, d := range defineFlags {
		if idx := strings.Index(d, "="); idx >= 0 {
			opts.Defines[d[:idx]] = d[idx+1:]
		} else {
			opts.Defines[d] = "1"
		}
	}
	return opts
}

// runRoot drives the command. --eval and --print-macros need direct access
// to a live macro table, so those paths talk to pkg/cpp directly; plain file
// preprocessing goes through pkg/preproc, which also knows how to fall back
// to the system preprocessor under --use-external.
func runRoot(args []string, out, errOut io.Writer) error {
	opts := buildOptions()

	if evalExpr != "" || printMacros {
		pp, err := cpp.NewPreprocessor(opts)
		if err != nil {
			fmt.Fprintf(errOut, "cpre: %v\n", err)
			return err
		}

		if evalExpr != "" {
			v, err := cpp.Evaluate(evalExpr, pp.Macros())
			if err != nil {
				fmt.Fprintf(errOut, "cpre: %v\n", err)
				return err
			}
			fmt.Fprintln(out, v)
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("cpre: no input file given")
		}
		result, err := pp.ProcessFile(args[0])
		if err != nil {
			fmt.Fprintf(errOut, "cpre: %v\n", err)
			return err
		}
		if err := writeResult(result, out, errOut); err != nil {
			return err
		}
		printMacroTable(pp, errOut)
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("cpre: no input file given")
	}

	result, err := preproc.Preprocess(args[0], &preproc.Options{
		IncludePaths:          opts.QuoteIncludePaths,
		SystemPaths:           opts.AngleIncludePaths,
		Defines:               opts.Defines,
		Undefines:             opts.Undefines,
		IgnoreMissingIncludes: opts.IgnoreMissingIncludes,
		UseExternal:           useExternal,
	})
	if err != nil {
		fmt.Fprintf(errOut, "cpre: %v\n", err)
		return err
	}
	return writeResult(result, out, errOut)
}

func writeResult(result string, out, errOut io.Writer) error {
	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(result), 0644); err != nil {
			fmt.Fprintf(errOut, "cpre: writing %s: %v\n", outputPath, err)
			return err
		}
		return nil
	}
	fmt.Fprint(out, result)
	return nil
}

func printMacroTable(pp *cpp.Preprocessor, errOut io.Writer) {
	names := pp.Macros().Names()
	sort.Strings(names)
	for _, name := range names {
		m := pp.Macros().Lookup(name)
		if m.IsFunctionLike() {
			fmt.Fprintf(errOut, "#define %s(%s) %s\n", m.Name, strings.Join(m.Params, ", "), m.Body)
		} else {
			fmt.Fprintf(errOut, "#define %s %s\n", m.Name, m.Body)
		}
	}
}
