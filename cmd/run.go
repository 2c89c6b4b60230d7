// ==============================================================================================
// FILE: cmd/run.go
// ==============================================================================================
// PACKAGE: cmd
// PURPOSE: `zen run <file>` — the batch pipeline entry point: read, assemble, optionally
//          dump the AST, then execute.
// ==============================================================================================

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"zen/assembler"
	"zen/diag"
	"zen/driver"
	"zen/exec"
	"zen/lexer"
)

var runCmd = &cobra.Command{
	Use:   "run <dosya>",
	Short: "bir zen betiğini çalıştırır",
	Args:  cobra.ExactArgs(1),
	RunE:  runFile,
}

func init() {
	runCmd.Flags().Bool("printast", false, "çözümlenen komut ağacını yazdır")
	runCmd.Flags().Bool("printpreprocessoutput", false, "her satırın jeton akışını yazdır")
	runCmd.Flags().Bool("noexecute", false, "yürütmeden sadece derle")
	runCmd.Flags().Bool("strict", true, "girinti hatalarında sıkı mod")
	rootCmd.AddCommand(runCmd)
}

func runFile(cmd *cobra.Command, args []string) error {
	path := args[0]
	verbose, _ := cmd.Flags().GetBool("verbose")
	printAST, _ := cmd.Flags().GetBool("printast")
	printPreprocess, _ := cmd.Flags().GetBool("printpreprocessoutput")
	noExecute, _ := cmd.Flags().GetBool("noexecute")
	strict, _ := cmd.Flags().GetBool("strict")

	if verbose {
		log.SetLevel(logrus.TraceLevel)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("dosya okunamadı: %w", err)
	}
	src := string(data)

	if printPreprocess {
		dumpTokens(os.Stdout, src)
	}

	asm := assembler.New(path, strict, log)
	driver.PreseedGlobals(asm.Manager())

	assembleStart := time.Now()
	hadErrors := false
	if err := asm.AssembleSource(src); err != nil {
		hadErrors = true
		printAssembleErrors(err)
	}
	log.WithField("elapsed", time.Since(assembleStart)).Info("derleme tamamlandı")

	if printAST {
		dumpScopeTree(os.Stdout, asm, asm.Manager().RootID(), 0)
	}

	if noExecute {
		if hadErrors {
			os.Exit(1)
		}
		return nil
	}

	execStart := time.Now()
	ex := exec.New(asm.Manager(), path, os.Stdout, os.Stdin, time.Now().UnixNano(), log)
	runErr := ex.Run()
	log.WithField("elapsed", time.Since(execStart)).Info("yürütme tamamlandı")
	if runErr != nil {
		fmt.Fprintln(os.Stderr, diag.Print(runErr))
		os.Exit(1)
	}
	if hadErrors {
		os.Exit(1)
	}
	return nil
}

func printAssembleErrors(err error) {
	if me, ok := err.(*multierror.Error); ok {
		for _, sub := range me.Errors {
			fmt.Fprintln(os.Stderr, diag.Print(sub))
		}
		return
	}
	fmt.Fprintln(os.Stderr, diag.Print(err))
}

func dumpTokens(out *os.File, src string) {
	fmt.Fprintln(out, "--- jeton akışı ---")
	for i, line := range splitLines(src) {
		toks := lexer.Tokenize(line)
		fmt.Fprintf(out, "%4d: ", i+1)
		for _, t := range toks {
			fmt.Fprintf(out, "%s(%q) ", t.Kind, t.Literal)
		}
		fmt.Fprintln(out)
	}
}

func splitLines(src string) []string {
	var lines []string
	start := 0
	for i, r := range src {
		if r == '\n' {
			lines = append(lines, src[start:i])
			start = i + 1
		}
	}
	lines = append(lines, src[start:])
	return lines
}
