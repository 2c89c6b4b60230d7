// ==============================================================================================
// FILE: repl/repl.go
// ==============================================================================================
// PACKAGE: repl
// PURPOSE: The interactive front-end. Lines are buffered until a blank line, then the whole
//          paragraph is run through the assembler and executor against one scope tree that
//          persists for the session — so a function or variable defined in one paragraph is
//          still visible in the next. Built on chzyer/readline for history and line editing.
// ==============================================================================================

package repl

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"zen/assembler"
	"zen/diag"
	"zen/driver"
	"zen/exec"
)

const banner = `
zen — Türkçe anahtar kelimeli betik dili
".çık" ile çıkabilir, boş satırla paragrafı çalıştırabilirsiniz.
`

var promptColor = color.New(color.FgCyan).SprintFunc()

// Start launches the REPL. It reads from the terminal (readline owns stdin directly) and
// writes program output and diagnostics to out.
func Start(out io.Writer, verbose bool) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          promptColor("zen> "),
		InterruptPrompt: "^C",
		EOFPrompt:       ".çık",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprint(out, banner)

	log := logrus.New()
	log.SetOutput(io.Discard)
	if verbose {
		log.SetOutput(out)
		log.SetLevel(logrus.TraceLevel)
	}

	asm := assembler.New("<repl>", true, log)
	driver.PreseedGlobals(asm.Manager())
	ex := exec.New(asm.Manager(), "<repl>", out, os.Stdin, time.Now().UnixNano(), log)

	var buf []string
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buf = nil
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == ".çık" || trimmed == ".exit" {
			return nil
		}
		if trimmed == "" {
			if len(buf) == 0 {
				continue
			}
			runParagraph(asm, ex, out, strings.Join(buf, "\n"))
			buf = nil
			continue
		}
		buf = append(buf, line)
		rl.SetPrompt(promptColor("...  "))
	}
}

func runParagraph(asm *assembler.Assembler, ex *exec.Executor, out io.Writer, src string) {
	start := ex.BodyLen(asm.Manager().RootID())
	if err := asm.AssembleSource(src); err != nil {
		printDiagErr(out, err)
	}
	if _, err := ex.ExecuteScopeFrom(asm.Manager().RootID(), start); err != nil {
		printDiagErr(out, err)
	}
}

func printDiagErr(out io.Writer, err error) {
	if me, ok := err.(*multierror.Error); ok {
		for _, sub := range me.Errors {
			fmt.Fprintln(out, diag.Print(sub))
		}
		return
	}
	fmt.Fprintln(out, diag.Print(err))
}
