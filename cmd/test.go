// ==============================================================================================
// FILE: cmd/test.go
// ==============================================================================================
// PACKAGE: cmd
// PURPOSE: `zen test` — runs a fixed battery of end-to-end scripts through the full pipeline
//          and checks their captured stdout against expected text. These are the scenarios
//          written into the specification as worked examples, kept here as an executable
//          sanity check rather than left as documentation alone.
// ==============================================================================================

package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"zen/assembler"
	"zen/driver"
	"zen/exec"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "dahili örnek betikleri çalıştırıp beklenen çıktıyla karşılaştırır",
	RunE:  runInternalTests,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

type scriptCase struct {
	name     string
	source   string
	expected string
}

var scriptCases = []scriptCase{
	{
		name:     "merhaba-dünya",
		source:   `yazdır "Merhaba"`,
		expected: "Merhaba\n",
	},
	{
		name: "sayaç-döngüsü",
		source: "x=0\n" +
			"5 defa tekrarla\n" +
			"\tx+=2\n" +
			"yazdır x",
		expected: "10\n",
	},
	{
		name: "eğer-zinciri",
		source: "x=2\n" +
			"eğer x == 1 ise\n" +
			"\tyazdır \"bir\"\n" +
			"değilse ve x == 2 ise\n" +
			"\tyazdır \"iki\"\n" +
			"değilse\n" +
			"\tyazdır \"diğer\"",
		expected: "iki\n",
	},
	{
		name: "varsayılan-parametreli-fonksiyon",
		source: "fonksiyon topla(a: sayı, b: sayı = 10)\n" +
			"\tdöndür a + b\n" +
			"yazdır topla(5, 10)\n" +
			"yazdır topla(2)",
		expected: "15\n12\n",
	},
	{
		name:     "adımlı-aralık",
		source:   "0 ile 10 aralığında 3 artarak : i\n\tyazdır i",
		expected: "0\n3\n6\n9\n",
	},
	{
		name: "durdur-ve-devam-et",
		source: "0 ile 10 aralığında : i\n" +
			"\teğer i == 1 ise\n" +
			"\t\tdevam et\n" +
			"\teğer i == 3 ise\n" +
			"\t\tdurdur\n" +
			"\tyazdır i",
		expected: "0\n2\n",
	},
}

func runInternalTests(cmd *cobra.Command, args []string) error {
	failures := 0
	for _, tc := range scriptCases {
		got, err := runScriptCapturing(tc.source)
		if err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "BAŞARISIZ %s: çalıştırma hatası: %v\n", tc.name, err)
			continue
		}
		if got != tc.expected {
			failures++
			fmt.Fprintf(os.Stderr, "BAŞARISIZ %s:\n  beklenen: %q\n  alınan:   %q\n", tc.name, tc.expected, got)
			continue
		}
		fmt.Fprintf(os.Stdout, "GEÇTİ %s\n", tc.name)
	}
	if failures > 0 {
		return fmt.Errorf("%d sınama başarısız", failures)
	}
	return nil
}

func runScriptCapturing(source string) (string, error) {
	var buf bytes.Buffer
	asm := assembler.New("<test>", true, nil)
	driver.PreseedGlobals(asm.Manager())
	if err := asm.AssembleSource(source); err != nil {
		return "", err
	}
	ex := exec.New(asm.Manager(), "<test>", &buf, strings.NewReader(""), time.Now().UnixNano(), nil)
	if err := ex.Run(); err != nil {
		return buf.String(), err
	}
	return buf.String(), nil
}
