// ==============================================================================================
// FILE: cmd/root.go
// ==============================================================================================
// PACKAGE: cmd
// PURPOSE: The spf13/cobra command tree: `run`, `test`, `stats`, plus the bare invocation
//          dropping into the REPL.
// ==============================================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"zen/repl"
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "zen",
	Short: "zen, Türkçe anahtar kelimeli betik dili yorumlayıcısı",
	Long:  "zen bir dosyayı çalıştırır, iç sınamaları yürütür ya da etkileşimli bir kabuk açar.",
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		return repl.Start(os.Stdout, verbose)
	},
}

// Execute is called by main.go; it runs the resolved subcommand and exits nonzero on error.
func Execute() {
	rootCmd.PersistentFlags().Bool("verbose", false, "ayrıntılı günlük çıktısı")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
}
