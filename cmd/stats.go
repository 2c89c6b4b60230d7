// ==============================================================================================
// FILE: cmd/stats.go
// ==============================================================================================
// PACKAGE: cmd
// PURPOSE: `zen stats` — a small line-of-code report over the module's own .go files, with an
//          optional --write to drop the report into a markdown file.
// ==============================================================================================

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "kaynak ağacındaki .go dosyalarının satır sayısını raporlar",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().String("write", "", "raporu belirtilen dosyaya yaz")
	rootCmd.AddCommand(statsCmd)
}

type pkgStat struct {
	pkg   string
	files int
	lines int
}

func runStats(cmd *cobra.Command, args []string) error {
	root, err := os.Getwd()
	if err != nil {
		return err
	}

	counts := map[string]*pkgStat{}
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			base := info.Name()
			if base == "_examples" || base == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		lines, err := countLines(path)
		if err != nil {
			return err
		}
		pkg, _ := filepath.Rel(root, filepath.Dir(path))
		if pkg == "." {
			pkg = "(kök)"
		}
		st, ok := counts[pkg]
		if !ok {
			st = &pkgStat{pkg: pkg}
			counts[pkg] = st
		}
		st.files++
		st.lines += lines
		return nil
	})
	if err != nil {
		return err
	}

	var stats []*pkgStat
	total := 0
	for _, st := range counts {
		stats = append(stats, st)
		total += st.lines
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].pkg < stats[j].pkg })

	report := formatReport(stats, total)
	fmt.Fprint(os.Stdout, report)

	writePath, _ := cmd.Flags().GetString("write")
	if writePath != "" {
		if err := os.WriteFile(writePath, []byte(report), 0o644); err != nil {
			return fmt.Errorf("rapor yazılamadı: %w", err)
		}
	}
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		n++
	}
	return n, sc.Err()
}

func formatReport(stats []*pkgStat, total int) string {
	var b strings.Builder
	b.WriteString("# Kod İstatistikleri\n\n")
	b.WriteString("| Paket | Dosya | Satır |\n")
	b.WriteString("|---|---|---|\n")
	for _, st := range stats {
		fmt.Fprintf(&b, "| %s | %d | %d |\n", st.pkg, st.files, st.lines)
	}
	fmt.Fprintf(&b, "| **toplam** |  | **%d** |\n", total)
	return b.String()
}
