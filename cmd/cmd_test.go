// ==============================================================================================
// FILE: cmd/cmd_test.go
// ==============================================================================================
// PURPOSE: System-level integration tests. Runs the same worked-example scripts `zen test`
//          checks at runtime, but through testing.T so `go test ./...` catches a pipeline
//          regression without invoking the CLI.
// ==============================================================================================

package cmd

import "testing"

func TestScriptCasesProduceExpectedOutput(t *testing.T) {
	for _, tc := range scriptCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := runScriptCapturing(tc.source)
			if err != nil {
				t.Fatalf("çalıştırma hatası: %v", err)
			}
			if got != tc.expected {
				t.Errorf("beklenen %q, alınan %q", tc.expected, got)
			}
		})
	}
}
