// SPDX-License-Identifier: AGPL-3.0-or-later

package commands_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"routeforge/internal/cli"
	"routeforge/pkg/model"

	_ "routeforge/internal/ingestors/traefikdynamic"
)

func TestAnalyzeCommand_PlainTextDiagnostics(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "dynamic.yml")
	if err := os.WriteFile(input, []byte(`
http:
  routers:
    r1:
      rule: "Host(`+"`a.com`"+`)"
      service: missing
`), 0o644); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	cmd := cli.NewRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"analyze", input})

	// DanglingServiceRef is a validation error, so Execute() returns non-nil.
	_ = cmd.Execute()

	if !strings.Contains(stdout.String(), "DanglingServiceRef") {
		t.Errorf("expected a DanglingServiceRef diagnostic in stdout, got:\n%s", stdout.String())
	}
}

func TestAnalyzeCommand_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "dynamic.yml")
	if err := os.WriteFile(input, []byte(`
http:
  routers:
    r1:
      rule: "Host(`+"`a.com`"+`)"
      service: missing
`), 0o644); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	cmd := cli.NewRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"analyze", input, "--json"})
	_ = cmd.Execute()

	var diags []model.Diagnostic
	if err := json.Unmarshal(stdout.Bytes(), &diags); err != nil {
		t.Fatalf("expected valid JSON diagnostics array, got error %v:\n%s", err, stdout.String())
	}
	found := false
	for _, d := range diags {
		if d.Code == "DanglingServiceRef" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a DanglingServiceRef diagnostic, got %+v", diags)
	}
}
