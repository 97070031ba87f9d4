package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const goodRule = `apiVersion: safety.myfithero.dev/v1
kind: SafetyRule
metadata:
  name: safety-heart-failure-001
  labels:
    safety.myfithero.dev/risk: critical
    safety.myfithero.dev/category: cardiac
  annotations:
    safety.myfithero.dev/title: Heart failure fluid restriction
    safety.myfithero.dev/description: Limits daily intake for heart failure profiles.
spec:
  cel: 'has_condition(profile, "heart_failure") && amount > 2000.0'
  effect:
    risk: critical
    ceilingMl: 2000
    alert: "Restriction hydrique : insuffisance cardiaque"
`

const goodFixture = `rule: safety-heart-failure-001
cases:
  - name: restricted above ceiling
    profile:
      age: 64
      weight: 78
      medicalConditions:
        - condition: heart_failure
          severity: moderate
    amount: 2600
    trigger: true
  - name: allowed below ceiling
    profile:
      age: 64
      weight: 78
      medicalConditions:
        - condition: heart_failure
          severity: moderate
    amount: 1500
    trigger: false
`

const badRule = `apiVersion: v1
kind: SafetyRule
metadata:
  name: heart-failure
spec:
  cel: 'amount >'
  effect: {}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunValidationValidCatalog(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "safety-heart-failure-001.yaml"), goodRule)
	writeFile(t, filepath.Join(dir, "safety-heart-failure-001-test.yaml"), goodFixture)

	report, err := RunValidation(context.Background(), dir, true)
	if err != nil {
		t.Fatalf("RunValidation() error = %v", err)
	}
	if !report.Valid {
		t.Fatalf("report invalid: %+v", report.Files[0])
	}
	if report.FilesTotal != 1 || report.RulesTotal != 1 {
		t.Errorf("totals = %d files / %d rules, want 1/1", report.FilesTotal, report.RulesTotal)
	}
	if report.TestsRun != 2 || report.TestsFailed != 0 {
		t.Errorf("fixtures = %d run / %d failed, want 2/0", report.TestsRun, report.TestsFailed)
	}
	if ExitCode(report) != 0 {
		t.Error("valid report must map to exit code 0")
	}
}

func TestRunValidationInvalidRule(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "safety-broken-001.yaml"), badRule)

	report, err := RunValidation(context.Background(), dir, false)
	if err != nil {
		t.Fatalf("RunValidation() error = %v", err)
	}
	if report.Valid {
		t.Fatal("report over an invalid rule must not be valid")
	}
	if ExitCode(report) != 1 {
		t.Error("invalid report must map to exit code 1")
	}
}

func TestRunValidationEmptyDirectory(t *testing.T) {
	if _, err := RunValidation(context.Background(), t.TempDir(), false); err == nil {
		t.Fatal("empty directory must be rejected")
	}
}

func TestOutputTextSummary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "safety-heart-failure-001.yaml"), goodRule)

	report, err := RunValidation(context.Background(), dir, false)
	if err != nil {
		t.Fatalf("RunValidation() error = %v", err)
	}

	var buf bytes.Buffer
	if err := OutputText(report, &buf, false); err != nil {
		t.Fatalf("OutputText() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "1 files, 1 rules") || !strings.Contains(out, "all valid") {
		t.Errorf("unexpected summary: %s", out)
	}
}

func TestOutputJSONRoundtrip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "safety-heart-failure-001.yaml"), goodRule)

	report, err := RunValidation(context.Background(), dir, false)
	if err != nil {
		t.Fatalf("RunValidation() error = %v", err)
	}

	var buf bytes.Buffer
	if err := OutputJSON(report, &buf); err != nil {
		t.Fatalf("OutputJSON() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"rulesTotal": 1`) {
		t.Errorf("unexpected JSON: %s", buf.String())
	}
}
