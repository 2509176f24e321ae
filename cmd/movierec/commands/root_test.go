package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testCSV = "id,title,overview,vote_average\n" +
	"1,Alpha,a spy thriller about espionage,7.5\n" +
	"2,Beta,a romantic espionage drama,6.1\n" +
	"3,Gamma,a cooking documentary,\n" +
	"4,Alphaville,a detective in a dystopian city,8\n"

// writeConfig creates a config file pointing at a temporary CSV catalog.
func writeConfig(t *testing.T) (configPath, csvPath string) {
	t.Helper()
	dir := t.TempDir()
	csvPath = filepath.Join(dir, "movies.csv")
	if err := os.WriteFile(csvPath, []byte(testCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	configPath = filepath.Join(dir, "config.yaml")
	yaml := fmt.Sprintf(`catalog:
  source: csv
  path: %q
database:
  driver: sqlite
  path: %q
tmdb:
  api_key: ""
`, csvPath, filepath.Join(dir, "movies.db"))
	if err := os.WriteFile(configPath, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	return configPath, csvPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()
	if cmd.Use != "movierec" {
		t.Errorf("Use = %q, want %q", cmd.Use, "movierec")
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("descriptions should not be empty")
	}

	want := []string{"recommend", "titles", "terms", "ingest", "publish", "version"}
	for _, name := range want {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	for _, flag := range []string{"config", "verbose"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("--%s flag not found", flag)
		}
	}
}

func TestRecommendCmd_Flags(t *testing.T) {
	cmd := NewRecommendCmd(&globalOptions{})
	tests := []struct {
		name     string
		defValue string
	}{
		{"top", "5"},
		{"posters", "false"},
		{"format", "table"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := cmd.Flags().Lookup(tt.name)
			if f == nil {
				t.Fatalf("--%s flag not found", tt.name)
			}
			if f.DefValue != tt.defValue {
				t.Errorf("--%s default = %q, want %q", tt.name, f.DefValue, tt.defValue)
			}
		})
	}
}

func TestRecommendCmd_Table(t *testing.T) {
	cfg, _ := writeConfig(t)
	out, err := run(t, "--config", cfg, "recommend", "Alpha", "--top", "2")
	if err != nil {
		t.Fatalf("recommend error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("output = %q, want header plus 2 rows", out)
	}
	if !strings.Contains(lines[1], "Beta") || !strings.Contains(lines[2], "Gamma") {
		t.Errorf("rows = %q", lines[1:])
	}
}

func TestRecommendCmd_JSON(t *testing.T) {
	cfg, _ := writeConfig(t)
	out, err := run(t, "--config", cfg, "recommend", "Beta", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var resp struct {
		Found   bool `json:"found"`
		Total   int  `json:"total"`
		Results []struct {
			Title string `json:"title"`
		} `json:"results"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if !resp.Found || resp.Total != 3 || resp.Results[0].Title != "Alpha" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestRecommendCmd_UnknownTitleSuggests(t *testing.T) {
	cfg, _ := writeConfig(t)
	out, err := run(t, "--config", cfg, "recommend", "alpha")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No movie titled") || !strings.Contains(out, "Alpha, Alphaville") {
		t.Errorf("output = %q", out)
	}
}

func TestRecommendCmd_InvalidFlags(t *testing.T) {
	cfg, _ := writeConfig(t)
	if _, err := run(t, "--config", cfg, "recommend", "Alpha", "--top", "0"); err == nil {
		t.Error("--top 0 should fail")
	}
	if _, err := run(t, "--config", cfg, "recommend", "Alpha", "--format", "xml"); err == nil {
		t.Error("--format xml should fail")
	}
	if _, err := run(t, "--config", cfg, "recommend"); err == nil {
		t.Error("missing title should fail")
	}
}

func TestTitlesAndTermsCmd(t *testing.T) {
	cfg, _ := writeConfig(t)

	out, err := run(t, "--config", cfg, "titles", "--search", "alpha")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Alphaville") || strings.Contains(out, "Beta") {
		t.Errorf("titles output = %q", out)
	}

	out, err = run(t, "--config", cfg, "terms", "Gamma")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "cooking") || !strings.Contains(out, "documentary") {
		t.Errorf("terms output = %q", out)
	}

	if _, err := run(t, "--config", cfg, "terms", "Nope"); err == nil {
		t.Error("terms for unknown title should fail")
	}
}

func TestIngestCmd(t *testing.T) {
	cfg, csvPath := writeConfig(t)
	out, err := run(t, "--config", cfg, "ingest", "--csv", csvPath)
	if err != nil {
		t.Fatalf("ingest error = %v", err)
	}
	if !strings.Contains(out, "Imported 4 movies") {
		t.Errorf("output = %q", out)
	}

	if _, err := run(t, "--config", cfg, "ingest"); err == nil {
		t.Error("ingest without --csv should fail")
	}
}

func TestVersionCmd(t *testing.T) {
	SetVersion("1.2.3", "abc123", "2024-01-01")
	defer SetVersion("dev", "none", "unknown")

	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "movierec 1.2.3") || !strings.Contains(out, "abc123") {
		t.Errorf("output = %q", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("a very long movie title", 10); got != "a very..." {
		t.Errorf("truncate = %q", got)
	}
}
