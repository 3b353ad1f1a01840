package tests

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// binaryName returns the appropriate binary name for the current OS
func binaryName() string {
	if runtime.GOOS == "windows" {
		return "pagesmith_test.exe"
	}
	return "pagesmith_test"
}

// buildTestBinary builds the test binary and returns a cleanup function
func buildTestBinary(t *testing.T) (string, func()) {
	t.Helper()
	binName := binaryName()
	buildCmd := exec.Command("go", "build", "-o", binName, "../cmd/pagesmith")
	if err := buildCmd.Run(); err != nil {
		t.Fatalf("failed to build binary: %v", err)
	}
	return binName, func() { os.Remove(binName) }
}

// writeFixtureModel writes a small valid content model to a temp file and
// returns its path.
func writeFixtureModel(t *testing.T) string {
	t.Helper()

	model := map[string]any{
		"title":    "Remote Work Onboarding",
		"subtitle": "A short guide to getting new hires productive from home.",
		"author":   "Jamie Ortiz",
		"sections": []map[string]any{
			{
				"title":   "Set Up Your Workspace",
				"content": "A dedicated desk beats the kitchen table. Get a chair you can sit in for hours.",
				"image":   map[string]any{"url": "https://img.example/desk.jpg", "alt": "A tidy desk"},
			},
			{
				"title":   "Meet the Team",
				"content": "Your first week is for conversations, not commits.\n\n1. Book intro calls\n2. Join the team channels\n3. Shadow a standup",
			},
			{
				"title":   "Ship Something Small",
				"content": "Nothing builds confidence like a merged change in week one.",
			},
		},
	}
	data, err := json.Marshal(model)
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}

	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	cmd := exec.Command("./"+binPath, "version")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("version command failed: %v\noutput: %s", err, output)
	}
	if !strings.Contains(string(output), "pagesmith") {
		t.Errorf("expected version output to mention pagesmith, got: %s", output)
	}
}

func TestProvidersCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	cmd := exec.Command("./"+binPath, "providers")
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("providers command failed: %v\noutput: %s", err, output)
	}

	for _, name := range []string{"anthropic", "openai", "gemini"} {
		if !strings.Contains(string(output), name) {
			t.Errorf("expected providers output to list %s, got: %s", name, output)
		}
	}
}

func TestLayoutCommand(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	modelPath := writeFixtureModel(t)

	cmd := exec.Command("./"+binPath, "layout", modelPath)
	output, err := cmd.Output()
	if err != nil {
		t.Fatalf("layout command failed: %v", err)
	}

	var m struct {
		Sections []struct {
			Title  string `json:"title"`
			Layout string `json:"layoutType"`
		} `json:"sections"`
	}
	if err := json.Unmarshal(output, &m); err != nil {
		t.Fatalf("layout output is not valid JSON: %v", err)
	}
	if len(m.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(m.Sections))
	}
	for _, s := range m.Sections {
		if s.Layout == "" {
			t.Errorf("section %q has no layout assigned", s.Title)
		}
	}
}

func TestLayoutCommand_Errors(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	tests := []struct {
		name string
		args []string
	}{
		{
			name: "missing file",
			args: []string{"layout", "nonexistent.json"},
		},
		{
			name: "no arguments",
			args: []string{"layout"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := exec.Command("./"+binPath, tc.args...)
			if err := cmd.Run(); err == nil {
				t.Error("expected error but got none")
			}
		})
	}
}

func TestLayoutCommand_InvalidModel(t *testing.T) {
	binPath, cleanup := buildTestBinary(t)
	defer cleanup()

	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(`{"title":"x","sections":[]}`), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cmd := exec.Command("./"+binPath, "layout", path)
	if err := cmd.Run(); err == nil {
		t.Error("expected error for model without sections")
	}
}
