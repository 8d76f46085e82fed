package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,dot,json", []string{"svg", "dot", "json"}},
		{"pdf only", "pdf", []string{"pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "deck/arch.toml", "deck/arch"},
		{"", "deck/arch.routes.json", "deck/arch"},
		{"out/slide.svg", "arch.toml", "out/slide"},
		{"out/slide.dot", "arch.toml", "out/slide"},
		{"out/slide", "arch.toml", "out/slide"},
		{"out/slide.v2", "arch.toml", "out/slide.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "arch.toml")
	artifacts := map[string][]byte{
		"svg": []byte("<svg/>"),
		"dot": []byte("digraph G {}"),
	}

	err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   []string{"svg", "dot"},
		input:     input,
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	for format, want := range artifacts {
		got, err := os.ReadFile(filepath.Join(dir, "arch."+format))
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != string(want) {
			t.Errorf("%s = %q, want %q", format, got, want)
		}
	}

	// A single format goes to the output path as given.
	single := filepath.Join(dir, "slide-3.image")
	err = writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   []string{"svg"},
		input:     input,
		output:    single,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(single); err != nil {
		t.Errorf("single output not written: %v", err)
	}
}
