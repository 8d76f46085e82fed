package cli

import (
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	sort.Strings(names)

	want := []string{"cache", "completion", "layout", "render", "route", "serve"}
	for _, w := range want {
		found := false
		for _, n := range names {
			if n == w {
				found = true
			}
		}
		if !found {
			t.Errorf("missing subcommand %q (have %v)", w, names)
		}
	}
}

func TestRenderRejectsBadFormat(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"render", "--no-cache", "-f", "gif", "arch.toml"})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "gif") {
		t.Errorf("err = %v, want an invalid format error", err)
	}
}

func TestCompletionCommand(t *testing.T) {
	for shell := range completionGenerators {
		t.Run(shell, func(t *testing.T) {
			c := New(io.Discard, LogInfo)
			root := c.RootCommand()
			var out strings.Builder
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out.String(), appName) {
				t.Errorf("%s completion does not mention %s", shell, appName)
			}
		})
	}
}

func TestCompleteDiagramFiles(t *testing.T) {
	exts, directive := completeDiagramFiles(nil, nil, "")
	if directive != cobra.ShellCompDirectiveFilterFileExt || strings.Join(exts, ",") != "toml,json" {
		t.Errorf("first argument = %v, %v", exts, directive)
	}
	if _, directive := completeDiagramFiles(nil, []string{"a.toml"}, ""); directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("second argument directive = %v", directive)
	}
}
