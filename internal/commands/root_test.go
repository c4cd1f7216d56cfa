package commands

import (
	"testing"
)

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "bugreport" {
		t.Errorf("Use = %q, want bugreport", rootCmd.Use)
	}

	want := map[string]bool{
		"chat":   false,
		"serve":  false,
		"config": false,
	}
	for _, sub := range rootCmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestRootCommand_EndpointFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("endpoint")
	if flag == nil {
		t.Fatal("missing --endpoint flag")
	}
	if flag.Shorthand != "e" {
		t.Errorf("shorthand = %q, want e", flag.Shorthand)
	}
}
