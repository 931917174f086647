package main

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/decker502/confetti/pkg/config"
)

// TestSettingsCommand 修改后的设置被持久化，再次运行时读回
func TestSettingsCommand(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	run := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		root := newRootCmd()
		root.SetOut(&out)
		root.SetArgs(args)
		if err := root.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return out.String()
	}

	if got := run("settings"); !strings.Contains(got, "verbose: false") {
		t.Errorf("default settings output = %q", got)
	}

	run("settings", "--verbose", "--fire-on-start")

	got := run("settings")
	if !strings.Contains(got, "verbose: true") || !strings.Contains(got, "fireOnStart: true") {
		t.Errorf("persisted settings output = %q", got)
	}
}

func TestRootCommandFlags(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"once", "no-bus", "fire-on-start"} {
		if root.Flags().Lookup(name) == nil {
			t.Errorf("missing flag --%s", name)
		}
	}
	if root.PersistentFlags().Lookup("verbose") == nil {
		t.Error("missing persistent flag --verbose")
	}

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"fire", "once", "settings"} {
		if !names[want] {
			t.Errorf("missing subcommand %s", want)
		}
	}
}

// TestLoadSettingsLogsOnlyWhenVerbose 非详细模式下加载设置不输出任何日志
func TestLoadSettingsLogsOnlyWhenVerbose(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	persist := func(verbose bool) {
		t.Helper()
		store, err := config.OpenStore()
		if err != nil {
			t.Fatalf("OpenStore() error: %v", err)
		}
		sm := config.NewSettingsManager(store)
		sm.SetVerbose(verbose)
		if err := sm.Save(); err != nil {
			t.Fatalf("Save() error: %v", err)
		}
	}

	load := func() (*daemonFlags, string) {
		t.Helper()
		var stderr bytes.Buffer
		root := newRootCmd()
		root.SetErr(&stderr)
		flags := &daemonFlags{}
		loadSettings(root, flags)
		log.Printf("[Main] after load")
		return flags, stderr.String()
	}

	persist(false)
	flags, out := load()
	if flags.verbose {
		t.Error("verbose = true, want false")
	}
	if out != "" {
		t.Errorf("non-verbose load wrote %q", out)
	}

	persist(true)
	flags, out = load()
	if !flags.verbose {
		t.Error("verbose = false, want true from settings")
	}
	if !strings.Contains(out, "[SettingsManager] Settings loaded successfully") {
		t.Errorf("verbose load should replay buffered logs, got %q", out)
	}
	if !strings.Contains(out, "[Main] after load") {
		t.Errorf("verbose load should keep logging to stderr, got %q", out)
	}
}

func TestConfigureLoggingUsesComponentPrefixesOnly(t *testing.T) {
	t.Cleanup(func() {
		log.SetPrefix("")
		log.SetFlags(log.LstdFlags)
	})
	log.SetPrefix("[stale] ")

	configureLogging()

	if p := log.Prefix(); p != "" {
		t.Errorf("log prefix = %q, want empty", p)
	}
	if f := log.Flags(); f != log.Ltime|log.Lmicroseconds {
		t.Errorf("log flags = %d, want Ltime|Lmicroseconds", f)
	}
}
