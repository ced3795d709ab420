package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/matzehuels/linkdeps/pkg/errors"
	"github.com/matzehuels/linkdeps/pkg/linkdeps"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvMode, EnvOut, EnvRefs, EnvVerbose} {
		t.Setenv(k, "")
	}
}

func parseFlags(t *testing.T, args ...string) (*pflag.FlagSet, runFlags) {
	t.Helper()
	var f runFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(fs, true)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return fs, f
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	fs, f := parseFlags(t)

	cfg, err := loadConfig(t.TempDir(), fs, f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != (config{Mode: linkdeps.ModeDevel}) {
		t.Errorf("cfg = %+v, want devel defaults", cfg)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	toml := "mode = \"deploy\"\nout = \"dist\"\nrefs = true\ncheck = true\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		env  map[string]string
		args []string
		want config
	}{
		{
			name: "file",
			want: config{Mode: linkdeps.ModeDeploy, Out: filepath.Join(dir, "dist"), Refs: true, Check: true},
		},
		{
			name: "env over file",
			env:  map[string]string{EnvMode: "deploy-mix", EnvOut: "/tmp/out", EnvRefs: "false"},
			want: config{Mode: linkdeps.ModeDeployMix, Out: "/tmp/out", Refs: false, Check: true},
		},
		{
			name: "flags over env",
			env:  map[string]string{EnvMode: "deploy-mix"},
			args: []string{"--mode", "publish", "--check=false", "-o", "build"},
			want: config{Mode: linkdeps.ModePublish, Out: "build", Refs: true, Check: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			fs, f := parseFlags(t, tt.args...)

			got, err := loadConfig(dir, fs, f)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("loadConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
		code errors.Code
	}{
		{name: "bad mode in file", file: `mode = "fast"`, code: errors.ErrCodeInvalidMode},
		{name: "bad toml", file: `mode = `, code: errors.ErrCodeInvalidInput},
		{name: "bad bool in env", env: map[string]string{EnvRefs: "maybe"}, code: errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			dir := t.TempDir()
			if tt.file != "" {
				if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(tt.file), 0644); err != nil {
					t.Fatal(err)
				}
			}
			fs, f := parseFlags(t)
			if _, err := loadConfig(dir, fs, f); !errors.Is(err, tt.code) {
				t.Errorf("loadConfig() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestVerboseFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"1", true},
		{"true", true},
		{"false", false},
		{"nope", false},
	}
	for _, tt := range tests {
		t.Setenv(EnvVerbose, tt.value)
		if got := VerboseFromEnv(); got != tt.want {
			t.Errorf("VerboseFromEnv() with %q = %v, want %v", tt.value, got, tt.want)
		}
	}
}
