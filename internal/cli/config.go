package cli

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/matzehuels/linkdeps/pkg/errors"
	"github.com/matzehuels/linkdeps/pkg/linkdeps"
	"github.com/matzehuels/linkdeps/pkg/pipeline"
)

// ConfigFileName is the optional per-package config file.
const ConfigFileName = "linkdeps.toml"

// Environment variables read by the CLI.
const (
	EnvMode    = "LINKDEPS_MODE"
	EnvOut     = "LINKDEPS_OUT"
	EnvRefs    = "LINKDEPS_REFS"
	EnvVerbose = "LINKDEPS_VERBOSE"
)

// fileConfig mirrors linkdeps.toml. Pointers tell unset from false.
type fileConfig struct {
	Mode  string `toml:"mode"`
	Out   string `toml:"out"`
	Refs  *bool  `toml:"refs"`
	Check *bool  `toml:"check"`
}

// config is the resolved run configuration.
type config struct {
	Mode  linkdeps.Mode
	Out   string
	Refs  bool
	Check bool
}

// runFlags holds the raw values of the run flags.
type runFlags struct {
	mode  string
	out   string
	refs  bool
	check bool
}

func (f *runFlags) register(fs *pflag.FlagSet, withMode bool) {
	if withMode {
		fs.StringVarP(&f.mode, "mode", "m", "", "update mode: devel, publish, deploy, deploy-mix (default devel)")
		fs.BoolVar(&f.refs, "refs", false, "show which packages contribute each dependency")
	}
	fs.StringVarP(&f.out, "out", "o", "", "output directory (default: source directory)")
	fs.BoolVar(&f.check, "check", false, "report only; do not write package.json or create links")
}

// loadConfig resolves the run configuration for srcDir. Sources, lowest
// precedence first: defaults, linkdeps.toml, environment, changed flags.
func loadConfig(srcDir string, fs *pflag.FlagSet, f runFlags) (config, error) {
	cfg := config{Mode: pipeline.DefaultMode}

	fc, err := readConfigFile(srcDir)
	if err != nil {
		return config{}, err
	}
	if fc.Mode != "" {
		cfg.Mode = linkdeps.Mode(fc.Mode)
	}
	if fc.Out != "" {
		cfg.Out = fc.Out
		if !filepath.IsAbs(cfg.Out) {
			cfg.Out = filepath.Join(srcDir, cfg.Out)
		}
	}
	if fc.Refs != nil {
		cfg.Refs = *fc.Refs
	}
	if fc.Check != nil {
		cfg.Check = *fc.Check
	}

	if v := strings.TrimSpace(os.Getenv(EnvMode)); v != "" {
		cfg.Mode = linkdeps.Mode(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvOut)); v != "" {
		cfg.Out = v
	}
	if v, ok, err := envBool(EnvRefs); err != nil {
		return config{}, err
	} else if ok {
		cfg.Refs = v
	}

	if fs.Changed("mode") {
		cfg.Mode = linkdeps.Mode(f.mode)
	}
	if fs.Changed("out") {
		cfg.Out = f.out
	}
	if fs.Changed("refs") {
		cfg.Refs = f.refs
	}
	if fs.Changed("check") {
		cfg.Check = f.check
	}

	if _, err := linkdeps.ParseMode(string(cfg.Mode)); err != nil {
		return config{}, err
	}
	return cfg, nil
}

// readConfigFile decodes srcDir/linkdeps.toml. A missing file is not an
// error.
func readConfigFile(srcDir string) (fileConfig, error) {
	var fc fileConfig
	path := filepath.Join(srcDir, ConfigFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fc, nil
	}
	if err != nil {
		return fc, errors.Wrap(errors.ErrCodeInvalidInput, err, "cannot read %s", path)
	}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fc, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid %s", path)
	}
	return fc, nil
}

// VerboseFromEnv reports whether LINKDEPS_VERBOSE asks for debug logging.
func VerboseFromEnv() bool {
	v, ok, err := envBool(EnvVerbose)
	return ok && err == nil && v
}

func envBool(key string) (value, ok bool, err error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false, false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, errors.New(errors.ErrCodeInvalidInput, "%s: invalid boolean %q", key, raw)
	}
	return v, true, nil
}
