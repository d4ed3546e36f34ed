package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
)

const (
	flagCompress = "compress"
	flagSilent   = "silent"
	flagOutput   = "output"
	flagWordList = "wordlist"
	flagVerbose  = "verbose"
	flagDebug    = "debug"
)

// Config holds the options of one run
type Config struct {
	Input        string
	OutputPath   string // plain hashed file
	ArchivePath  string // ZIP written when Compress is set
	WordListPath string

	Compress bool
	Silent   bool
	Verbose  bool
	Debug    bool
}

// Destination is the file the operator asked for: the archive when
// compressing, the plain output otherwise.
func (c Config) Destination() string {
	if c.Compress {
		return c.ArchivePath
	}
	return c.OutputPath
}

func resolveConfig(flags *pflag.FlagSet, args []string) (Config, error) {
	cfg := Config{Input: args[0]}

	var err error
	if cfg.Compress, err = flags.GetBool(flagCompress); err != nil {
		return Config{}, err
	}
	if cfg.Silent, err = flags.GetBool(flagSilent); err != nil {
		return Config{}, err
	}
	if cfg.Verbose, err = flags.GetBool(flagVerbose); err != nil {
		return Config{}, err
	}
	if cfg.Debug, err = flags.GetBool(flagDebug); err != nil {
		return Config{}, err
	}
	if cfg.WordListPath, err = flags.GetString(flagWordList); err != nil {
		return Config{}, err
	}
	if env := os.Getenv(WordListEnvVar); env != "" && !flags.Changed(flagWordList) {
		cfg.WordListPath = env
	}

	output, err := flags.GetString(flagOutput)
	if err != nil {
		return Config{}, err
	}
	cfg.OutputPath, cfg.ArchivePath = outputPaths(cfg.Input, output)
	return cfg, nil
}

// outputPaths derives "<stem>_hashed<ext>" and "<stem>_hashed.zip" in the
// current directory from the input name. A non-empty override replaces the
// plain path and the archive is placed next to it.
func outputPaths(input, override string) (plain, archive string) {
	if override != "" {
		archive = strings.TrimSuffix(override, filepath.Ext(override)) + ".zip"
		if archive == override {
			archive += ".zip"
		}
		return override, archive
	}

	base := filepath.Base(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext) + "_hashed"
	return stem + ext, stem + ".zip"
}
