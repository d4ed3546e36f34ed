package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"email2hash/internal/archive"
	kerrors "email2hash/internal/errors"
	"email2hash/internal/logger"
	"email2hash/internal/pipeline"
	"email2hash/internal/secret"
	"email2hash/internal/ui"

	"github.com/briandowns/spinner"
)

// secretSource yields the HMAC key; *secret.Provisioner in production.
type secretSource interface {
	Acquire() (secret.Secret, error)
}

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger logger.Logger

	// newSecretSource overrides the interactive provisioner in tests.
	newSecretSource func(cfg Config) secretSource
}

func (a *app) setLogger(cfg Config) {
	a.logger = logger.Logger{
		Verbose: cfg.Verbose,
		Debug:   cfg.Debug,
		Out:     a.stdout,
		Err:     a.stderr,
	}
}

func (a *app) secrets(cfg Config) secretSource {
	if a.newSecretSource != nil {
		return a.newSecretSource(cfg)
	}
	return &secret.Provisioner{
		Reader:       &secret.Terminal{Out: a.stderr},
		WordListPath: cfg.WordListPath,
		Console:      a.stderr,
		Logger:       a.logger,
	}
}

func (a *app) hashEmails(cfg Config) error {
	dest := cfg.Destination()
	if !cfg.Silent {
		if _, err := os.Stat(dest); err == nil {
			ok, err := confirmOverwrite(a.stdin, a.stderr, dest)
			if err != nil {
				return fmt.Errorf("failed to read answer: %w", err)
			}
			if !ok {
				return fmt.Errorf("%w: %s", kerrors.ErrOverwriteDeclined, dest)
			}
		}
	}

	a.logger.Debugf("Acquiring secret")
	sec, err := a.secrets(cfg).Acquire()
	if err != nil {
		return err
	}
	defer sec.Wipe()
	a.logger.Infof("Secret acquired (generated: %t)", sec.Generated)

	s, stop := a.startSpinner("Please wait, hashing email addresses. This may take a while...", cfg)
	start := time.Now()

	count, err := pipeline.HashFile(cfg.Input, cfg.OutputPath, sec.Value)
	if err != nil {
		stop()
		if count > 0 {
			a.logger.Errorf("Hashing stopped after %d rows; %s is incomplete and was not removed", count, cfg.OutputPath)
		}
		return describeError(cfg, err)
	}
	a.logger.Infof("Hashed %d rows into %s", count, cfg.OutputPath)

	if cfg.Compress {
		a.logger.Debugf("Compressing %s into %s", cfg.OutputPath, cfg.ArchivePath)
		if err := archive.Compress(cfg.OutputPath, cfg.ArchivePath); err != nil {
			stop()
			return err
		}
	}
	elapsed := time.Since(start)

	if !cfg.Silent {
		s.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Hashed %d email addresses in %s using %s to %s",
			count, ui.Muted.Sprintf("%.2f seconds", elapsed.Seconds()), pipeline.Algorithm, ui.Path.Sprint(dest))
	}
	stop()

	if sec.Generated {
		fmt.Fprintf(a.stdout, "%s Your secret key (without quotes but spaces matter): \"%s\"\n",
			ui.Info.Sprint("→"), ui.Secret.Sprint(string(sec.Value)))
		fmt.Fprintln(a.stdout, ui.Warning.Sprint("Please clear this screen or exit the terminal after you have "+
			"memorized the secret as it will not be displayed again."))
	}
	return nil
}

// describeError adds the input path to errors the operator has to act on.
func describeError(cfg Config, err error) error {
	path := cfg.Input
	if abs, aerr := filepath.Abs(path); aerr == nil {
		path = abs
	}

	switch {
	case errors.Is(err, kerrors.ErrMissingEmailColumn):
		return fmt.Errorf("unable to find column 'email' in input file %s: %w", path, err)
	case errors.Is(err, kerrors.ErrSchema):
		return fmt.Errorf("input file %s: %w", path, err)
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("file %s not found, please check the file path: %w", cfg.Input, err)
	default:
		return err
	}
}

// confirmOverwrite asks whether path may be replaced. Only "yes" or "y" agree.
func confirmOverwrite(in io.Reader, out io.Writer, path string) (bool, error) {
	fmt.Fprintf(out, "The output file %s exists and will be overwritten\nProceed? (type yes or no): ", ui.Path.Sprint(path))

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	switch strings.TrimSpace(answer) {
	case "yes", "y":
		return true, nil
	default:
		return false, nil
	}
}

// startSpinner shows progress unless running silent or verbose. The returned
// function stops it and prints FinalMSG, if set, on stdout.
func (a *app) startSpinner(message string, cfg Config) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(a.stderr))
	s.Suffix = " " + message

	// Ignore color errors - continue without colored spinner if it fails.
	_ = s.Color("cyan")

	animate := !cfg.Silent && !cfg.Verbose && !cfg.Debug
	if animate {
		s.Start()
	}

	stopped := false
	return s, func() {
		if stopped {
			return
		}
		stopped = true

		finalMsg := s.FinalMSG
		s.FinalMSG = ""
		if animate {
			s.Stop()
		}
		if finalMsg != "" {
			fmt.Fprint(a.stdout, ui.EnsureNewline(finalMsg))
		}
	}
}
