package secret

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"golang.org/x/term"
)

// Terminal reads secrets from the controlling terminal with echo disabled.
type Terminal struct {
	// Out receives prompts. Defaults to os.Stderr.
	Out io.Writer
}

func (t *Terminal) out() io.Writer {
	if t.Out != nil {
		return t.Out
	}
	return os.Stderr
}

// ReadSecret prints prompt and reads a line without echo. When STDIN is piped
// it reads from /dev/tty instead.
func (t *Terminal) ReadSecret(prompt string) ([]byte, error) {
	fmt.Fprint(t.out(), prompt)

	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		return t.readNoEcho(fd)
	}

	tty, err := os.Open("/dev/tty")
	if err != nil {
		if runtime.GOOS == "windows" {
			return nil, fmt.Errorf("secret must be set via %s environment variable when STDIN is piped", EnvVar)
		}
		return nil, fmt.Errorf("cannot read secret: STDIN is piped and /dev/tty is not available. Set %s environment variable", EnvVar)
	}
	defer tty.Close()

	return t.readNoEcho(int(tty.Fd()))
}

// readNoEcho restores the saved terminal state before exiting if the process
// is interrupted while echo is off.
func (t *Terminal) readNoEcho(fd int) ([]byte, error) {
	state, err := term.GetState(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to save terminal state: %w", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	defer func() {
		signal.Stop(sigs)
		close(done)
	}()

	go restoreOnSignal(sigs, done, func() {
		_ = term.Restore(fd, state)
		fmt.Fprintln(t.out())
	}, os.Exit)

	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(t.out()) // Print newline after secret input
	if err != nil {
		return nil, err
	}
	return secret, nil
}

// interruptExitCode is the conventional status for a SIGINT termination.
const interruptExitCode = 130

// restoreOnSignal waits until a signal arrives or done is closed. On a signal
// it calls restore and then exit.
func restoreOnSignal(sigs <-chan os.Signal, done <-chan struct{}, restore func(), exit func(int)) {
	select {
	case <-sigs:
		restore()
		exit(interruptExitCode)
	case <-done:
	}
}
