package main

import (
	"fmt"
	"os"

	"email2hash/internal/pipeline"
	"email2hash/internal/secret"
	"email2hash/internal/ui"

	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"

	// Environment variable for the word list location
	WordListEnvVar = "EMAIL2HASH_WORDLIST"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.Error.Sprint("Error:"), err)
		os.Exit(1)
	}
}

func run() error {
	a := &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	return newRootCmd(a).Execute()
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "email2hash [flags] <csv-file>",
		Short:   "Read a CSV file and hash the email addresses",
		Long:    usage,
		Version: Version,
		Args:    cobra.ExactArgs(1),

		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Flags(), args)
			if err != nil {
				return err
			}
			a.setLogger(cfg)
			a.logger.Debugf("Resolved config: input=%s output=%s archive=%s wordlist=%s",
				cfg.Input, cfg.OutputPath, cfg.ArchivePath, cfg.WordListPath)
			return a.hashEmails(cfg)
		},
	}

	flags := cmd.Flags()
	flags.BoolP(flagCompress, "c", false, "compress the output file (create a ZIP archive)")
	flags.BoolP(flagSilent, "s", false, "run in silent mode")
	flags.StringP(flagOutput, "o", "", "output file (default: <name>_hashed<ext> in the current directory)")
	flags.StringP(flagWordList, "w", secret.DefaultWordListPath,
		"diceware word list used to generate a key (env "+WordListEnvVar+")")
	flags.BoolP(flagVerbose, "v", false, "enable verbose output")
	flags.BoolP(flagDebug, "d", false, "enable debug output")

	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.SetVersionTemplate("email2hash version {{.Version}}\n")
	return cmd
}

var usage = `email2hash - Pseudonymize the email column of a CSV file

Reads a comma separated file whose header has a column named "email" and
writes one line per data row:

    <row number>,<HMAC (SHA3-256) of the email, lowercase hex>

The secret key is entered twice with echo disabled. Press ENTER at the first
prompt to generate a five word passphrase instead; it is printed once at the
end and never shown again. The same key always produces the same hashes, so
files hashed with one key can be joined on the hash.

SECRET:
    Set ` + secret.EnvVar + ` to skip the prompt (at least ` + fmt.Sprint(secret.MinLength) + ` characters).

LIMITATIONS:
    Fields are split on every comma. Quoted fields and embedded commas are
    not supported and shift the columns of the affected row.

ALGORITHM:
    ` + pipeline.Algorithm + `
`
