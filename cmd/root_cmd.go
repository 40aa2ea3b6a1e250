package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var Version = "v0.1.0"

var errUsage = errors.New("usage")

func newRootCmd(params *TomlParams) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tq <path> [file]",
		Short: "tq extracts values from TOML documents.",
		Long: `tq extracts a value from a TOML document by key path, the way jq does for JSON.
The document is read from file, or from standard input when no file is given.

Path syntax:
  .                 the whole document
  .name             a table member
  [n]               an array element, zero based
  .table.arr[0].k   segments chain`,
		Example: `  tq .package.name Cargo.toml
  cat config.toml | tq '.servers[0].host'
  tq -f json .table config.toml`,
		Args:          tomlArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tomlRun(cmd, params, args)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	bindTomlFlags(rootCmd, params)
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of tq",
		Long:  `All software has versions. This is tq's`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tq %s\n", Version)
		},
	}
}

// Execute runs tq with the process arguments and exits with its status.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	params := &TomlParams{}
	rootCmd := newRootCmd(params)
	if args == nil {
		// cobra falls back to os.Args for nil
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		reportError(stderr, params.Color, err)
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", rootCmd.Name())
		}
		return 1
	}
	return 0
}
