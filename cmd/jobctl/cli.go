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

	"jobmatch/internal/apiclient"
	"jobmatch/internal/observability"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

var errNotLoggedIn = errors.New("not logged in, run `jobctl login` first")

// CLI holds state shared by every subcommand.
type CLI struct {
	client          *apiclient.Client
	logger          *observability.Logger
	apiURL          string
	credentialsPath string
	verbose         bool
	timeout         time.Duration
}

// NewRootCommand creates the root cobra command
func NewRootCommand() *cobra.Command {
	cli := &CLI{}

	rootCmd := &cobra.Command{
		Use:           "jobctl",
		Short:         "Command line client for the job matching API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.initialize()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cli.apiURL, "api-url", "", "API base URL (defaults to $API_URL)")
	rootCmd.PersistentFlags().StringVar(&cli.credentialsPath, "credentials", "", "Credentials file (defaults to the user config dir)")
	rootCmd.PersistentFlags().DurationVar(&cli.timeout, "timeout", apiclient.DefaultTimeout, "Per request timeout")
	rootCmd.PersistentFlags().BoolVarP(&cli.verbose, "verbose", "v", false, "Log every request")

	rootCmd.AddCommand(newStatusCommand(cli))
	rootCmd.AddCommand(newRegisterCommand(cli))
	rootCmd.AddCommand(newLoginCommand(cli))
	rootCmd.AddCommand(newLogoutCommand(cli))
	rootCmd.AddCommand(newWhoamiCommand(cli))
	rootCmd.AddCommand(newJobsCommand(cli))
	rootCmd.AddCommand(newApplyCommand(cli))
	rootCmd.AddCommand(newUploadResumeCommand(cli))

	return rootCmd
}

func (cli *CLI) initialize() error {
	cfg, err := apiclient.ConfigFromEnv()
	if err != nil {
		return fmt.Errorf("failed to read client config: %w", err)
	}
	if cli.apiURL != "" {
		cfg = apiclient.DefaultConfig(cli.apiURL)
	}
	cfg = cfg.WithTimeout(cli.timeout)

	if cli.credentialsPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("failed to locate config dir: %w", err)
		}
		cli.credentialsPath = filepath.Join(dir, "jobctl", "credentials.json")
	}

	cli.logger = observability.NewNopLogger()
	if cli.verbose {
		cli.logger = observability.NewLogger()
	}

	navigator := apiclient.NewRouteNavigator("/", func(path string) {
		if path == apiclient.LoginPath {
			fmt.Fprintln(os.Stderr, yellow("Session expired or invalid. Run `jobctl login` to sign in again."))
		}
	})
	cli.client = apiclient.New(cfg, apiclient.NewFileStorage(cli.credentialsPath), navigator, cli.logger)
	return nil
}

// readPassword prompts on a terminal and reads a line from in otherwise.
func readPassword(out io.Writer, in io.Reader) (string, error) {
	fmt.Fprint(out, "Password: ")
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		return string(pw), err
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
