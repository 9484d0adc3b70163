package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"jobmatch/internal/apiclient"

	"github.com/spf13/cobra"
)

type statusResponse struct {
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
	Database    string `json:"database"`
}

type authResponse struct {
	Token string         `json:"token"`
	User  apiclient.User `json:"user"`
}

type job struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employment_type"`
	Skills         []string `json:"skills"`
	Status         string   `json:"status"`
}

type jobList struct {
	Jobs       []job `json:"jobs"`
	TotalCount int64 `json:"total_count"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
}

type application struct {
	ID     string `json:"id"`
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

func newStatusCommand(cli *CLI) *cobra.Command {
	var (
		attempts int
		delay    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check that the API is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := apiclient.WithRetry(cmd.Context(), cli.logger, attempts, delay,
				func(ctx context.Context) (statusResponse, error) {
					var s statusResponse
					err := cli.client.Get(ctx, "/health", &s)
					return s, err
				})
			if err != nil {
				return fmt.Errorf("API unreachable after %d attempts: %w", attempts, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", green("●"), status.Message)
			fmt.Fprintf(out, "  environment: %s\n", status.Environment)
			database := status.Database
			if database != "Connected" {
				database = yellow(database)
			}
			fmt.Fprintf(out, "  database:    %s\n", database)
			fmt.Fprintf(out, "  %s\n", gray(status.Timestamp))
			return nil
		},
	}
	cmd.Flags().IntVar(&attempts, "attempts", apiclient.DefaultMaxAttempts, "Maximum attempts")
	cmd.Flags().DurationVar(&delay, "delay", apiclient.DefaultBaseDelay, "Base delay between attempts")
	return cmd
}

func newRegisterCommand(cli *CLI) *cobra.Command {
	var name, email, password, role string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				pw, err := readPassword(cmd.ErrOrStderr(), cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = pw
			}

			var res authResponse
			err := cli.client.Post(cmd.Context(), "/auth/register", map[string]string{
				"name":     name,
				"email":    email,
				"password": password,
				"role":     role,
			}, &res)
			if err != nil {
				return err
			}
			if err := cli.client.SetAuth(res.Token, res.User); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Registered %s as %s\n", green("✓"), bold(res.User.Email), res.User.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when empty)")
	cmd.Flags().StringVar(&role, "role", "seeker", "Account role: seeker or employer")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLoginCommand(cli *CLI) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				pw, err := readPassword(cmd.ErrOrStderr(), cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = pw
			}

			var res authResponse
			err := cli.client.Post(cmd.Context(), "/auth/login", map[string]string{
				"email":    email,
				"password": password,
			}, &res)
			if err != nil {
				return err
			}
			if err := cli.client.SetAuth(res.Token, res.User); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Logged in as %s\n", green("✓"), bold(res.User.Email))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when empty)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCommand(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			cli.client.ClearAuth()
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCommand(cli *CLI) *cobra.Command {
	var offline bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cli.client.IsAuthenticated() {
				return errNotLoggedIn
			}

			user := cli.client.CurrentUser()
			if !offline {
				var res struct {
					User apiclient.User `json:"user"`
				}
				if err := cli.client.Get(cmd.Context(), "/auth/me", &res); err != nil {
					return err
				}
				user = &res.User
			}
			if user == nil {
				return errors.New("no stored user, run `jobctl login` again")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s <%s>\n", bold(user.Name), user.Email)
			fmt.Fprintf(out, "  id:   %s\n", user.ID)
			fmt.Fprintf(out, "  role: %s\n", user.Role)
			if user.ResumePath != "" {
				fmt.Fprintf(out, "  resume: %s\n", user.ResumePath)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "Print the stored user without contacting the API")
	return cmd
}

func newJobsCommand(cli *CLI) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Browse job postings",
	}

	var query, location, skill string
	var page, limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List open jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			for k, v := range map[string]string{"q": query, "location": location, "skill": skill} {
				if v != "" {
					params.Set(k, v)
				}
			}
			if page > 0 {
				params.Set("page", strconv.Itoa(page))
			}
			if limit > 0 {
				params.Set("limit", strconv.Itoa(limit))
			}
			path := "/jobs"
			if len(params) > 0 {
				path += "?" + params.Encode()
			}

			var res jobList
			if err := cli.client.Get(cmd.Context(), path, &res); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(res.Jobs) == 0 {
				fmt.Fprintln(out, "No jobs found")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tLOCATION\tSKILLS")
			for _, j := range res.Jobs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", j.ID, j.Title, j.Company, j.Location, strings.Join(j.Skills, ","))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(out, gray(fmt.Sprintf("page %d, %d of %d jobs", res.Page, len(res.Jobs), res.TotalCount)))
			return nil
		},
	}
	list.Flags().StringVarP(&query, "query", "q", "", "Text search")
	list.Flags().StringVar(&location, "location", "", "Location filter")
	list.Flags().StringVar(&skill, "skill", "", "Skill filter")
	list.Flags().IntVar(&page, "page", 0, "Page number")
	list.Flags().IntVar(&limit, "limit", 0, "Page size")

	cmd.AddCommand(list)
	return cmd
}

func newApplyCommand(cli *CLI) *cobra.Command {
	var coverLetter string
	cmd := &cobra.Command{
		Use:   "apply <job-id>",
		Short: "Apply to a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cli.client.IsAuthenticated() {
				return errNotLoggedIn
			}
			var app application
			err := cli.client.Post(cmd.Context(), "/applications", map[string]string{
				"job_id":       args[0],
				"cover_letter": coverLetter,
			}, &app)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Applied to %s (application %s, %s)\n", green("✓"), app.JobID, app.ID, app.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&coverLetter, "cover-letter", "", "Cover letter text")
	return cmd
}

func newUploadResumeCommand(cli *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "upload-resume <file>",
		Short: "Upload a resume (pdf, doc or docx)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cli.client.IsAuthenticated() {
				return errNotLoggedIn
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			bar := newProgressBar(cmd.ErrOrStderr(), 30)
			err = cli.client.Upload(cmd.Context(), "/users/me/resume", "resume", filepath.Base(args[0]), f, bar.Update)
			bar.Done()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Uploaded %s\n", green("✓"), filepath.Base(args[0]))
			return nil
		},
	}
}
