package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	codevf "github.com/codevf/codevf-go"
)

var (
	baseURL string
	apiKey  string
	debug   bool
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "codevf",
		Short: "CodeVF CLI for submitting and tracking review tasks",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogger()
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				os.Setenv("CODEVF_DEBUG", "true")
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", codevf.DefaultBaseURL, "Base URL of the CodeVF API")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key (defaults to CODEVF_API_KEY)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")

	rootCmd.AddCommand(newCreateProjectCmd())
	rootCmd.AddCommand(newCreateTaskCmd())
	rootCmd.AddCommand(newGetTaskCmd())
	rootCmd.AddCommand(newCancelTaskCmd())
	rootCmd.AddCommand(newWaitTaskCmd())
	rootCmd.AddCommand(newBalanceCmd())
	rootCmd.AddCommand(newTagsCmd())

	return rootCmd
}

// initLogger configures zerolog for text-based output with no coloring.
func initLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	})
}

func newClient() (*codevf.Client, error) {
	return codevf.New(apiKey, codevf.WithBaseURL(baseURL))
}

func opCtx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 2*time.Minute)
}

func newCreateProjectCmd() *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "create-project",
		Short: "Create a project, or reuse the existing one with the same name",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			start := time.Now()
			project, err := c.CreateProject(ctx, codevf.CreateProjectRequest{
				Name:        name,
				Description: description,
			})
			if err != nil {
				log.Error().Err(err).Str("name", name).Msg("create project failed")
				return err
			}

			log.Debug().Int64("project_id", project.ID).Dur("elapsed", time.Since(start)).Msg("create project completed")
			if project.Reused {
				fmt.Printf("Project reused: %d (%s)\n", project.ID, project.Name)
			} else {
				fmt.Printf("Project created: %d (%s)\n", project.ID, project.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Project description (applied on first creation only)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCreateTaskCmd() *cobra.Command {
	var (
		prompt      string
		maxCredits  int
		projectID   int64
		mode        string
		tagID       int64
		metadata    []string
		attachments []string
		idempotent  bool
	)

	cmd := &cobra.Command{
		Use:   "create-task",
		Short: "Submit a new review task",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			req := codevf.CreateTaskRequest{
				Prompt:     prompt,
				MaxCredits: maxCredits,
				ProjectID:  projectID,
				Mode:       codevf.ServiceMode(mode),
				TagID:      tagID,
			}
			if idempotent {
				req.IdempotencyKey = codevf.NewIdempotencyKey()
			}
			if req.Metadata, err = parseMetadata(metadata); err != nil {
				return err
			}
			if req.Attachments, err = loadAttachments(attachments); err != nil {
				return err
			}

			task, err := c.CreateTask(ctx, req)
			if err != nil {
				log.Error().Err(err).Int64("project_id", projectID).Msg("create task failed")
				return err
			}

			if task.Reused {
				fmt.Printf("Task reused: %s (status %s)\n", task.ID, task.Status)
			} else {
				fmt.Printf("Task created: %s (status %s)\n", task.ID, task.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", "", "Task prompt, 10-10000 characters (required)")
	cmd.Flags().IntVar(&maxCredits, "max-credits", 240, "Upper bound on credits to spend")
	cmd.Flags().Int64Var(&projectID, "project-id", 0, "Project ID from create-project (required)")
	cmd.Flags().StringVar(&mode, "mode", "", "Service mode: realtime_answer, fast or standard")
	cmd.Flags().Int64Var(&tagID, "tag-id", 0, "Expertise tag ID (optional)")
	cmd.Flags().StringArrayVar(&metadata, "meta", nil, "Metadata entry key=value (repeatable)")
	cmd.Flags().StringArrayVar(&attachments, "attach", nil, "Attachment file path (repeatable, max 5)")
	cmd.Flags().BoolVar(&idempotent, "idempotent", false, "Generate and send an idempotency key")
	_ = cmd.MarkFlagRequired("prompt")
	_ = cmd.MarkFlagRequired("project-id")

	return cmd
}

func newGetTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get-task <task-id>",
		Short: "Fetch the latest task status and deliverables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			task, err := c.GetTask(ctx, args[0])
			if err != nil {
				log.Error().Err(err).Str("task_id", args[0]).Msg("get task failed")
				return err
			}
			return printTask(task)
		},
	}
	return cmd
}

func newCancelTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel-task <task-id>",
		Short: "Cancel a pending or in-progress task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			task, err := c.CancelTask(ctx, args[0])
			if err != nil {
				log.Error().Err(err).Str("task_id", args[0]).Msg("cancel task failed")
				return err
			}
			fmt.Printf("Task %s is now %s\n", task.ID, task.Status)
			return nil
		},
	}
	return cmd
}

func newWaitTaskCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "wait <task-id>",
		Short: "Poll a task until it completes or is cancelled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			task, err := c.WaitForTask(cmd.Context(), args[0], interval)
			if err != nil {
				log.Error().Err(err).Str("task_id", args[0]).Msg("wait failed")
				return err
			}
			return printTask(task)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", codevf.MinPollInterval, "Poll interval (floored at the minimum)")
	return cmd
}

func newBalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the current credit balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			balance, err := c.GetBalance(ctx)
			if err != nil {
				log.Error().Err(err).Msg("get balance failed")
				return err
			}
			fmt.Printf("Available: %s\nOn hold:   %s\nTotal:     %s\n",
				balance.Available, balance.OnHold, balance.Total)
			return nil
		},
	}
	return cmd
}

func newTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List the available expertise tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			ctx, cancel := opCtx(cmd)
			defer cancel()

			tags, err := c.ListTags(ctx)
			if err != nil {
				log.Error().Err(err).Msg("list tags failed")
				return err
			}
			for _, t := range tags {
				state := "active"
				if !t.IsActive {
					state = "inactive"
				}
				fmt.Printf("%4d  %-24s x%-6s %s\n", t.ID, t.DisplayName, t.CostMultiplier, state)
			}
			return nil
		},
	}
	return cmd
}

func printTask(task *codevf.Task) error {
	out, err := json.MarshalIndent(task, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
