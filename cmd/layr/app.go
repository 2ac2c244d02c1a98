package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/manasdutta04/layr/config"
	"github.com/manasdutta04/layr/cost"
	"github.com/manasdutta04/layr/llm"
	"github.com/manasdutta04/layr/llm/providers"
	"github.com/manasdutta04/layr/plan"
	"github.com/manasdutta04/layr/planner"
	"github.com/manasdutta04/layr/sanitize"
	"github.com/manasdutta04/layr/scaffold"
	"github.com/manasdutta04/layr/template"
	"github.com/manasdutta04/layr/version"
)

// App wires configuration, the planner, and the version store for one
// command invocation.
type App struct {
	cfg     *config.Config
	planner *planner.Planner
	store   *version.Store
}

// NewApp loads configuration from workdir and builds the command
// dependencies around it.
func NewApp(workdir string) (*App, error) {
	cfg, err := config.Load(workdir)
	if err != nil {
		return nil, err
	}

	resolve := func() (llm.Provider, error) {
		return providers.CreateProvider(cfg.Provider.Type, cfg.ProviderSettings())
	}

	cache := planner.NewCache(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	p := planner.New(resolve,
		planner.WithCache(cache),
		planner.WithGenerateOptions(cfg.GenerateOptions()),
	)

	var storeOpts []version.StoreOption
	if cfg.History.Dir != "" {
		storeOpts = append(storeOpts, version.WithHistoryDir(cfg.History.Dir))
	}
	storeOpts = append(storeOpts, version.WithMaxVersions(cfg.History.MaxVersions))

	return &App{
		cfg:     cfg,
		planner: p,
		store:   version.NewStore(cfg.Workspace, storeOpts...),
	}, nil
}

func (a *App) provider() (llm.Provider, error) {
	return providers.CreateProvider(a.cfg.Provider.Type, a.cfg.ProviderSettings())
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func planCmd(workdir *string) *cobra.Command {
	var (
		out          string
		templateID   string
		size         string
		planType     string
		skipSanitize bool
	)

	cmd := &cobra.Command{
		Use:   "plan [description]",
		Short: "Generate a project plan from a description",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(*workdir)
			if err != nil {
				return err
			}

			prompt := strings.TrimSpace(strings.Join(args, " "))
			if templateID != "" {
				t, err := template.NewManager("").Get(templateID)
				if err != nil {
					return err
				}
				if prompt == "" {
					prompt = t.Prompt
				} else {
					prompt = t.Prompt + "\n\nAdditional requirements: " + prompt
				}
			}
			if prompt == "" {
				return fmt.Errorf("a project description or --template is required")
			}
			if !skipSanitize {
				prompt = sanitize.Redact(prompt)
			}

			if size != "" {
				app.cfg.Plan.Size = size
			}
			if planType != "" {
				app.cfg.Plan.Type = planType
			}
			opts := app.cfg.GenerateOptions()
			p := planner.New(func() (llm.Provider, error) { return app.provider() },
				planner.WithGenerateOptions(opts))

			ctx, cancel := signalContext()
			defer cancel()

			result, err := p.GeneratePlan(ctx, prompt)
			if err != nil {
				return err
			}

			meta := version.Metadata{
				Model:       app.cfg.Provider.Model,
				Prompt:      prompt,
				Description: "Generated plan: " + result.Title,
			}
			if id, _ := app.store.SaveVersion(result, meta); id != "" {
				fmt.Fprintf(os.Stderr, "Saved plan version %s\n", id)
			}

			doc := result.ToMarkdown()
			if out == "" {
				fmt.Println(doc)
				return nil
			}
			if err := os.WriteFile(out, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Printf("Plan written to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the plan document to this file instead of stdout")
	cmd.Flags().StringVarP(&templateID, "template", "t", "", "Start from a prompt template")
	cmd.Flags().StringVar(&size, "size", "", "Plan size (concise, normal, descriptive)")
	cmd.Flags().StringVar(&planType, "type", "", "Project type (hobby, saas, production, enterprise, prototype, open-source)")
	cmd.Flags().BoolVar(&skipSanitize, "no-sanitize", false, "Skip redaction of emails, keys, and addresses in the prompt")
	return cmd
}

func refineCmd(workdir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refine <plan-file> <section-title> <refinement>",
		Short: "Regenerate one section of a plan document",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(*workdir)
			if err != nil {
				return err
			}

			path := args[0]
			title := args[1]
			refinement := strings.Join(args[2:], " ")

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			content := string(data)

			section, ok := plan.FindSection(content, title)
			if !ok {
				var names []string
				for _, s := range plan.ParseSections(content) {
					names = append(names, s.Title)
				}
				return fmt.Errorf("section %q not found; sections: %s", title, strings.Join(names, ", "))
			}

			ctx, cancel := signalContext()
			defer cancel()

			refined, err := app.planner.RefineSection(ctx, section.Content, refinement, content)
			if err != nil {
				return err
			}

			updated := plan.ReplaceSection(content, section, refined)
			if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			fmt.Printf("Refined section %q in %s\n", section.Title, path)
			return nil
		},
	}
	return cmd
}

func historyCmd(workdir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage saved plan versions",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved plan versions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(*workdir)
			if err != nil {
				return err
			}
			versions, err := app.store.GetVersions()
			if err != nil {
				return err
			}
			if len(versions) == 0 {
				fmt.Println("No saved plan versions.")
				return nil
			}
			for _, v := range versions {
				title := ""
				if v.Plan != nil {
					title = v.Plan.Title
				}
				fmt.Printf("%s  %s  %s\n", v.ID, v.Timestamp.Format("2006-01-02 15:04"), title)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved plan version as markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(*workdir)
			if err != nil {
				return err
			}
			v, err := app.store.GetVersion(args[0])
			if err != nil {
				return err
			}
			if v == nil {
				return fmt.Errorf("version %s not found", args[0])
			}
			fmt.Println(v.Plan.ToMarkdown())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved plan version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(*workdir)
			if err != nil {
				return err
			}
			ok, err := app.store.DeleteVersion(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("version %s not found", args[0])
			}
			fmt.Printf("Deleted version %s\n", args[0])
			return nil
		},
	})

	var keep int
	cleanup := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete all but the newest versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(*workdir)
			if err != nil {
				return err
			}
			removed, err := app.store.CleanupOldVersions(keep)
			if err != nil {
				return err
			}
			fmt.Printf("Removed %d old versions\n", removed)
			return nil
		},
	}
	cleanup.Flags().IntVar(&keep, "keep", 50, "Number of versions to keep")
	cmd.AddCommand(cleanup)

	return cmd
}

func providersCmd(workdir *string) *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List supported AI providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(*workdir)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			for _, ptype := range providers.SupportedProviders() {
				p, err := providers.CreateProvider(string(ptype), app.cfg.ProviderSettings())
				if err != nil {
					continue
				}
				marker := " "
				if string(ptype) == strings.ToLower(app.cfg.Provider.Type) {
					marker = "*"
				}
				line := fmt.Sprintf("%s %-10s %s", marker, ptype, p.Name())
				if check {
					if p.IsAvailable(ctx) {
						line += "  [available]"
					} else {
						line += "  [unavailable]"
					}
				}
				fmt.Println(line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Probe each provider's availability")
	return cmd
}

func validateKeyCmd(workdir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-key [key]",
		Short: "Check an API key against the configured provider",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(*workdir)
			if err != nil {
				return err
			}
			p, err := app.provider()
			if err != nil {
				return err
			}

			key := app.cfg.Provider.APIKey
			if len(args) == 1 {
				key = args[0]
			}

			ctx, cancel := signalContext()
			defer cancel()

			if p.ValidateAPIKey(ctx, key) {
				fmt.Printf("API key is valid for %s\n", p.Name())
				return nil
			}
			return fmt.Errorf("API key is not valid for %s", p.Name())
		},
	}
	return cmd
}

func scaffoldCmd(workdir *string) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "scaffold <plan-file>",
		Short: "Create the file structure a plan document describes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(*workdir)
			if err != nil {
				return err
			}

			exec := scaffold.NewExecutor(app.cfg.Workspace,
				scaffold.WithExcludes(app.cfg.Scaffold.Exclude))

			if watch {
				ctx, cancel := signalContext()
				defer cancel()
				fmt.Printf("Watching %s (ctrl-c to stop)\n", args[0])
				err := scaffold.NewWatcher(exec).Watch(ctx, args[0])
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			result, err := exec.Execute(string(data))
			if err != nil {
				return err
			}
			fmt.Printf("Created %d directories and %d files (%d skipped)\n",
				len(result.CreatedDirs), len(result.CreatedFiles), len(result.Skipped))
			return nil
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-run scaffolding when the plan file changes")
	return cmd
}

func estimateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "estimate <plan-file>",
		Short: "Estimate the monthly cost of services a plan mentions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			fmt.Println(cost.EstimateCosts(string(data)).Markdown())
			return nil
		},
	}
}

func templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage prompt templates",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := template.NewManager("").List()
			if err != nil {
				return err
			}
			for _, t := range list {
				origin := "user"
				if t.Builtin {
					origin = "builtin"
				}
				fmt.Printf("%-22s %-8s %s\n", t.ID, origin, t.Description)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Print a template's prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := template.NewManager("").Get(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s)\n\n%s\n", t.Name, t.ID, t.Prompt)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := template.NewManager("").Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted template %s\n", args[0])
			return nil
		},
	})

	return cmd
}
