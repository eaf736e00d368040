package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/artpar/deploykit/internal/core/recipe"
	"github.com/artpar/deploykit/internal/core/recommendation"
	"github.com/artpar/deploykit/internal/shell/catalog"
	"github.com/artpar/deploykit/internal/shell/store"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess       = 0
	ExitConfigError   = 1
	ExitDatabaseError = 2
	ExitCatalogError  = 3
	ExitCommandError  = 4
)

// =============================================================================
// App
// =============================================================================

// App wires the recipe catalog and the deployment history store behind the
// CLI commands.
type App struct {
	config  *Config
	catalog *catalog.Catalog
	store   store.Store
	logger  *slog.Logger
	out     io.Writer
}

// NewApp creates the application from config: loads the catalog and opens
// the deployment history database.
func NewApp(cfg *Config, logger *slog.Logger) (*App, error) {
	c, err := catalog.Load(cfg.Catalog.RecipeDirs...)
	if err != nil {
		return nil, &AppError{
			Op:       "NewApp",
			Err:      err,
			ExitCode: ExitCatalogError,
		}
	}

	if dir := filepath.Dir(cfg.Database.DSN); cfg.Database.DSN != ":memory:" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &AppError{
				Op:       "NewApp",
				Err:      err,
				ExitCode: ExitDatabaseError,
			}
		}
	}
	s, err := store.NewSQLiteStore(cfg.Database.DSN)
	if err != nil {
		return nil, &AppError{
			Op:       "NewApp",
			Err:      err,
			ExitCode: ExitDatabaseError,
		}
	}

	return &App{
		config:  cfg,
		catalog: c,
		store:   s,
		logger:  logger,
		out:     os.Stdout,
	}, nil
}

// Close releases the application's resources.
func (a *App) Close() error {
	return a.store.Close()
}

// Run dispatches a CLI command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return nil
	}

	switch args[0] {
	case "recipes":
		return a.listRecipes()
	case "settings":
		return a.showSettings(ctx, args[1:])
	case "deployments":
		return a.listDeployments(ctx)
	case "help":
		a.printUsage()
		return nil
	default:
		a.printUsage()
		return &AppError{
			Op:       "Run",
			Err:      fmt.Errorf("unknown command %q", args[0]),
			ExitCode: ExitCommandError,
		}
	}
}

func (a *App) printUsage() {
	fmt.Fprintln(a.out, `Usage: deploykit [flags] <command>

Commands:
  recipes                    List available deployment recipes
  settings <recipe-id>       Show a recipe's configurable settings
      -stack <name>              Stack name used for replacement tokens
      -account <id> -region <r>  Reapply settings from the last deployment
      -advanced                  Include advanced settings
  deployments                List recorded deployments`)
}

// =============================================================================
// Commands
// =============================================================================

func (a *App) listRecipes() error {
	recipes := a.catalog.List()
	sort.Slice(recipes, func(i, j int) bool {
		return recipes[i].RecipePriority > recipes[j].RecipePriority
	})

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVERSION\tTARGET\tDESCRIPTION")
	for _, def := range recipes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", def.ID, def.Version, def.TargetService, def.ShortDescription)
	}
	return w.Flush()
}

func (a *App) showSettings(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("settings", flag.ContinueOnError)
	stack := fs.String("stack", "", "Stack name used for replacement tokens")
	account := fs.String("account", "", "AWS account id of a previous deployment")
	region := fs.String("region", "", "AWS region of a previous deployment")
	advanced := fs.Bool("advanced", false, "Include advanced settings")
	if err := fs.Parse(args); err != nil {
		return &AppError{Op: "settings", Err: err, ExitCode: ExitCommandError}
	}
	if fs.NArg() != 1 {
		return &AppError{
			Op:       "settings",
			Err:      errors.New("expected exactly one recipe id"),
			ExitCode: ExitCommandError,
		}
	}

	def, err := a.catalog.Get(fs.Arg(0))
	if err != nil {
		return &AppError{Op: "settings", Err: err, ExitCode: ExitCatalogError}
	}

	rec := recommendation.New(def, nil, def.RecipePriority)
	if *stack != "" {
		rec.SetReplacementToken("{StackName}", *stack)
	}

	// Redeployments start from the settings of the last deployment.
	if *stack != "" && *account != "" && *region != "" {
		record, err := a.store.GetLatestDeployment(ctx, *stack, *account, *region)
		switch {
		case errors.Is(err, store.ErrNotFound):
			a.logger.Debug("no previous deployment", "stack", *stack)
		case err != nil:
			return &AppError{Op: "settings", Err: err, ExitCode: ExitDatabaseError}
		case record.RecipeID != def.ID:
			a.logger.Warn("previous deployment used a different recipe",
				"stack", *stack,
				"recipe", record.RecipeID,
			)
		default:
			rec = rec.ApplyPreviousSettings(record.Settings)
		}
	}

	fmt.Fprintf(a.out, "%s %s: %s\n\n", def.ID, def.Version, def.Name)
	fmt.Fprintln(a.out, "Settings:")
	a.printSettings(rec, rec.TopLevelSettings(), *advanced)
	fmt.Fprintln(a.out, "\nDeployment bundle settings:")
	a.printSettings(rec, rec.DeploymentBundleSettings(), *advanced)
	return nil
}

func (a *App) printSettings(rec *recommendation.Recommendation, items []*recipe.OptionSettingItem, advanced bool) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, item := range items {
		if item.AdvancedSetting && !advanced {
			continue
		}
		if !rec.IsDisplayable(item) {
			continue
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\n", item.Id, item.Name, renderValue(rec.GetValue(item)))
	}
	w.Flush()
}

func renderValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case recommendation.ObjectValue:
		keys := make([]string, 0, len(v.Values))
		for key := range v.Values {
			if v.Displayable[key] {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, renderValue(v.Values[key])))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (a *App) listDeployments(ctx context.Context) error {
	records, err := a.store.ListDeployments(ctx, store.ListOptions{})
	if err != nil {
		return &AppError{Op: "deployments", Err: err, ExitCode: ExitDatabaseError}
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STACK\tACCOUNT\tREGION\tRECIPE\tDEPLOYED")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\n",
			r.StackName, r.AWSAccountID, r.AWSRegion,
			r.RecipeID, r.RecipeVersion,
			r.UpdatedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

// =============================================================================
// App Error
// =============================================================================

// AppError represents an error during application operation.
type AppError struct {
	Op       string
	Err      error
	ExitCode int
}

func (e *AppError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}
