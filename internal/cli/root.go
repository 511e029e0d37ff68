package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/praxis-labs/praxis/internal/branding"
	"github.com/praxis-labs/praxis/internal/catalog"
	"github.com/praxis-labs/praxis/internal/config"
	"github.com/praxis-labs/praxis/internal/errs"
	"github.com/praxis-labs/praxis/internal/interact"
	"github.com/praxis-labs/praxis/internal/logging"
	"github.com/praxis-labs/praxis/internal/render"
	"github.com/praxis-labs/praxis/internal/scaffold"
	"github.com/praxis-labs/praxis/internal/userdata"
	"github.com/praxis-labs/praxis/internal/workspace"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagList          bool
	flagJSON          bool
	flagAuto          bool
	flagPreview       bool
	flagWorkspaceRoot string
	flagCatalog       string
)

func init() {
	rootCmd.Flags().BoolVar(&flagList, "list", false, "List available exercises and exit")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the exercise listing as JSON")
	rootCmd.Flags().BoolVar(&flagAuto, "auto", false, "Run unattended: every file decision is pre-answered create")
	rootCmd.Flags().BoolVar(&flagPreview, "preview", false, "Print what a run would do without writing anything")
	rootCmd.Flags().StringVar(&flagWorkspaceRoot, "workspace-root", "", "Parent directory for exercise workspaces")
	rootCmd.Flags().StringVar(&flagCatalog, "catalog", "", "Path to an external catalog file")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [exercise-id]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` turns an exercise identifier into a populated workspace:
it creates or reuses the exercise's directory, writes the declared starter
files one confirmation at a time, and records what it applied so the next
exercise in the chain can pick up where this one left off.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the root command with build info injected via ldflags.
// Errors cobra produces itself (bad flags, too many arguments) carry no
// code yet; they are usage errors.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil && errs.CodeOf(err) == "" {
		return errs.New(errs.CodeUsage, "%v", err)
	}
	return err
}

func runRoot(cmd *cobra.Command, args []string) error {
	config.Load()

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	if flagList {
		return printListing(cmd.OutOrStdout(), cat, flagJSON)
	}

	if len(args) == 0 {
		printListing(cmd.ErrOrStderr(), cat, false)
		return errs.New(errs.CodeUsage, "an exercise id is required (pick one from the list above)")
	}
	id := args[0]

	if _, ok := cat.Get(id); !ok {
		printListing(cmd.ErrOrStderr(), cat, false)
		return errs.New(errs.CodeUnknownExercise, "unknown exercise %q", id)
	}

	renderer, err := render.New(cat.Templates)
	if err != nil {
		return errs.Wrap(errs.CodeCatalog, err, "loading catalog templates")
	}

	root, err := userdata.WorkspaceRoot(flagWorkspaceRoot)
	if err != nil {
		return errs.Wrap(errs.CodeWorkspace, err, "resolving workspace root")
	}
	store := workspace.NewStore(root)

	if flagPreview {
		orch := &scaffold.Orchestrator{Catalog: cat, Renderer: renderer, Store: store}
		plan, err := orch.Preview(id)
		if err != nil {
			return err
		}
		plan.Write(cmd.OutOrStdout())
		return nil
	}

	mode := interact.ModeInteractive
	switch {
	case flagAuto || config.GetBool(config.KeyAuto):
		mode = interact.ModeUnattended
	case !term.IsTerminal(int(os.Stdin.Fd())):
		// A piped stdin cannot answer prompts; blocking on it forever
		// helps nobody.
		fmt.Fprintln(cmd.ErrOrStderr(), "stdin is not a terminal; continuing unattended")
		mode = interact.ModeUnattended
	}

	runID := uuid.New().String()
	log := logging.Nop()
	if err := userdata.EnsureQuiet(); err == nil {
		log = logging.NewSession(userdata.LogFilePath(), runID)
		defer log.Close()
	}
	log.Eventf("run: exercise=%s version=%s root=%s mode=%s", id, buildVersion, root, mode)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orch := &scaffold.Orchestrator{
		Catalog:  cat,
		Renderer: renderer,
		Store:    store,
		Control:  interact.NewController(mode, cmd.InOrStdin(), cmd.OutOrStdout()),
		Out:      cmd.OutOrStdout(),
		Log:      log,
		RunID:    runID,
	}

	_, err = orch.Run(ctx, id)
	return err
}

// loadCatalog loads the configured (or embedded) catalog and applies its
// CLI version gate.
func loadCatalog() (*catalog.Catalog, error) {
	path := userdata.CatalogPath(flagCatalog)
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, errs.Wrap(errs.CodeCatalog, err, "loading catalog")
	}
	if err := cat.CheckRequires(buildVersion); err != nil {
		return nil, errs.Wrap(errs.CodeCatalog, err, "checking catalog requirements")
	}
	return cat, nil
}
