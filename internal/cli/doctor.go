package cli

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/praxis-labs/praxis/internal/branding"
	"github.com/praxis-labs/praxis/internal/catalog"
	"github.com/praxis-labs/praxis/internal/config"
	"github.com/praxis-labs/praxis/internal/userdata"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create missing home directories and files")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the " + branding.DisplayName() + " environment",
	Long:  `Run diagnostic checks on the home directory, required binaries, catalog, and workspace root.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		config.Load()

		if err := userdata.CheckHome(out, doctorFix); err != nil {
			return err
		}

		runToolchainCheck(out)
		runCatalogCheck(out)

		root, err := userdata.WorkspaceRoot("")
		if err != nil {
			fmt.Fprintf(out, "[WARN] Could not resolve workspace root: %v\n", err)
			return nil
		}
		userdata.CheckWorkspaceRoot(out, root)

		return nil
	},
}

func runToolchainCheck(w io.Writer) {
	fmt.Fprintln(w, "Toolchain check:")
	checkBinary(w, "go")
	checkBinary(w, "npm")
}

func checkBinary(w io.Writer, name string) {
	path, err := exec.LookPath(name)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] %s not found (exercises with that project type will not materialize)\n", name)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s found at %s\n", name, path)
}

func runCatalogCheck(w io.Writer) {
	fmt.Fprintln(w, "Catalog check:")

	path := userdata.CatalogPath("")
	cat, err := catalog.Load(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return
	}

	source := path
	if source == "" {
		source = "embedded default"
	}
	fmt.Fprintf(w, "  [ OK ] %s: %d exercises in %d modules\n", source, cat.Len(), len(cat.Modules))
}
