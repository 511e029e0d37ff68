package userdata

import (
	"fmt"
	"io"
	"os"

	"github.com/praxis-labs/praxis/internal/branding"
	"github.com/praxis-labs/praxis/internal/config"
)

// CheckHome validates the praxis home directory structure.
// When fix is true, it repairs missing pieces by running InitGlobal.
func CheckHome(w io.Writer, fix bool) error {
	home := config.Dir()

	fmt.Fprintln(w, "Home check:")

	if _, statErr := os.Stat(home); os.IsNotExist(statErr) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", home)
		if fix {
			fmt.Fprintln(w, "  [FIX ] Creating home directory...")
			if initErr := InitGlobal(w); initErr != nil {
				return fmt.Errorf("auto-fix init: %w", initErr)
			}
		} else {
			fmt.Fprintf(w, "         Run '%s doctor --fix' to create\n", branding.CLIName())
		}
		return nil
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", home)

	checkDirExists(w, LogsPath(), fix)
	checkFileExists(w, config.FilePath())

	return nil
}

// CheckWorkspaceRoot verifies that the workspace parent directory exists
// and is writable, since every run creates or touches a directory there.
func CheckWorkspaceRoot(w io.Writer, root string) {
	fmt.Fprintln(w, "Workspace root check:")

	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", root)
		return
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", root, err)
		return
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  [FAIL] %s exists but is not a directory\n", root)
		return
	}

	// Probe writability the direct way: create and remove a scratch file.
	probe, err := os.CreateTemp(root, ".praxis-doctor-*")
	if err != nil {
		fmt.Fprintf(w, "  [WARN] %s is not writable: %v\n", root, err)
		return
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)

	fmt.Fprintf(w, "  [ OK ] %s is writable\n", root)
}

func checkDirExists(w io.Writer, path string, fix bool) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		if fix {
			if mkErr := os.MkdirAll(path, DirPermNormal); mkErr != nil {
				fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", path, mkErr)
				return
			}
			fmt.Fprintf(w, "  [FIX ] Created %s\n", path)
		}
		return
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  [WARN] %s exists but is not a directory\n", path)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
}

func checkFileExists(w io.Writer, path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
}
