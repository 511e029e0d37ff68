// Package cli defines the Cobra command tree for the praxis CLI. The root
// command runs the scaffold flow for one exercise; config, doctor, and
// version are the only subcommands. Command implementations handle flag
// parsing, wiring, and output formatting, and delegate the work to internal
// packages.
package cli
