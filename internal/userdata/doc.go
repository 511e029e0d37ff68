// Package userdata manages the per-user home directory (~/.praxis/):
// path resolution, first-run initialization, and the health checks
// behind the doctor command.
package userdata
