// Package workspace owns the on-disk state of exercise workspaces: whether
// a named directory exists, what marker a previous run left in it, and the
// create/backup/write operations the scaffolder performs. There is no
// transactional rollback; a failed run leaves written files in place and
// withholds the marker, so re-running the exercise is the recovery path.
package workspace
