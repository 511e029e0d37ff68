// Package scaffold orchestrates one exercise run: resolve what the target
// workspace needs, mediate the one decision the tool never makes on its
// own (overwriting a directory it cannot identify), materialize the
// project, apply artifacts one confirmation at a time, record the marker,
// and verify the build.
package scaffold
