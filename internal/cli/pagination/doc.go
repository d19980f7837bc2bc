// Package pagination implements the --sort, --limit, --offset, --page and
// --page-size flags shared by the commands that list evaluated rows.
package pagination
