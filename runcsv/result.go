// Package runcsv provides readers and writers for the CSV result
// formats emitted by the exploration harness.
//
// A harness run produces two kinds of files into its output
// directory: run files, holding one summary row per progress report
// of a single exploration (total states, unique states, depth
// reached, elapsed time), and depth-distribution files, holding a
// depth histogram of the final state space. Depth files are
// distinguished from run files by a "-depths" marker in the file
// name.
//
// The reader API is modeled on bufio.Scanner: call Scan until it
// returns false, then check Err. Malformed rows are reported as
// *SyntaxError records so the caller decides whether they are fatal.
package runcsv

import "strings"

// A RunResult is a single row of a run file: one progress summary of
// a state-space exploration under a given configuration.
type RunResult struct {
	// Function is the controller function under test.
	Function string

	// Consistency is the consistency model label for this run.
	Consistency string

	// Controllers is the number of concurrent controllers.
	Controllers int

	// DepthLimit is the configured maximum exploration depth
	// (the "max_depth" configuration column). Zero means the run
	// was unbounded or the file did not carry the column.
	DepthLimit int

	// DurationMS is the elapsed time of the exploration in
	// milliseconds at the time of this report.
	DurationMS float64

	// TotalStates and UniqueStates count explored states.
	TotalStates  int
	UniqueStates int

	// MaxDepth is the deepest state reached so far.
	MaxDepth int

	// Done reports whether this row is the final report of the run.
	Done bool

	// File is the label of the file this row was read from,
	// assigned by Files.
	File string

	fileName string
	line     int
}

// Pos returns the file name and line this result was read from.
func (r *RunResult) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// A DepthResult is a single row of a depth-distribution file: the
// number of states discovered at one depth.
type DepthResult struct {
	Consistency string
	Controllers int
	DepthLimit  int

	Depth int
	Count int

	// File is the label of the file this row was read from.
	File string

	fileName string
	line     int
}

// Pos returns the file name and line this result was read from.
func (r *DepthResult) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// A Record is a single record read from a result file. It is one of
// *RunResult, *DepthResult, or *SyntaxError.
type Record interface {
	Pos() (fileName string, line int)
}

// Consistencies is the set of known consistency model labels, in
// display order. Loaded datasets are expected to cover exactly this
// set; see runstat.CheckConsistencies.
var Consistencies = []string{
	"causal",
	"monotonic-session",
	"optimistic-linear",
	"resettable-session",
	"synchronous",
}

// depthMarker is the file name substring that marks a
// depth-distribution file.
const depthMarker = "-depths"

// IsDepthFile reports whether path names a depth-distribution file.
// Classification is purely by name: any path whose base name
// contains the "-depths" marker is a depth file, and every other
// path is a run file.
func IsDepthFile(path string) bool {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	return strings.Contains(base, depthMarker)
}
