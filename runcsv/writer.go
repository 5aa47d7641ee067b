package runcsv

import (
	"encoding/csv"
	"io"
	"strconv"
)

// runHeader is the canonical column order written for run files.
var runHeader = []string{
	"function", "consistency", "controllers", "max_depth",
	"duration_ms", "total_states", "unique_states", "max_depth_reached", "done",
}

// depthHeader is the canonical column order written for depth files.
var depthHeader = []string{
	"consistency", "controllers", "max_depth", "depth", "count",
}

// A RunWriter writes RunResults in the run-file CSV format. The
// header row is written before the first record.
type RunWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewRunWriter returns a writer that writes run records to w.
func NewRunWriter(w io.Writer) *RunWriter {
	return &RunWriter{w: csv.NewWriter(w)}
}

// Write writes one record.
func (w *RunWriter) Write(r *RunResult) error {
	if !w.wroteHeader {
		if err := w.w.Write(runHeader); err != nil {
			return err
		}
		w.wroteHeader = true
	}
	return w.w.Write([]string{
		r.Function,
		r.Consistency,
		strconv.Itoa(r.Controllers),
		strconv.Itoa(r.DepthLimit),
		strconv.FormatFloat(r.DurationMS, 'f', -1, 64),
		strconv.Itoa(r.TotalStates),
		strconv.Itoa(r.UniqueStates),
		strconv.Itoa(r.MaxDepth),
		strconv.FormatBool(r.Done),
	})
}

// Flush writes any buffered records to the underlying io.Writer and
// returns the first write error encountered.
func (w *RunWriter) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

// A DepthWriter writes DepthResults in the depth-file CSV format.
type DepthWriter struct {
	w           *csv.Writer
	wroteHeader bool
}

// NewDepthWriter returns a writer that writes depth records to w.
func NewDepthWriter(w io.Writer) *DepthWriter {
	return &DepthWriter{w: csv.NewWriter(w)}
}

// Write writes one record.
func (w *DepthWriter) Write(r *DepthResult) error {
	if !w.wroteHeader {
		if err := w.w.Write(depthHeader); err != nil {
			return err
		}
		w.wroteHeader = true
	}
	return w.w.Write([]string{
		r.Consistency,
		strconv.Itoa(r.Controllers),
		strconv.Itoa(r.DepthLimit),
		strconv.Itoa(r.Depth),
		strconv.Itoa(r.Count),
	})
}

// Flush writes any buffered records to the underlying io.Writer and
// returns the first write error encountered.
func (w *DepthWriter) Flush() error {
	w.w.Flush()
	return w.w.Error()
}
