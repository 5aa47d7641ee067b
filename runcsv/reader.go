package runcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// A Reader reads one CSV result file, either a run file or a
// depth-distribution file depending on the file name.
//
// Its API is modeled on bufio.Scanner. To minimize allocation, a
// Reader retains ownership of the records it creates; a caller
// should copy anything it needs to retain across calls to Scan.
//
// To construct a new Reader, either call NewReader, or call Reset on
// a zeroed Reader.
type Reader struct {
	c   *csv.Reader
	err error // terminal error: I/O failure or a bad header

	fileName  string
	fileLabel string
	isDepth   bool
	line      int

	headerDone bool
	setters    []func(field string) error

	run   RunResult
	depth DepthResult
	rec   Record
}

// A SyntaxError represents a malformed header, row, or field on a
// particular line of a result file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

// Pos returns the file name and line of the error.
func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// NewReader constructs a reader that parses the CSV result format
// from r. fileName determines whether this is a run file or a depth
// file (see IsDepthFile) and is used in error messages.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
// fileLabel is recorded in the File field of each record; Files uses
// it to disambiguate repeated paths.
func (r *Reader) Reset(ior io.Reader, fileName, fileLabel string) {
	r.c = csv.NewReader(ior)
	r.c.TrimLeadingSpace = true
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.fileLabel = fileLabel
	r.isDepth = IsDepthFile(fileName)
	r.line = 0
	r.err = nil
	r.headerDone = false
	r.setters = r.setters[:0]
	r.rec = nil
}

// Scan advances the reader to the next record and reports whether
// one was read. The caller should use the Result method to get the
// record. Malformed rows are returned as *SyntaxError records; Scan
// keeps going after them. If Scan reaches EOF or the file is
// unreadable, it returns false, in which case the caller should use
// the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	if !r.headerDone {
		if !r.readHeader() {
			return false
		}
	}

	row, err := r.c.Read()
	r.line++
	if err == io.EOF {
		return false
	}
	if perr, ok := err.(*csv.ParseError); ok {
		r.rec = &SyntaxError{r.fileName, perr.Line, perr.Err.Error()}
		return true
	}
	if err != nil {
		r.err = err
		return false
	}

	if r.isDepth {
		r.depth = DepthResult{File: r.fileLabel, fileName: r.fileName, line: r.line}
	} else {
		r.run = RunResult{File: r.fileLabel, fileName: r.fileName, line: r.line}
	}
	for i, set := range r.setters {
		if err := set(row[i]); err != nil {
			r.rec = &SyntaxError{r.fileName, r.line, err.Error()}
			return true
		}
	}
	if r.isDepth {
		r.rec = &r.depth
	} else {
		r.rec = &r.run
	}
	return true
}

// Result returns the record that was just read by Scan.
func (r *Reader) Result() Record {
	return r.rec
}

// Err returns the first terminal error encountered by the Reader: an
// I/O error, or a missing or unusable header row. Malformed data
// rows are not terminal; they are returned from Result as
// *SyntaxError records.
func (r *Reader) Err() error {
	return r.err
}

// readHeader consumes the header row and installs a field setter per
// column. It returns false and sets r.err if the header is missing,
// has unknown columns, or lacks a required column.
func (r *Reader) readHeader() bool {
	cols, err := r.c.Read()
	r.line++
	if err == io.EOF {
		r.err = &SyntaxError{r.fileName, r.line, "missing header row"}
		return false
	}
	if err != nil {
		r.err = err
		return false
	}

	var serr *SyntaxError
	if r.isDepth {
		serr = r.depthHeader(cols)
	} else {
		serr = r.runHeader(cols)
	}
	if serr != nil {
		r.err = serr
		return false
	}
	r.headerDone = true
	return true
}

// runHeader maps run-file columns to RunResult fields.
//
// The harness's variants disagree on the name of the measured depth
// column: newer files call it "max_depth_reached" and reserve
// "max_depth" for the configured depth limit, while older files call
// the measured column "max_depth" and have no limit column. A
// "max_depth" column is therefore the depth limit when
// "max_depth_reached" is also present, and the measured depth
// otherwise.
func (r *Reader) runHeader(cols []string) *SyntaxError {
	hasReached := false
	for _, name := range cols {
		if name == "max_depth_reached" {
			hasReached = true
		}
	}

	seen := make(map[string]bool)
	for _, name := range cols {
		if seen[name] {
			return &SyntaxError{r.fileName, r.line, fmt.Sprintf("duplicate column %q", name)}
		}
		seen[name] = true

		switch name {
		case "duration_ms":
			r.setters = append(r.setters, setFloat(&r.run.DurationMS))
		case "total_states":
			r.setters = append(r.setters, setInt(&r.run.TotalStates))
		case "unique_states":
			r.setters = append(r.setters, setInt(&r.run.UniqueStates))
		case "max_depth_reached":
			r.setters = append(r.setters, setInt(&r.run.MaxDepth))
		case "max_depth":
			if hasReached {
				r.setters = append(r.setters, setInt(&r.run.DepthLimit))
			} else {
				r.setters = append(r.setters, setInt(&r.run.MaxDepth))
			}
		case "done":
			r.setters = append(r.setters, setBool(&r.run.Done))
		case "function":
			r.setters = append(r.setters, setString(&r.run.Function))
		case "consistency":
			r.setters = append(r.setters, setString(&r.run.Consistency))
		case "controllers":
			r.setters = append(r.setters, setInt(&r.run.Controllers))
		default:
			return &SyntaxError{r.fileName, r.line, fmt.Sprintf("unknown column %q", name)}
		}
	}

	for _, req := range []string{"duration_ms", "total_states"} {
		if !seen[req] {
			return &SyntaxError{r.fileName, r.line, fmt.Sprintf("missing required column %q", req)}
		}
	}
	return nil
}

// depthHeader maps depth-file columns to DepthResult fields.
func (r *Reader) depthHeader(cols []string) *SyntaxError {
	seen := make(map[string]bool)
	for _, name := range cols {
		if seen[name] {
			return &SyntaxError{r.fileName, r.line, fmt.Sprintf("duplicate column %q", name)}
		}
		seen[name] = true

		switch name {
		case "depth":
			r.setters = append(r.setters, setInt(&r.depth.Depth))
		case "count":
			r.setters = append(r.setters, setInt(&r.depth.Count))
		case "consistency":
			r.setters = append(r.setters, setString(&r.depth.Consistency))
		case "controllers":
			r.setters = append(r.setters, setInt(&r.depth.Controllers))
		case "max_depth":
			r.setters = append(r.setters, setInt(&r.depth.DepthLimit))
		default:
			return &SyntaxError{r.fileName, r.line, fmt.Sprintf("unknown column %q", name)}
		}
	}

	for _, req := range []string{"depth", "count"} {
		if !seen[req] {
			return &SyntaxError{r.fileName, r.line, fmt.Sprintf("missing required column %q", req)}
		}
	}
	return nil
}

func setInt(dst *int) func(string) error {
	return func(field string) error {
		v, err := strconv.Atoi(field)
		if err != nil {
			return fmt.Errorf("malformed integer %q", field)
		}
		*dst = v
		return nil
	}
}

func setFloat(dst *float64) func(string) error {
	return func(field string) error {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return fmt.Errorf("malformed number %q", field)
		}
		*dst = v
		return nil
	}
}

func setBool(dst *bool) func(string) error {
	return func(field string) error {
		v, err := strconv.ParseBool(field)
		if err != nil {
			return fmt.Errorf("malformed boolean %q", field)
		}
		*dst = v
		return nil
	}
}

func setString(dst *string) func(string) error {
	return func(field string) error {
		*dst = field
		return nil
	}
}
