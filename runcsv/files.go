package runcsv

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// A Files reads records from a sequence of result files.
//
// Each record carries a File label naming the path it was read from.
// By default this is the path directly from Paths, except that
// duplicate paths are disambiguated by appending "#N". Whether each
// file is parsed as a run file or a depth file is decided by its
// name; see IsDepthFile.
type Files struct {
	// Paths is the list of file names to read in.
	Paths []string

	// inputs is the sequence of remaining inputs, or nil if this
	// Files has not started yet. Note that this distinguishes nil
	// from length 0.
	inputs []input

	reader Reader
	file   *os.File
	err    error
}

type input struct {
	path  string
	label string
}

// init does first-use initialization of f.
func (f *Files) init() {
	// Set f.inputs to a non-nil slice to indicate initialization
	// has happened.
	f.inputs = []input{}

	pathCount := make(map[string]int)
	for _, path := range f.Paths {
		pathCount[path]++
		f.inputs = append(f.inputs, input{path, path})
	}

	// If the same path is given multiple times, disambiguate its
	// label. Otherwise, the records have indistinguishable
	// origins, which just doubles up samples, which is generally
	// not what users are expecting.
	pathI := make(map[string]int)
	for i := range f.inputs {
		inp := &f.inputs[i]
		if pathCount[inp.path] == 1 {
			continue
		}
		inp.label = fmt.Sprintf("%s#%d", inp.path, pathI[inp.path])
		pathI[inp.path]++
	}
}

// Scan advances the reader to the next record in the sequence of
// files and reports whether a record was read. The caller should use
// the Result method to get the record. If Scan reaches the end of
// the file sequence, or if an error occurs, it returns false. In
// this case, the caller should use the Err method to check for
// errors.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}

	if f.inputs == nil {
		f.init()
	}

	for {
		if f.file == nil {
			// Open the next file.
			if len(f.inputs) == 0 {
				// We're out of inputs.
				return false
			}
			inp := f.inputs[0]
			f.inputs = f.inputs[1:]

			file, err := os.Open(inp.path)
			if err != nil {
				f.err = err
				return false
			}
			f.file = file
			f.reader.Reset(f.file, inp.path, inp.label)
		}

		// Try to get the next record.
		if f.reader.Scan() {
			return true
		}
		if err := f.reader.Err(); err != nil {
			f.err = err
			break
		}
		// Just an EOF. Close this file and open the next.
		f.file.Close()
		f.file = nil
	}
	// We're out of files.
	return false
}

// Result returns the record that was just read by Scan.
// See Reader.Result.
func (f *Files) Result() Record {
	return f.reader.Result()
}

// Err returns the error that stopped Scan, if any. If Scan stopped
// because it read each file to completion, or if Scan has not yet
// returned false, Err returns nil.
func (f *Files) Err() error {
	return f.err
}

// List reads the named directory and partitions its file entries into
// run files and depth-distribution files, each sorted by name and
// joined with dir. Subdirectories are ignored. It is an error for the
// directory to be missing or to contain no result files at all.
func List(dir string) (runs, depths []string, err error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}
	for _, ent := range ents {
		if ent.IsDir() {
			continue
		}
		path := filepath.Join(dir, ent.Name())
		if IsDepthFile(ent.Name()) {
			depths = append(depths, path)
		} else {
			runs = append(runs, path)
		}
	}
	if len(runs) == 0 && len(depths) == 0 {
		return nil, nil, fmt.Errorf("no result files in %s", dir)
	}
	sort.Strings(runs)
	sort.Strings(depths)
	return runs, depths, nil
}

// ReadFiles reads every record from the given paths and collects
// them by kind. The first malformed row is reported as an error;
// this is a convenience for callers that treat any syntax error as
// fatal, which is how the report generator operates.
func ReadFiles(paths []string) (runs []RunResult, depths []DepthResult, err error) {
	f := Files{Paths: paths}
	for f.Scan() {
		switch rec := f.Result().(type) {
		case *RunResult:
			runs = append(runs, *rec)
		case *DepthResult:
			depths = append(depths, *rec)
		case *SyntaxError:
			return nil, nil, rec
		default:
			return nil, nil, fmt.Errorf("unexpected record type %T", rec)
		}
	}
	if err := f.Err(); err != nil {
		return nil, nil, err
	}
	return runs, depths, nil
}
