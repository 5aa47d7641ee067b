// Package resultdb provides an optional SQL archive for loaded
// result records, so past reports can be queried or re-rendered
// without keeping the raw CSV files around.
//
// Only mysql and sqlite3 are explicitly supported; other database
// engines will receive MySQL query syntax which may or may not be
// compatible.
package resultdb

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/net/context"

	"github.com/mcorch/stateplot/runcsv"
)

// DB is a high-level interface to the archive database. It's safe
// for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertReport *sql.Stmt
	insertRun    *sql.Stmt
	insertDepth  *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		return nil, err
	}
	if err := d.prepareStatements(driverName); err != nil {
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. This can be used to install a sqlite3
// ConnectHook. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Reports (
	ReportID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}}
);
CREATE TABLE IF NOT EXISTS Runs (
	ReportID BIGINT UNSIGNED,
	RunID BIGINT UNSIGNED,
	File VARCHAR(255),
	Function VARCHAR(255),
	Consistency VARCHAR(255),
	Controllers INTEGER,
	DepthLimit INTEGER,
	DurationMs DOUBLE,
	TotalStates BIGINT,
	UniqueStates BIGINT,
	MaxDepth INTEGER,
	Done BOOLEAN,
	PRIMARY KEY (ReportID, RunID),
	FOREIGN KEY (ReportID) REFERENCES Reports(ReportID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS Depths (
	ReportID BIGINT UNSIGNED,
	DepthID BIGINT UNSIGNED,
	File VARCHAR(255),
	Consistency VARCHAR(255),
	Controllers INTEGER,
	DepthLimit INTEGER,
	Depth INTEGER,
	Count BIGINT,
	PRIMARY KEY (ReportID, DepthID),
	FOREIGN KEY (ReportID) REFERENCES Reports(ReportID) ON UPDATE CASCADE ON DELETE CASCADE
);
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements(driverName string) error {
	var err error
	q := "INSERT INTO Reports() VALUES ()"
	if driverName == "sqlite3" {
		q = "INSERT INTO Reports DEFAULT VALUES"
	}
	db.insertReport, err = db.sql.Prepare(q)
	if err != nil {
		return err
	}
	db.insertRun, err = db.sql.Prepare(
		"INSERT INTO Runs(ReportID, RunID, File, Function, Consistency, Controllers, DepthLimit, DurationMs, TotalStates, UniqueStates, MaxDepth, Done) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertDepth, err = db.sql.Prepare(
		"INSERT INTO Depths(ReportID, DepthID, File, Consistency, Controllers, DepthLimit, Depth, Count) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.sql.Close()
}

// A Report is a collection of records that share a report ID, one
// per report-generator invocation.
type Report struct {
	// ID is the primary key of this report.
	ID int64

	// runID and depthID are the indexes of the next records to
	// insert.
	runID   int64
	depthID int64
	db      *DB
}

// NewReport creates a new report for storing records.
func (db *DB) NewReport(ctx context.Context) (*Report, error) {
	res, err := db.insertReport.ExecContext(ctx)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &Report{ID: id, db: db}, nil
}

// InsertRun inserts a single run record into the report.
func (r *Report) InsertRun(ctx context.Context, run *runcsv.RunResult) error {
	_, err := r.db.insertRun.ExecContext(ctx, r.ID, r.runID,
		run.File, run.Function, run.Consistency, run.Controllers, run.DepthLimit,
		run.DurationMS, run.TotalStates, run.UniqueStates, run.MaxDepth, run.Done)
	if err != nil {
		return err
	}
	r.runID++
	return nil
}

// InsertDepth inserts a single depth record into the report.
func (r *Report) InsertDepth(ctx context.Context, d *runcsv.DepthResult) error {
	_, err := r.db.insertDepth.ExecContext(ctx, r.ID, r.depthID,
		d.File, d.Consistency, d.Controllers, d.DepthLimit, d.Depth, d.Count)
	if err != nil {
		return err
	}
	r.depthID++
	return nil
}

// Reports returns the IDs of all stored reports, oldest first.
func (db *DB) Reports(ctx context.Context) ([]int64, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT ReportID FROM Reports ORDER BY ReportID")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Runs returns the run records of one report in insertion order.
func (db *DB) Runs(ctx context.Context, reportID int64) ([]runcsv.RunResult, error) {
	rows, err := db.sql.QueryContext(ctx,
		"SELECT File, Function, Consistency, Controllers, DepthLimit, DurationMs, TotalStates, UniqueStates, MaxDepth, Done FROM Runs WHERE ReportID = ? ORDER BY RunID", reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var runs []runcsv.RunResult
	for rows.Next() {
		var r runcsv.RunResult
		if err := rows.Scan(&r.File, &r.Function, &r.Consistency, &r.Controllers, &r.DepthLimit,
			&r.DurationMS, &r.TotalStates, &r.UniqueStates, &r.MaxDepth, &r.Done); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Depths returns the depth records of one report in insertion order.
func (db *DB) Depths(ctx context.Context, reportID int64) ([]runcsv.DepthResult, error) {
	rows, err := db.sql.QueryContext(ctx,
		"SELECT File, Consistency, Controllers, DepthLimit, Depth, Count FROM Depths WHERE ReportID = ? ORDER BY DepthID", reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var depths []runcsv.DepthResult
	for rows.Next() {
		var d runcsv.DepthResult
		if err := rows.Scan(&d.File, &d.Consistency, &d.Controllers, &d.DepthLimit, &d.Depth, &d.Count); err != nil {
			return nil, err
		}
		depths = append(depths, d)
	}
	return depths, rows.Err()
}
