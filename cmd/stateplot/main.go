// Stateplot renders charts from the CSV result files written by the
// exploration harness.
//
// Usage:
//
//	stateplot [-input dir] [-output dir] [-format svg|png] [-consistencies n] [-db dsn [-db-driver name]]
//
// Stateplot reads every CSV file in the input directory, splitting it
// into run files and depth-distribution files by the "-depths" file
// name marker. It draws per-run line charts of explored states and
// reached depth over time, per-file depth histograms, and combined
// charts over all runs: a per-consistency line chart, an empirical
// CDF of final state counts (faceted by controller count and depth
// limit when the data spans several configurations), and box and
// strip plots. An index.html linking every chart is written alongside
// the images.
//
// The -consistencies flag sets how many distinct consistency models
// the run data must contain; loading a different number aborts the
// report, since it means the input directory holds an incomplete or
// mixed experiment. Pass a negative value to disable the check.
//
// With -db, the loaded records are also archived into a SQL database
// (sqlite3 by default, mysql with -db-driver mysql) so old reports
// can be queried without the raw CSVs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mcorch/stateplot/report"
	"github.com/mcorch/stateplot/runcsv"
)

var exit = os.Exit // replaced during testing

func usage() {
	fmt.Fprintf(os.Stderr, "usage: stateplot [options]\n")
	fmt.Fprintf(os.Stderr, "options:\n")
	flag.PrintDefaults()
	exit(2)
}

var (
	flagInput         = flag.String("input", "testout", "read result CSVs from `dir`")
	flagOutput        = flag.String("output", "plots", "write charts into `dir`")
	flagFormat        = flag.String("format", "svg", "chart image `format`: svg or png")
	flagConsistencies = flag.Int("consistencies", len(runcsv.Consistencies), "expected `number` of consistency models; negative disables the check")
	flagDB            = flag.String("db", "", "archive loaded records into database `dsn`")
	flagDBDriver      = flag.String("db-driver", "sqlite3", "database `driver`: sqlite3 or mysql")
)

func main() {
	log.SetPrefix("stateplot: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() > 0 {
		flag.Usage()
	}

	cfg := report.Config{
		InputDir:              *flagInput,
		OutDir:                *flagOutput,
		Format:                *flagFormat,
		ExpectedConsistencies: *flagConsistencies,
		DB:                    *flagDB,
		DBDriver:              *flagDBDriver,
	}
	if err := report.Generate(cfg); err != nil {
		log.Fatal(err)
	}
}
