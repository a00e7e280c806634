// Command convert runs a single conversion from CSV files on disk,
// writing the configuration document to a file or stdout. It is the
// offline companion to the HTTP service for scripted use.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/carefluent/alarmbridge/internal/engine"
	"github.com/carefluent/alarmbridge/internal/schema"
	"github.com/carefluent/alarmbridge/internal/sheet"
)

func main() {
	var (
		unitsPath      = flag.String("units", "", "path to the unit breakdown CSV")
		nurseCallsPath = flag.String("nursecalls", "", "path to the nurse call alarms CSV")
		clinicalsPath  = flag.String("clinicals", "", "path to the patient monitoring alarms CSV")
		outPath        = flag.String("out", "", "output path (default stdout)")
	)
	flag.Parse()

	if *unitsPath == "" && *nurseCallsPath == "" && *clinicalsPath == "" {
		fmt.Fprintln(os.Stderr, "at least one of -units, -nursecalls, -clinicals is required")
		flag.Usage()
		os.Exit(2)
	}

	wb := sheet.NewWorkbook()
	sources := []struct{ name, path string }{
		{engine.SheetUnits, *unitsPath},
		{engine.SheetNurseCalls, *nurseCallsPath},
		{engine.SheetClinicals, *clinicalsPath},
	}
	for _, src := range sources {
		if src.path == "" {
			continue
		}
		grid, err := loadSheet(src.name, src.path)
		if err != nil {
			fail(err)
		}
		wb.Add(grid)
	}

	doc := engine.ConvertWorkbook(wb, schema.Default())

	out, err := doc.Render()
	if err != nil {
		fail(fmt.Errorf("render document: %w", err))
	}

	if *outPath == "" {
		fmt.Print(out)
		return
	}
	if err := os.WriteFile(*outPath, []byte(out), 0o644); err != nil {
		fail(fmt.Errorf("write %s: %w", *outPath, err))
	}
	fmt.Fprintf(os.Stderr, "wrote %s from %s: %d alarm definitions, %d delivery flows\n",
		*outPath, strings.Join(wb.SheetNames(), "+"),
		len(doc.AlarmAlertDefinitions), len(doc.DeliveryFlows))
}

// loadSheet reads one CSV into a grid named for its workbook sheet.
func loadSheet(name, path string) (*sheet.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	grid, err := sheet.ReadCSV(name, f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return grid, nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "convert:", err)
	os.Exit(1)
}
