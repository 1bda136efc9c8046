// Command evtrace loads an HTML fixture, runs an event scenario script
// against it and prints what the script logged.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/chrisuehlinger/evdispatch/dom"
	"github.com/chrisuehlinger/evdispatch/html"
	"github.com/chrisuehlinger/evdispatch/js"
	"github.com/chrisuehlinger/evdispatch/ui"
)

// Report is the outcome of one scenario run.
type Report struct {
	Session string   `json:"session"`
	Console []string `json:"console"`
	Errors  []string `json:"errors,omitempty"`
}

type options struct {
	htmlPath   string
	scriptPath string
}

func main() {
	htmlPath := flag.String("html", "", "HTML fixture to load (default: an empty document)")
	scriptPath := flag.String("script", "", "Scenario script to run")
	verbose := flag.Bool("v", false, "Log dispatch details")
	jsonOutput := flag.Bool("json", false, "Output the report as JSON")
	showUI := flag.Bool("ui", false, "Open the document in a window and route pointer input to it")
	flag.Parse()

	if *scriptPath == "" && !*showUI {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] -script <file>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -html fixture.html -script click.js\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -html fixture.html -script listeners.js -ui\n", os.Args[0])
		os.Exit(1)
	}

	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logrus.SetOutput(os.Stderr)
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
	dom.SetLogger(logrus.StandardLogger())

	rt, err := load(options{htmlPath: *htmlPath, scriptPath: *scriptPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	report := newReport(rt)

	if *jsonOutput {
		if err := writeJSON(os.Stdout, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting JSON: %v\n", err)
			os.Exit(1)
		}
	} else {
		printReport(os.Stdout, report)
	}

	if *showUI {
		router := ui.NewRouter(rt.Document(), ui.DefaultRouterConfig())
		router.SetExecutor(rt.Do)
		ui.NewWindow(app.New(), "evtrace", rt.Document(), router).ShowAndRun()
		printReport(os.Stdout, newReport(rt))
	}

	if len(report.Errors) > 0 {
		os.Exit(1)
	}
}

// load parses the fixture and runs the script in a new runtime. Script
// errors are recorded by the runtime and do not fail the load.
func load(opts options) (*js.Runtime, error) {
	doc := dom.NewDocument()
	if opts.htmlPath != "" {
		f, err := os.Open(opts.htmlPath)
		if err != nil {
			return nil, errors.Wrap(err, "open fixture")
		}
		defer f.Close()
		doc, err = html.ParseReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "load %s", opts.htmlPath)
		}
	}

	rt := js.NewRuntime(doc)
	if opts.scriptPath == "" {
		return rt, nil
	}
	code, err := os.ReadFile(opts.scriptPath)
	if err != nil {
		return nil, errors.Wrap(err, "read script")
	}
	// The error is kept in rt.Errors.
	_ = rt.ExecuteScript(string(code), opts.scriptPath)
	return rt, nil
}

func newReport(rt *js.Runtime) Report {
	report := Report{
		Session: rt.SessionID(),
		Console: rt.ConsoleOutput(),
	}
	for _, err := range rt.Errors() {
		report.Errors = append(report.Errors, err.Error())
	}
	return report
}

func writeJSON(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(report), "encode report")
}

func printReport(w io.Writer, report Report) {
	for _, line := range report.Console {
		fmt.Fprintln(w, line)
	}
	for _, e := range report.Errors {
		fmt.Fprintf(w, "ERROR: %s\n", e)
	}
}
