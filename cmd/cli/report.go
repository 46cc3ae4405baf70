package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/limaJavier/covering/pkg/coverage"
	"github.com/samber/lo"
)

var (
	passLabel  = color.New(color.FgGreen, color.Bold).SprintFunc()
	failLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	errorLabel = color.New(color.FgYellow, color.Bold).SprintFunc()
)

type jsonRecord struct {
	Index        int      `json:"index"`
	Actual       bool     `json:"actual"`
	Expected     bool     `json:"expected"`
	Passed       bool     `json:"passed"`
	Combinations uint64   `json:"combinations"`
	Direct       uint64   `json:"direct"`
	Implied      uint64   `json:"implied"`
	Uncovered    []uint64 `json:"uncovered,omitempty"`
	Error        string   `json:"error,omitempty"`
}

func writeReport(out io.Writer, records []coverage.Record, format string) error {
	if format == "json" {
		return writeJsonReport(out, records)
	}
	return writeTextReport(out, records)
}

func writeTextReport(out io.Writer, records []coverage.Record) error {
	for _, record := range records {
		var err error
		if record.Err != nil {
			_, err = fmt.Fprintf(out, "%v item %d: %v\n", errorLabel("ERROR"), record.Index, record.Err)
		} else {
			label := passLabel("PASS")
			if !record.Passed {
				label = failLabel("FAIL")
			}
			_, err = fmt.Fprintf(out, "%v item %d: actual=%v expected=%v combinations=%v (direct %v, implied %v)",
				label, record.Index, record.Actual, record.Expected, humanize.Comma(int64(record.Combinations)), record.Direct, record.Implied)
			if err == nil && record.Uncovered != nil {
				_, err = fmt.Fprintf(out, " uncovered=%v", record.Uncovered)
			}
			if err == nil {
				_, err = fmt.Fprintln(out)
			}
		}
		if err != nil {
			return err
		}
	}

	passed := lo.CountBy(records, func(record coverage.Record) bool { return record.Passed })
	_, err := fmt.Fprintf(out, "%d/%d items passed\n", passed, len(records))
	return err
}

func writeJsonReport(out io.Writer, records []coverage.Record) error {
	jsonRecords := lo.Map(records, func(record coverage.Record, _ int) jsonRecord {
		errorMessage := ""
		if record.Err != nil {
			errorMessage = record.Err.Error()
		}
		return jsonRecord{
			Index:        record.Index,
			Actual:       record.Actual,
			Expected:     record.Expected,
			Passed:       record.Passed,
			Combinations: record.Combinations,
			Direct:       record.Direct,
			Implied:      record.Implied,
			Uncovered:    record.Uncovered,
			Error:        errorMessage,
		}
	})

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonRecords)
}
