package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/wikiforge/spamguard/internal/audit"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to spamguard.db")
	last := flag.Int("last", 20, "show N most recent entries")
	handler := flag.String("handler", "", "filter entries to one handler id")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/spamguard.db [--last N] [--handler id] [--json]")
		os.Exit(2)
	}

	auditLog, err := audit.NewLog(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer auditLog.Close()

	var entries []audit.Entry
	if *handler != "" {
		entries, err = auditLog.ListByHandler(*handler, *last)
	} else {
		entries, err = auditLog.ListRecent(*last)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "no entries found")
		return
	}

	if *jsonOut {
		if err := printJSON(entries); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	printTable(entries)
}

// #endregion main

// #region output

type row struct {
	InspectionID string  `json:"inspection_id"`
	HandlerID    string  `json:"handler_id"`
	Subject      string  `json:"subject,omitempty"`
	Field        string  `json:"field"`
	Score        float32 `json:"score"`
	Threshold    float32 `json:"threshold"`
	Decision     string  `json:"decision"`
	Reason       string  `json:"reason,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func toRows(entries []audit.Entry) []row {
	rows := make([]row, len(entries))
	for i, e := range entries {
		rows[i] = row{
			InspectionID: e.InspectionID,
			HandlerID:    e.HandlerID,
			Subject:      e.Subject,
			Field:        e.Field,
			Score:        e.Score,
			Threshold:    e.Threshold,
			Decision:     e.Decision,
			Reason:       e.Reason,
			CreatedAt:    e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}
	return rows
}

func printTable(entries []audit.Entry) {
	fmt.Printf("%-12s  %-16s  %-12s  %8s  %9s  %-8s  %s\n",
		"Inspection", "Handler", "Field", "Score", "Threshold", "Decision", "Time")
	fmt.Printf("%-12s+-%-16s+-%-12s+-%8s+-%9s+-%-8s+-%s\n",
		"------------", "----------------", "------------", "--------", "---------", "--------", "--------------------")
	for _, r := range toRows(entries) {
		fmt.Printf("%-12s  %-16s  %-12s  %8.4f  %9.2f  %-8s  %s\n",
			shortID(r.InspectionID), r.HandlerID, r.Field, r.Score, r.Threshold, r.Decision, r.CreatedAt)
	}
}

func printJSON(entries []audit.Entry) error {
	data, err := json.MarshalIndent(toRows(entries), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
