package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/wikiforge/spamguard/internal/audit"
	"github.com/wikiforge/spamguard/internal/config"
	"github.com/wikiforge/spamguard/internal/fields"
	"github.com/wikiforge/spamguard/internal/guard"
	"github.com/wikiforge/spamguard/internal/httpgate"
	"github.com/wikiforge/spamguard/internal/registry"
)

// #region main

func main() {
	cfgPath := flag.String("config", envOr("SPAMGUARD_CONFIG", ""), "path to spamguard.toml")
	handlerID := flag.String("handler", "page.save", "handler id to invoke")
	fieldList := flag.String("fields", "subject,content", "protected fields for the handler")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	auditLog, err := audit.NewLog(cfg.AuditDB)
	if err != nil {
		log.Fatalf("open audit db: %v", err)
	}
	defer auditLog.Close()

	reg := registry.New()
	reg.Protect(*handlerID, splitFields(*fieldList)...)

	g, err := guard.New(guard.Options{
		Registry:     reg,
		Config:       config.NewProvider(cfg, auditLog),
		Engine:       guard.DefaultEngine(),
		ContentField: cfg.ContentField,
	})
	if err != nil {
		log.Fatalf("wire guard: %v", err)
	}

	fmt.Println("spamguard ready.")
	fmt.Printf("  handler: %s | fields: %s | threshold: %.2f | db: %s\n",
		*handlerID, *fieldList, cfg.Threshold, cfg.AuditDB)
	fmt.Println("Enter field=value lines; a blank line runs the inspection. 'quit' to exit.")

	runLoop(g, auditLog, *handlerID)
}

// #endregion main

// #region loop

func runLoop(g *guard.Guard, auditLog *audit.Log, handlerID string) {
	scanner := bufio.NewScanner(os.Stdin)
	submission := map[string]any{}

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			break
		}
		if line != "" {
			name, value, ok := strings.Cut(line, "=")
			if !ok {
				fmt.Println("expected field=value")
				continue
			}
			submission[strings.TrimSpace(name)] = value
			continue
		}
		if len(submission) == 0 {
			continue
		}

		runOnce(g, auditLog, handlerID, submission)
		submission = map[string]any{}
	}
}

func runOnce(g *guard.Guard, auditLog *audit.Log, handlerID string, submission map[string]any) {
	subject, _ := submission["page"].(string)
	inv := guard.Invocation{
		HandlerID: handlerID,
		Source:    fields.MapSource(submission),
		Subject:   subject,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	result, err := g.Intercept(ctx, inv)
	cancel()
	if err != nil {
		log.Printf("intercept error: %v", err)
		return
	}

	decision := "allow"
	if !result.Allowed() {
		decision = "block"
	}
	fmt.Printf("[%s] decision=%s threshold=%.2f\n", result.InspectionID, decision, result.Threshold)
	for _, fo := range result.Fields {
		marker := " "
		if fo.Spam {
			marker = "!"
		}
		fmt.Printf("  %s %-12s score=%.4f\n", marker, fo.Field, fo.Score)
	}
	for _, e := range result.Errors {
		fmt.Printf("  error: %s\n", httpgate.Render(e))
	}

	recordResult(auditLog, inv, result)
}

// #endregion loop

// #region audit

func recordResult(auditLog *audit.Log, inv guard.Invocation, result *guard.Result) {
	for _, fo := range result.Fields {
		decision := "allow"
		reason := ""
		if fo.Spam {
			decision = "block"
			reason = "score at or below threshold"
		}
		err := auditLog.Record(audit.Entry{
			InspectionID: result.InspectionID,
			HandlerID:    result.HandlerID,
			Subject:      inv.Subject,
			Field:        fo.Field,
			Score:        fo.Score,
			Threshold:    result.Threshold,
			Decision:     decision,
			Reason:       reason,
		})
		if err != nil {
			log.Printf("audit error: %v", err)
		}
	}
}

// #endregion audit

// #region helpers

func splitFields(list string) []string {
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
