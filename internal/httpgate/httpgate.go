package httpgate

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/wikiforge/spamguard/internal/fields"
	"github.com/wikiforge/spamguard/internal/guard"
)

// #region messages

// defaultMessages maps validation message keys to user-facing templates.
var defaultMessages = map[string]string{
	guard.MessageKeySpam: "The %q field appears to contain spam and was rejected.",
}

// Render resolves a validation error to user-facing text. Unknown keys fall
// back to the key itself so nothing is silently dropped.
func Render(e guard.ValidationError) string {
	tmpl, ok := defaultMessages[e.MessageKey]
	if !ok {
		return e.MessageKey
	}
	return fmt.Sprintf(tmpl, e.Args...)
}

// #endregion messages

// #region gate

// Gate binds the guard to an HTTP dispatch pipeline: each protected route
// wraps its handler, form fields become the field source, and a Block
// renders the field errors instead of invoking the handler.
type Gate struct {
	guard *guard.Guard

	// SubjectField names the form field whose value identifies the subject
	// being modified. Defaults to "page".
	SubjectField string
}

// New creates a Gate around a wired guard.
func New(g *guard.Guard) *Gate {
	return &Gate{guard: g, SubjectField: "page"}
}

// #endregion gate

// #region protect

// fieldError is one rendered validation error in the block response body.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Protect wraps next so the invocation only proceeds when the guard allows
// it. Spam findings produce a 422 with field-attributed messages; defects
// (unknown handler, engine failure) produce a 500 and are logged, never
// treated as an allow.
func (g *Gate) Protect(handlerID string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form data", http.StatusBadRequest)
			return
		}

		inv := guard.Invocation{
			HandlerID: handlerID,
			Source:    fields.FormSource(r.Form),
			Subject:   r.Form.Get(g.SubjectField),
		}
		result, err := g.guard.Intercept(r.Context(), inv)
		if err != nil {
			log.Printf("[GATE] %s: intercept failed: %v", handlerID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if !result.Allowed() {
			writeBlock(w, result.Errors)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeBlock(w http.ResponseWriter, errs guard.ValidationErrors) {
	body := struct {
		Errors []fieldError `json:"errors"`
	}{Errors: make([]fieldError, len(errs))}
	for i, e := range errs {
		body.Errors[i] = fieldError{Field: e.Field, Message: Render(e)}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[GATE] write block response: %v", err)
	}
}

// #endregion protect
