// Package report collects the recoverable problems a run discovers and
// renders them for humans or machines. Problems never abort a run; they
// are accumulated and surfaced together at the end.
package report

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// Problem kinds.
const (
	KindMalformedDocument   = "malformed-document"
	KindMissingFile         = "missing-file"
	KindStructuralViolation = "structural-violation"
)

// Problem describes one recoverable issue found during a run.
type Problem struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Detail  string `json:"detail"`
}

// Problemf builds a Problem with a formatted detail message.
func Problemf(kind, subject, format string, args ...any) Problem {
	return Problem{Kind: kind, Subject: subject, Detail: fmt.Sprintf(format, args...)}
}

func (p Problem) String() string {
	if p.Subject == "" {
		return p.Detail
	}
	return p.Subject + ": " + p.Detail
}

// WriteProblems renders a bulleted human-readable problem list under a
// header line.
func WriteProblems(w io.Writer, header string, problems []Problem) {
	fmt.Fprintln(w, header)
	for _, p := range problems {
		fmt.Fprintf(w, " • %s\n", p)
	}
}

// WriteJSON renders any report value as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
