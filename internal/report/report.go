// Package report renders plans for people and for machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/specialistvlad/flightgraph/internal/dag"
	"github.com/specialistvlad/flightgraph/internal/planner"
	"github.com/specialistvlad/flightgraph/internal/resolver"
)

// KindRecorded labels leaves, which have no registered computation.
const KindRecorded = "recorded"

// Document is the serialisable view of one plan.
type Document struct {
	Recording   string       `json:"recording,omitempty"`
	Plan        string       `json:"plan"`
	Targets     []string     `json:"targets"`
	Order       []string     `json:"order"`
	Nodes       []Node       `json:"nodes"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
	Summary     Summary      `json:"summary"`
}

// Node is one vertex of the plan's graph.
type Node struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
	// Step is the 1-based position in the processing order, 0 if the node
	// is not scheduled.
	Step int `json:"step,omitempty"`
	// Uses are the operable dependencies the node will be given.
	Uses []string `json:"uses,omitempty"`
}

// Diagnostic is a resolver finding in serialisable form.
type Diagnostic struct {
	Kind    string   `json:"kind"`
	Node    string   `json:"node"`
	Cycle   []string `json:"cycle,omitempty"`
	Message string   `json:"message"`
}

// Summary counts non-root vertices by status.
type Summary struct {
	Vertices    int `json:"vertices"`
	Operable    int `json:"operable"`
	Inoperable  int `json:"inoperable"`
	Unavailable int `json:"unavailable"`
}

// Build flattens plan into a Document. recording labels the document and
// may be empty.
func Build(recording string, plan *planner.Plan) *Document {
	steps := make(map[string]int, len(plan.Order()))
	for i, name := range plan.Order() {
		steps[name] = i + 1
	}

	doc := &Document{
		Recording: recording,
		Plan:      plan.ID,
		Targets:   plan.Targets,
		Order:     plan.Order(),
	}
	if doc.Order == nil {
		doc.Order = []string{}
	}

	for _, name := range plan.Graph.Names() {
		if name == dag.RootName {
			continue
		}
		v, _ := plan.Graph.Vertex(name)
		outcome := plan.Result.Outcome(name)
		n := Node{
			Name:   name,
			Kind:   KindRecorded,
			Status: outcome.Status.String(),
			Reason: outcome.Reason.String(),
			Step:   steps[name],
			Uses:   plan.Tree.Edges(name),
		}
		if len(n.Uses) == 0 {
			n.Uses = nil
		}
		if v.Spec != nil {
			n.Kind = v.Spec.Kind.String()
		}
		doc.Nodes = append(doc.Nodes, n)

		switch outcome.Status {
		case resolver.Operable:
			doc.Summary.Operable++
		case resolver.Inoperable:
			doc.Summary.Inoperable++
		case resolver.Unavailable:
			doc.Summary.Unavailable++
		}
	}
	doc.Summary.Vertices = len(doc.Nodes)

	for _, d := range plan.Diagnostics() {
		doc.Diagnostics = append(doc.Diagnostics, Diagnostic{
			Kind:    d.Kind.String(),
			Node:    d.Node,
			Cycle:   d.Cycle,
			Message: d.Message,
		})
	}
	return doc
}

// WriteJSON writes docs as a JSON array.
func WriteJSON(w io.Writer, docs ...*Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if docs == nil {
		docs = []*Document{}
	}
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteText writes one table per document. Styling follows the terminal
// capabilities of w, so buffers and pipes get plain text.
func WriteText(w io.Writer, docs ...*Document) error {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true)
	muted := r.NewStyle().Faint(true)
	warn := r.NewStyle().Foreground(lipgloss.Color("#F4D03F"))
	statusStyles := map[string]lipgloss.Style{
		resolver.Operable.String():    r.NewStyle().Foreground(lipgloss.Color("#2CD7C7")),
		resolver.Inoperable.String():  r.NewStyle().Foreground(lipgloss.Color("#E74C3C")),
		resolver.Unavailable.String(): muted,
	}

	for i, doc := range docs {
		var b strings.Builder
		if i > 0 {
			b.WriteString("\n")
		}
		heading := "Plan " + doc.Plan
		if doc.Recording != "" {
			heading = "Recording " + doc.Recording + " (plan " + doc.Plan + ")"
		}
		b.WriteString(title.Render(heading) + "\n")

		t := table.New().
			Border(lipgloss.NormalBorder()).
			BorderStyle(muted).
			Headers("STEP", "NODE", "KIND", "STATUS", "REASON", "USES")
		for _, n := range doc.Nodes {
			step := "-"
			if n.Step > 0 {
				step = strconv.Itoa(n.Step)
			}
			status := n.Status
			if s, ok := statusStyles[n.Status]; ok {
				status = s.Render(n.Status)
			}
			t.Row(step, n.Name, n.Kind, status, n.Reason, strings.Join(n.Uses, ", "))
		}
		b.WriteString(t.String() + "\n")

		fmt.Fprintf(&b, "%d operable, %d inoperable, %d unavailable\n",
			doc.Summary.Operable, doc.Summary.Inoperable, doc.Summary.Unavailable)
		if len(doc.Order) > 0 {
			b.WriteString("order: " + strings.Join(doc.Order, " -> ") + "\n")
		} else {
			b.WriteString(muted.Render("order: nothing to compute") + "\n")
		}
		for _, d := range doc.Diagnostics {
			b.WriteString(warn.Render("warning: "+d.Message) + "\n")
		}

		if _, err := io.WriteString(w, b.String()); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

// Write dispatches to WriteText or WriteJSON by format name.
func Write(w io.Writer, format string, docs ...*Document) error {
	switch format {
	case "json":
		return WriteJSON(w, docs...)
	case "text", "":
		return WriteText(w, docs...)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
