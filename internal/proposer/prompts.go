package proposer

import (
	"fmt"
	"strings"
)

const proposeSystemPrompt = `You are an experienced thesis advisor. You decompose a thesis project into
sequential phases and concrete tasks. You respond with a single valid JSON
object and nothing else. Phase weights are fractions of total effort and
must sum to 1.0. Task dependencies reference task titles declared earlier
in the proposal or within the same phase. Never invent circular
dependencies.`

// buildUserPrompt renders the decomposition request, including the field
// template as guidance and, for replans, the remaining scope.
func buildUserPrompt(req Request, tmpl FieldTemplate) string {
	var b strings.Builder

	if req.RemainingScope != "" {
		b.WriteString("REPLAN REQUEST: the student has fallen behind. ")
		b.WriteString("Decompose only the remaining scope below; completed work must not reappear.\n\n")
		b.WriteString("REMAINING SCOPE:\n")
		b.WriteString(req.RemainingScope)
		b.WriteString("\n\n")
	} else {
		b.WriteString("GOAL:\n")
		b.WriteString(req.GoalDescription)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "FIELD: %s\n", tmpl.Field)
	fmt.Fprintf(&b, "TOTAL AVAILABLE HOURS: %.0f\n", req.TotalHours)
	fmt.Fprintf(&b, "FOCUS SESSION LENGTH: %d minutes\n\n", req.FocusSessionMin)

	b.WriteString("TYPICAL PHASES FOR THIS FIELD (adapt as needed):\n")
	for _, ph := range tmpl.Phases {
		fmt.Fprintf(&b, "- %s (weight %.2f): %s\n", ph.Name, ph.Weight, ph.Description)
	}

	b.WriteString(`
RESPOND WITH VALID JSON:
{
  "phases": [
    {
      "name": "Phase Name",
      "description": "What this phase accomplishes",
      "deliverable": "Concrete output of the phase",
      "weight": 0.25,
      "tasks": [
        {
          "title": "Task title",
          "description": "What to do",
          "estimated_hours": 6,
          "deliverable": "Optional concrete output",
          "depends_on": ["Earlier task title"]
        }
      ]
    }
  ]
}
`)

	return b.String()
}
