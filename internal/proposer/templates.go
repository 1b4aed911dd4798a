package proposer

// PhaseHint is one entry of a field template: a typical phase and its
// share of total effort.
type PhaseHint struct {
	Name        string
	Description string
	Weight      float64
}

// FieldTemplate carries field-specific decomposition knowledge fed to the
// proposer as guidance. Weights in each template sum to 1.0.
type FieldTemplate struct {
	Field  string
	Phases []PhaseHint
}

var fieldTemplates = map[string]FieldTemplate{
	"computer-science": {
		Field: "computer-science",
		Phases: []PhaseHint{
			{Name: "Literature Review", Description: "Survey prior work and position the contribution", Weight: 0.20},
			{Name: "Problem Definition", Description: "Pin down research questions and success criteria", Weight: 0.10},
			{Name: "Design & Implementation", Description: "Build the system or method under study", Weight: 0.30},
			{Name: "Evaluation", Description: "Run experiments and collect measurements", Weight: 0.15},
			{Name: "Writing & Documentation", Description: "Draft the thesis chapters", Weight: 0.20},
			{Name: "Revision & Finalization", Description: "Incorporate feedback and polish", Weight: 0.05},
		},
	},
	"psychology": {
		Field: "psychology",
		Phases: []PhaseHint{
			{Name: "Literature Review", Description: "Survey theory and prior studies", Weight: 0.25},
			{Name: "Hypothesis Formation", Description: "Derive testable hypotheses", Weight: 0.08},
			{Name: "Study Design", Description: "Design the study and obtain approvals", Weight: 0.12},
			{Name: "Data Collection", Description: "Recruit participants and gather data", Weight: 0.20},
			{Name: "Statistical Analysis", Description: "Analyze the collected data", Weight: 0.15},
			{Name: "Writing & Documentation", Description: "Draft the thesis chapters", Weight: 0.15},
			{Name: "Revision & Finalization", Description: "Incorporate feedback and polish", Weight: 0.05},
		},
	},
}

// genericTemplate is used when no field-specific template exists.
var genericTemplate = FieldTemplate{
	Field: "generic",
	Phases: []PhaseHint{
		{Name: "Literature Review", Description: "Survey prior work", Weight: 0.25},
		{Name: "Research & Analysis", Description: "Carry out the core investigation", Weight: 0.35},
		{Name: "Writing & Documentation", Description: "Draft the thesis chapters", Weight: 0.30},
		{Name: "Revision & Finalization", Description: "Incorporate feedback and polish", Weight: 0.10},
	},
}

// TemplateFor returns the field template for a field name, falling back
// to the generic template.
func TemplateFor(field string) FieldTemplate {
	if t, ok := fieldTemplates[field]; ok {
		return t
	}
	return genericTemplate
}
