package analysis

// RegulationUnknown is the placeholder used when no specific law or
// regulation could be identified for a feature.
const RegulationUnknown = "N/A"

// SkippedReasoning is emitted for rows whose description is blank.
const SkippedReasoning = "Skipped: Empty feature description."

// Result is the verdict for one feature description. A nil
// IsGeoComplianceNeeded means the analysis could not run (backend failure,
// unparseable reply, or a skipped row); Reasoning then carries the cause.
type Result struct {
	IsGeoComplianceNeeded *bool  `json:"is_geo_compliance_needed"`
	Reasoning             string `json:"reasoning"`
	RelevantRegulation    string `json:"relevant_regulation"`
}

// Failed builds a null-flagged result for a row the backend could not
// classify.
func Failed(reasoning string) Result {
	return Result{
		Reasoning:          reasoning,
		RelevantRegulation: RegulationUnknown,
	}
}

// Skipped builds the fixed result for a blank feature description.
func Skipped() Result {
	return Failed(SkippedReasoning)
}
