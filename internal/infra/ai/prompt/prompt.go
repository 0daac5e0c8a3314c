package prompt

import "fmt"

// GetSystemPrompt provides the system role for both backends.
func GetSystemPrompt() string {
	return "You are an expert compliance analyst AI."
}

const template = `You are an expert compliance analyst AI. Your task is to determine if a feature
requires geo-specific compliance logic based on its description.

A feature requires geo-specific compliance if it is being implemented to
comply with a specific law, regulation, or legal mandate in a particular
geographic region (e.g., a country, state, or union like the EU).

Do NOT flag features for the following reasons:
- Business-driven decisions, such as market testing, phased rollouts, or A/B tests in specific regions.
- General safety or policy features that apply globally, even if they mention a region for context.

To help you understand the feature description, here is a glossary of internal terms that may be used:
---
<GLOSSARY>
%s
</GLOSSARY>
---

Now, analyze the following feature description:
---
<FEATURE_DESCRIPTION>
%s
</FEATURE_DESCRIPTION>
---

Provide your analysis as a JSON object with the following three keys:
1. "is_geo_compliance_needed": boolean (true if it requires geo-specific compliance, false otherwise)
2. "reasoning": string (a clear, concise explanation for your decision)
3. "relevant_regulation": string (the name of the law or regulation if mentioned, otherwise "N/A")`

// Build renders the classification prompt around the glossary text and one
// feature description.
func Build(glossaryText, description string) string {
	return fmt.Sprintf(template, glossaryText, description)
}
