package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	p := Build("- NR: noticeable removal", "Age gate for users in Indonesia")

	assert.Contains(t, p, "<GLOSSARY>\n- NR: noticeable removal\n</GLOSSARY>")
	assert.Contains(t, p, "<FEATURE_DESCRIPTION>\nAge gate for users in Indonesia\n</FEATURE_DESCRIPTION>")
	assert.Contains(t, p, `"is_geo_compliance_needed"`)
	assert.Contains(t, p, `"relevant_regulation"`)
}

func TestBuild_EmptyGlossary(t *testing.T) {
	p := Build("", "Dark mode toggle")
	assert.Contains(t, p, "<GLOSSARY>\n\n</GLOSSARY>")
}
