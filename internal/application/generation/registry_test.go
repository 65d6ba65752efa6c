package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_BuiltinTypes(t *testing.T) {
	r := NewRegistry()

	for _, tag := range []string{"blog", "email", "letter", "resume", "essay", "marketing"} {
		ct, ok := r.Lookup(tag)
		require.True(t, ok, "missing builtin type %s", tag)
		assert.NotEmpty(t, ct.Instruction)
		assert.NotEmpty(t, ct.Fields)
	}
}

func TestRegistry_InstructionText(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t,
		"Create SEO-optimized blog posts with engaging titles, meta descriptions, and well-structured content with headings.",
		r.Instruction("blog"))
	assert.Equal(t,
		"Write professional and effective emails with clear subject lines and well-formatted body text.",
		r.Instruction("email"))
	assert.Equal(t,
		"Compose formal business letters with proper formatting, professional language, and clear structure.",
		r.Instruction("letter"))
	assert.Equal(t,
		"Generate professional resume content with compelling summaries, achievement-focused bullet points, and industry-appropriate language.",
		r.Instruction("resume"))
	assert.Equal(t,
		"Write well-researched academic essays with clear thesis statements, supporting arguments, and proper structure.",
		r.Instruction("essay"))
	assert.Equal(t,
		"Create persuasive marketing copy that drives action, highlights benefits, and connects with the target audience.",
		r.Instruction("marketing"))
}

func TestRegistry_FieldNames(t *testing.T) {
	r := NewRegistry()

	fieldNames := func(tag string) []string {
		ct, ok := r.Lookup(tag)
		require.True(t, ok)
		names := make([]string, 0, len(ct.Fields))
		for _, f := range ct.Fields {
			names = append(names, f.Name)
		}
		return names
	}

	assert.Equal(t, []string{"topic", "targetAudience", "keyPoints"}, fieldNames("blog"))
	assert.Equal(t, []string{"recipientName", "senderName", "subject", "purpose"}, fieldNames("email"))
	assert.Equal(t, []string{
		"senderName", "senderAddress", "senderPhone", "senderEmail",
		"recipientName", "recipientTitle", "companyName", "recipientAddress", "purpose",
	}, fieldNames("letter"))
	assert.Equal(t, []string{
		"fullName", "email", "phone", "location", "jobTitle", "experience", "education", "skills",
	}, fieldNames("resume"))
	assert.Equal(t, []string{"topic", "thesisStatement", "keyArguments", "sources"}, fieldNames("essay"))
	assert.Equal(t, []string{
		"productName", "targetAudience", "keyBenefits", "callToAction", "uniqueValue",
	}, fieldNames("marketing"))
}

func TestRegistry_InstructionFallback(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, defaultInstruction, r.Instruction("screenplay"))
	assert.Equal(t, defaultInstruction, r.Instruction(""))
}

func TestRegistry_RegisterOverrides(t *testing.T) {
	r := NewRegistry()

	r.Register(ContentType{Tag: "blog", Instruction: "custom"})

	assert.Equal(t, "custom", r.Instruction("blog"))
}

func TestRegistry_ListSorted(t *testing.T) {
	r := NewRegistry()

	list := r.List()
	require.Len(t, list, 6)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Tag, list[i].Tag)
	}
}
