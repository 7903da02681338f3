package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterRejectsNoiseTypes(t *testing.T) {
	f := NewFilter()

	for _, noiseType := range []string{"DATE", "TIME", "CARDINAL", "ORDINAL", "QUANTITY", "MONEY", "PERCENT"} {
		m := EntityMention{Text: "Something Long Enough", Type: noiseType}
		assert.False(t, f.Relevant(m), "type %s must be rejected regardless of text", noiseType)
	}
}

func TestFilterRejectsShortText(t *testing.T) {
	f := NewFilter()

	assert.False(t, f.Relevant(EntityMention{Text: "Mr", Type: "PERSON"}))
	assert.False(t, f.Relevant(EntityMention{Text: "", Type: "ORG"}))
	assert.True(t, f.Relevant(EntityMention{Text: "Ali", Type: "PERSON"}))
}

func TestFilterRejectsDigits(t *testing.T) {
	f := NewFilter()

	assert.False(t, f.Relevant(EntityMention{Text: "12", Type: "PERSON"}))
	assert.False(t, f.Relevant(EntityMention{Text: "1990", Type: "GPE"}))
	// Mixed alphanumerics pass the digit check.
	assert.True(t, f.Relevant(EntityMention{Text: "G-7", Type: "ORG"}))
}

func TestFilterAcceptsResearchEntities(t *testing.T) {
	f := NewFilter()

	assert.True(t, f.Relevant(EntityMention{Text: "Pakistan", Type: "GPE"}))
	assert.True(t, f.Relevant(EntityMention{Text: "Benazir Bhutto", Type: "PERSON"}))
	assert.True(t, f.Relevant(EntityMention{Text: "United Nations", Type: "ORG"}))
}
