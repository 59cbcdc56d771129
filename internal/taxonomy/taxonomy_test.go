package taxonomy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalSubject(t *testing.T) {
	cases := map[string]Family{
		"Mathematics": Mathematics,
		" maths ":     Mathematics,
		"MATH":        Mathematics,
		"Physics":     Physics,
		"chem":        Chemistry,
		"Biology":     Biology,
	}
	for in, want := range cases {
		got, ok := CanonicalSubject(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := CanonicalSubject("History")
	assert.False(t, ok)
}

func TestDefaultTopic(t *testing.T) {
	assert.Equal(t, "General Physics", DefaultTopic("physics"))
	assert.Equal(t, "General Mathematics", DefaultTopic("maths"))
	assert.Equal(t, "General History", DefaultTopic(" History "))
	assert.Equal(t, "General", DefaultTopic(""))
}

func TestCatalogEndsWithDefaultTopic(t *testing.T) {
	tx := Default()
	c := tx.Catalog("Physics")
	require.NotEmpty(t, c)
	assert.Equal(t, "General Physics", c[len(c)-1])
	assert.True(t, tx.InCatalog("Physics", "Mechanics"))
	assert.False(t, tx.InCatalog("Physics", "Organic Chemistry"))
	assert.Nil(t, tx.Catalog("History"))
}

func TestCatalogIsACopy(t *testing.T) {
	tx := Default()
	c := tx.Catalog("Mathematics")
	c[0] = "mutated"
	assert.NotEqual(t, "mutated", tx.Catalog("Mathematics")[0])
}

func TestAdviceFallsBackToGenericTemplate(t *testing.T) {
	tx := Default()

	specific := tx.Advice("Calculus")
	assert.True(t, tx.HasAdvice("Calculus"))
	assert.Contains(t, specific.Description, "differentiation")

	generic := tx.Advice("Optics")
	assert.False(t, tx.HasAdvice("Optics"))
	assert.Contains(t, generic.Description, "Optics")
	assert.Len(t, generic.ActionItems, 3)
	for _, task := range []string{generic.Immediate, generic.ShortTerm, generic.LongTerm} {
		assert.Contains(t, task, "Optics")
	}
}

func TestAdviceTemplatesHaveCadence(t *testing.T) {
	tx := Default()
	for topic := range defaultAdvice() {
		a := tx.Advice(topic)
		assert.Contains(t, strings.ToLower(a.ShortTerm), "daily", topic)
		assert.Contains(t, strings.ToLower(a.LongTerm), "week", topic)
	}
}

func TestConceptLinksReferenceCatalogTopics(t *testing.T) {
	tx := Default()
	known := map[string]bool{}
	for _, topics := range defaultCatalogs() {
		for _, topic := range topics {
			known[topic] = true
		}
	}
	for _, l := range tx.ConceptLinks() {
		assert.True(t, known[l.Mastered], l.Mastered)
		assert.True(t, known[l.Struggling], l.Struggling)
		assert.NotEmpty(t, l.Statement)
	}
	assert.Len(t, tx.GenericConnections(), 2)
}
