// Package taxonomy holds the read-only topic data the analysis engine works
// from: per-subject topic catalogs, advice and study templates per topic, and
// known prerequisite links between topics. Build it once with Default and pass
// it to the engine components.
package taxonomy

import (
	"fmt"
	"strings"
)

// Family is a subject family with its own classification rules.
type Family string

const (
	Mathematics Family = "Mathematics"
	Physics     Family = "Physics"
	Chemistry   Family = "Chemistry"
	Biology     Family = "Biology"
)

var subjectAliases = map[string]Family{
	"math":        Mathematics,
	"maths":       Mathematics,
	"mathematics": Mathematics,
	"physics":     Physics,
	"chem":        Chemistry,
	"chemistry":   Chemistry,
	"bio":         Biology,
	"biology":     Biology,
}

// CanonicalSubject maps a free-form subject label to its family.
func CanonicalSubject(subject string) (Family, bool) {
	f, ok := subjectAliases[strings.ToLower(strings.TrimSpace(subject))]
	return f, ok
}

// DefaultTopic is the label used when no rule matches a question.
func DefaultTopic(subject string) string {
	if f, ok := CanonicalSubject(subject); ok {
		return "General " + string(f)
	}
	s := strings.TrimSpace(subject)
	if s == "" {
		return "General"
	}
	return "General " + s
}

// AdviceTemplate is the per-topic text used for weakness recommendations and
// study plan entries.
type AdviceTemplate struct {
	Description string
	ActionItems []string
	Immediate   string
	ShortTerm   string
	LongTerm    string
}

// ConceptLink states that mastering one topic supports another.
type ConceptLink struct {
	Mastered   string
	Struggling string
	Statement  string
}

// FixedTasks are appended to every study plan.
type FixedTasks struct {
	Immediate string
	ShortTerm string
	LongTerm  string
}

// Taxonomy is immutable after construction; accessors return copies.
type Taxonomy struct {
	catalogs           map[Family][]string
	advice             map[string]AdviceTemplate
	links              []ConceptLink
	genericConnections []string
	fixed              FixedTasks
}

// Default returns the built-in taxonomy.
func Default() *Taxonomy {
	return &Taxonomy{
		catalogs:           defaultCatalogs(),
		advice:             defaultAdvice(),
		links:              defaultLinks(),
		genericConnections: defaultGenericConnections(),
		fixed: FixedTasks{
			Immediate: "Review every mistake from today's test and write down why the correct answer is right",
			ShortTerm: "Take one full-length practice test every week under timed conditions",
			LongTerm:  "Build confidence by gradually increasing question difficulty as your accuracy improves",
		},
	}
}

// Catalog returns the ordered topic labels for a subject, ending with the
// subject's default label. Unknown subjects have no catalog.
func (t *Taxonomy) Catalog(subject string) []string {
	f, ok := CanonicalSubject(subject)
	if !ok {
		return nil
	}
	topics := t.catalogs[f]
	out := make([]string, 0, len(topics)+1)
	out = append(out, topics...)
	return append(out, DefaultTopic(subject))
}

// InCatalog reports whether topic is a valid label for subject.
func (t *Taxonomy) InCatalog(subject, topic string) bool {
	for _, c := range t.Catalog(subject) {
		if c == topic {
			return true
		}
	}
	return false
}

// HasAdvice reports whether a topic has a specific template.
func (t *Taxonomy) HasAdvice(topic string) bool {
	_, ok := t.advice[topic]
	return ok
}

// Advice returns the template for a topic, or the generic template filled in
// with the topic name.
func (t *Taxonomy) Advice(topic string) AdviceTemplate {
	if a, ok := t.advice[topic]; ok {
		a.ActionItems = append([]string(nil), a.ActionItems...)
		return a
	}
	return genericAdvice(topic)
}

// ConceptLinks returns the prerequisite links in precedence order.
func (t *Taxonomy) ConceptLinks() []ConceptLink {
	return append([]ConceptLink(nil), t.links...)
}

// GenericConnections are used when no concept link applies.
func (t *Taxonomy) GenericConnections() []string {
	return append([]string(nil), t.genericConnections...)
}

func (t *Taxonomy) FixedTasks() FixedTasks {
	return t.fixed
}

func genericAdvice(topic string) AdviceTemplate {
	return AdviceTemplate{
		Description: fmt.Sprintf("Your accuracy in %s is below the expected level. Rebuild the fundamentals before moving on to timed practice.", topic),
		ActionItems: []string{
			fmt.Sprintf("Revise the core concepts of %s from your notes or textbook", topic),
			fmt.Sprintf("Solve 10-15 graded practice problems on %s", topic),
			fmt.Sprintf("Review every incorrect %s answer and note the mistake you made", topic),
		},
		Immediate: fmt.Sprintf("Revise the key definitions and formulas of %s today", topic),
		ShortTerm: fmt.Sprintf("Solve 15 %s problems daily for the next week", topic),
		LongTerm:  fmt.Sprintf("Include %s questions in a weekly mixed test and track your accuracy", topic),
	}
}
