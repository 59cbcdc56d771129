package analysis

import (
	"testinsight-backend/internal/model"
	"testinsight-backend/internal/taxonomy"
)

// Mastery needs a higher bar than a strength recommendation.
const masteryThreshold = 85.0

type InsightLinker struct {
	tx *taxonomy.Taxonomy
}

func NewInsightLinker(tx *taxonomy.Taxonomy) *InsightLinker {
	return &InsightLinker{tx: tx}
}

// Link lists mastered and struggling topics and the known prerequisite links
// between them. Connections are never empty.
func (l *InsightLinker) Link(topics []model.TopicAnalysis) model.ConceptualInsights {
	mastered := topicNames(topics, func(t model.TopicAnalysis) bool { return t.Accuracy >= masteryThreshold })
	struggling := topicNames(topics, func(t model.TopicAnalysis) bool { return t.Accuracy < weaknessThreshold })

	masteredSet := toSet(mastered)
	strugglingSet := toSet(struggling)

	connections := []string{}
	for _, link := range l.tx.ConceptLinks() {
		if masteredSet[link.Mastered] && strugglingSet[link.Struggling] {
			connections = append(connections, link.Statement)
		}
	}
	if len(connections) == 0 {
		connections = l.tx.GenericConnections()
	}

	return model.ConceptualInsights{
		MasteredConcepts:   mastered,
		StrugglingConcepts: struggling,
		ConceptConnections: connections,
	}
}

// topicNames returns the distinct names of matching topics in input order.
func topicNames(topics []model.TopicAnalysis, keep func(model.TopicAnalysis) bool) []string {
	names := []string{}
	seen := map[string]bool{}
	for _, t := range topics {
		if keep(t) && !seen[t.Topic] {
			seen[t.Topic] = true
			names = append(names, t.Topic)
		}
	}
	return names
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
