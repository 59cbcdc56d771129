package analysis

import (
	"sort"

	"testinsight-backend/internal/model"
	"testinsight-backend/internal/taxonomy"
)

const planTopics = 2

type StudyPlanner struct {
	tx *taxonomy.Taxonomy
}

func NewStudyPlanner(tx *taxonomy.Taxonomy) *StudyPlanner {
	return &StudyPlanner{tx: tx}
}

// BuildPlan adds one task per horizon for each of the two weakest topics below
// 60% accuracy, then the fixed tasks.
func (p *StudyPlanner) BuildPlan(topics []model.TopicAnalysis) model.StudyPlan {
	plan := model.StudyPlan{
		Immediate: []string{},
		ShortTerm: []string{},
		LongTerm:  []string{},
	}

	var weak []model.TopicAnalysis
	for _, t := range topics {
		if t.Accuracy < weaknessThreshold {
			weak = append(weak, t)
		}
	}
	sort.SliceStable(weak, func(i, j int) bool { return weak[i].Accuracy < weak[j].Accuracy })
	if len(weak) > planTopics {
		weak = weak[:planTopics]
	}

	for _, t := range weak {
		a := p.tx.Advice(t.Topic)
		plan.Immediate = append(plan.Immediate, a.Immediate)
		plan.ShortTerm = append(plan.ShortTerm, a.ShortTerm)
		plan.LongTerm = append(plan.LongTerm, a.LongTerm)
	}

	fixed := p.tx.FixedTasks()
	plan.Immediate = append(plan.Immediate, fixed.Immediate)
	plan.ShortTerm = append(plan.ShortTerm, fixed.ShortTerm)
	plan.LongTerm = append(plan.LongTerm, fixed.LongTerm)
	return plan
}
