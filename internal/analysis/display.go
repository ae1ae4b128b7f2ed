package analysis

import (
	"math"

	"github.com/zatekoja/careplannavigator/internal/domain/entities"
)

// BuildDisplayGraph renders steps and dependencies as nodes and edges. Edges
// run from the prerequisite (the dependency's target) to the step that
// depends on it (the dependency's source), the order in which a patient
// performs them.
func BuildDisplayGraph(planID string, steps []*entities.CareStep, deps []*entities.Dependency) *entities.DependencyGraph {
	graph := &entities.DependencyGraph{
		CarePlanID: planID,
		Nodes:      make([]entities.GraphNode, 0, len(steps)),
		Edges:      make([]entities.GraphEdge, 0, len(deps)),
	}

	known := make(map[string]struct{}, len(steps))
	for _, step := range steps {
		known[step.ID] = struct{}{}
		graph.Nodes = append(graph.Nodes, entities.GraphNode{
			ID:       step.ID,
			Label:    step.Description,
			Category: step.Category,
		})
	}

	for _, d := range deps {
		_, srcOK := known[d.SourceStepID]
		_, dstOK := known[d.TargetStepID]
		if !srcOK || !dstOK {
			continue
		}
		graph.Edges = append(graph.Edges, entities.GraphEdge{
			Source:      d.TargetStepID,
			Target:      d.SourceStepID,
			Type:        d.Type,
			Criticality: d.Criticality,
		})
	}

	return graph
}

// SummarizeJourney computes journey metadata. AverageComplexity is the
// rounded mean of the steps' stored complexity scores, 0 without steps.
func SummarizeJourney(steps []*entities.CareStep, deps []*entities.Dependency) entities.JourneyMetadata {
	meta := entities.JourneyMetadata{
		TotalSteps:        len(steps),
		TotalDependencies: len(deps),
	}
	if len(steps) == 0 {
		return meta
	}

	total := 0
	for _, step := range steps {
		if step.RiskLevel == entities.RiskHigh {
			meta.HighRiskSteps++
		}
		total += step.ComplexityScore
	}
	meta.AverageComplexity = int(math.Round(float64(total) / float64(len(steps))))
	return meta
}
