// Package evals provides the offline quality-assurance harness for agent
// output. Metrics replay recorded inputs and outputs through compliance and
// relevancy checks; they share the generation provider contract with the
// orchestrator but run out-of-band, never at request time.
package evals

import (
	"context"
	"encoding/json"
	"fmt"

	"courseforge/internal/logger"
	"courseforge/internal/services"
	"courseforge/pkg/coursetypes"
)

// RelevancyThreshold is the judge score above which relevancy passes.
const RelevancyThreshold = 0.7

// Metric scores one input/output pair. Implementations are stateless and
// must never panic or propagate provider failures into a test run.
type Metric interface {
	// Name identifies the metric in reports.
	Name() string

	// Evaluate scores the candidate output against the original input.
	Evaluate(ctx context.Context, input string, output string) coursetypes.EvaluationResult
}

// ComplianceMetric checks syntactic correctness: the output must parse as a
// non-null JSON object. The score is binary and requires no network calls.
type ComplianceMetric struct{}

// NewComplianceMetric creates a new ComplianceMetric.
func NewComplianceMetric() *ComplianceMetric {
	return &ComplianceMetric{}
}

// Name returns "json_compliance".
func (c *ComplianceMetric) Name() string {
	return "json_compliance"
}

// Evaluate parses the output as JSON and requires a non-null object.
func (c *ComplianceMetric) Evaluate(_ context.Context, _ string, output string) coursetypes.EvaluationResult {
	var parsed any
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		return coursetypes.EvaluationResult{Score: 0, Reason: "Failed to parse JSON", Pass: false}
	}
	if _, ok := parsed.(map[string]any); !ok {
		return coursetypes.EvaluationResult{Score: 0, Reason: "Output is not a JSON object", Pass: false}
	}
	return coursetypes.EvaluationResult{Score: 1, Reason: "Valid JSON", Pass: true}
}

// RelevancyMetric checks semantic correctness by delegating judgment to the
// generation provider: does the output actually address the input request.
type RelevancyMetric struct {
	provider coursetypes.GenerationProvider
}

// NewRelevancyMetric creates a RelevancyMetric judged by the given provider.
func NewRelevancyMetric(provider coursetypes.GenerationProvider) *RelevancyMetric {
	return &RelevancyMetric{provider: provider}
}

// Name returns "answer_relevancy".
func (r *RelevancyMetric) Name() string {
	return "answer_relevancy"
}

// judgeVerdict is the schema-constrained judge response.
type judgeVerdict struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// evaluationFailure is the deterministic result returned when the judge call
// fails for any reason. The metric never crashes a test run.
func evaluationFailure() coursetypes.EvaluationResult {
	return coursetypes.EvaluationResult{Score: 0, Reason: "Evaluation Error", Pass: false}
}

// Evaluate submits the fixed evaluator prompt and passes iff the returned
// score exceeds the relevancy threshold.
func (r *RelevancyMetric) Evaluate(ctx context.Context, input string, output string) coursetypes.EvaluationResult {
	prompt := fmt.Sprintf(`You are an AI Evaluator.

Original User Request: %q

AI Generated Output:
%s

Task:
Evaluate if the generated output directly and accurately addresses the user's request.
Ignore JSON formatting issues (those are checked elsewhere).
Focus on the content.

Return a JSON response with a score from 0.0 to 1.0 and a reason.`, input, output)

	result, err := r.provider.GenerateContent(ctx, coursetypes.GenerationRequest{
		Model:          services.DefaultModel,
		Prompt:         prompt,
		ResponseSchema: services.EvaluationSchema(),
	})
	if err != nil {
		logger.Warn("Relevancy evaluation failed", "error", err)
		return evaluationFailure()
	}

	var verdict judgeVerdict
	if err := json.Unmarshal([]byte(result.Text), &verdict); err != nil {
		logger.Warn("Relevancy verdict unparseable", "error", err)
		return evaluationFailure()
	}

	return coursetypes.EvaluationResult{
		Score:  verdict.Score,
		Reason: verdict.Reason,
		Pass:   verdict.Score > RelevancyThreshold,
	}
}
