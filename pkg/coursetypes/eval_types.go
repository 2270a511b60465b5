package coursetypes

// EvaluationResult is the outcome of one quality metric run: a score in
// [0, 1], a human-readable reason, and a pass/fail verdict.
type EvaluationResult struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
	Pass   bool    `json:"pass"`
}
