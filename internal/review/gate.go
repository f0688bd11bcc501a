package review

// DefaultScoreThreshold is the passing score when none is configured.
const DefaultScoreThreshold = 70

// GateResult is the outcome of comparing a score to a threshold.
type GateResult struct {
	Score     int
	Threshold int
	Pass      bool
}

// Gate passes iff score >= threshold.
func Gate(score, threshold int) GateResult {
	return GateResult{Score: score, Threshold: threshold, Pass: score >= threshold}
}

// EffectiveThreshold returns override when it is set, else the default.
func EffectiveThreshold(override *int) int {
	if override == nil {
		return DefaultScoreThreshold
	}
	return *override
}
