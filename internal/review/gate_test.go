package review

import "testing"

func TestGate(t *testing.T) {
	tests := []struct {
		score, threshold int
		pass             bool
	}{
		{70, 70, true},
		{69, 70, false},
		{100, 70, true},
		{0, 0, true},
		{50, 50, true},
		{49, 50, false},
	}
	for _, tt := range tests {
		got := Gate(tt.score, tt.threshold)
		if got.Pass != tt.pass {
			t.Errorf("Gate(%d, %d).Pass = %v, want %v", tt.score, tt.threshold, got.Pass, tt.pass)
		}
	}
}

func TestEffectiveThreshold(t *testing.T) {
	if got := EffectiveThreshold(nil); got != DefaultScoreThreshold {
		t.Errorf("nil override = %d, want %d", got, DefaultScoreThreshold)
	}
	fifty := 50
	if got := EffectiveThreshold(&fifty); got != 50 {
		t.Errorf("override 50 = %d, want 50", got)
	}
}
