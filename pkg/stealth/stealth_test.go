package stealth

import (
	"testing"

	"github.com/picogrid/decoy-sim/pkg/units"
)

type fakeProvider struct {
	divisor  float64
	affected bool
}

func (f *fakeProvider) ReductionDivisor(units.Unit) (float64, bool) {
	return f.divisor, f.affected
}

func TestTrueRCS(t *testing.T) {
	ac := units.NewAircraft("Ghost-01", 0.5)

	tests := []struct {
		name     string
		provider Provider
		expected float64
	}{
		{
			name:     "no provider",
			provider: nil,
			expected: 0.5,
		},
		{
			name:     "unaffected unit",
			provider: &fakeProvider{divisor: 4, affected: false},
			expected: 0.5,
		},
		{
			name:     "affected unit reverses reduction",
			provider: &fakeProvider{divisor: 4, affected: true},
			expected: 2.0,
		},
		{
			name:     "invalid divisor ignored",
			provider: &fakeProvider{divisor: 0, affected: true},
			expected: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrueRCS(tt.provider, ac); got != tt.expected {
				t.Errorf("TrueRCS: expected %f, got %f", tt.expected, got)
			}
		})
	}
}
