package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/debloat-dev/debloat/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		confidence int
		refs       int
		category   domain.Category
		isCore     bool
		want       domain.Risk
	}{
		{"high confidence zero refs deprecated", 95, 0, domain.CategoryDeprecated, false, domain.RiskLow},
		{"reference escalation beats base confidence", 85, 6, domain.CategoryCode, false, domain.RiskHigh},
		{"base low", 92, 1, domain.CategoryCode, false, domain.RiskLow},
		{"base medium", 84, 1, domain.CategoryCode, false, domain.RiskMedium},
		{"base high", 70, 1, domain.CategoryCode, false, domain.RiskHigh},
		{"zero refs demotes only with high confidence", 85, 0, domain.CategoryCode, false, domain.RiskMedium},
		{"core floors at medium", 95, 0, domain.CategoryCore, true, domain.RiskMedium},
		{"category caps at medium", 60, 1, domain.CategoryTest, false, domain.RiskMedium},
		{"archive category capped", 50, 3, domain.CategoryArchive, false, domain.RiskMedium},
		{"escalation overrides category cap", 60, 10, domain.CategoryDeprecated, false, domain.RiskHigh},
		{"core high stays high", 70, 3, domain.CategoryCore, true, domain.RiskHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.Classify(tt.confidence, tt.refs, tt.category, tt.isCore)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, domain.RiskLow, domain.Classify(95, 0, domain.CategoryDeprecated, false))
	}
}

func TestReclassify(t *testing.T) {
	findings := []domain.Finding{
		{Target: "a.go", Confidence: 95, ReferenceCount: 0, Category: domain.CategoryDeprecated},
		{Target: "b.go", Confidence: 85, ReferenceCount: 6, Category: domain.CategoryCode},
	}
	domain.Reclassify(findings)
	assert.Equal(t, domain.RiskLow, findings[0].Risk)
	assert.Equal(t, domain.RiskHigh, findings[1].Risk)
}
