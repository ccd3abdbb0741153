package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debloat-dev/debloat/internal/domain"
)

func TestParsePolicy(t *testing.T) {
	for _, s := range []string{"none", "low", "medium"} {
		p, err := domain.ParsePolicy(s)
		require.NoError(t, err)
		assert.Equal(t, domain.ApprovalPolicy(s), p)
	}

	_, err := domain.ParsePolicy("high")
	assert.Error(t, err)
	_, err = domain.ParsePolicy("")
	assert.Error(t, err)
}

func TestAutoApproved(t *testing.T) {
	safe := domain.Finding{
		Target:         "old/legacy_helper.go",
		Action:         domain.ActionDelete,
		Confidence:     95,
		ReferenceCount: 0,
		Category:       domain.CategoryDeprecated,
		Risk:           domain.RiskLow,
	}

	tests := []struct {
		name    string
		finding domain.Finding
		policy  domain.ApprovalPolicy
		want    bool
	}{
		{"none approves nothing", safe, domain.PolicyNone, false},
		{"low approves safe deprecated", safe, domain.PolicyLow, true},
		{
			"low rejects referenced file",
			func() domain.Finding { f := safe; f.ReferenceCount = 1; return f }(),
			domain.PolicyLow, false,
		},
		{
			"low rejects borderline confidence",
			func() domain.Finding { f := safe; f.Confidence = 89; return f }(),
			domain.PolicyLow, false,
		},
		{
			"low rejects code category",
			func() domain.Finding { f := safe; f.Category = domain.CategoryCode; return f }(),
			domain.PolicyLow, false,
		},
		{
			"medium approves medium risk with refs",
			domain.Finding{Confidence: 82, ReferenceCount: 2, Risk: domain.RiskMedium, Category: domain.CategoryCode},
			domain.PolicyMedium, true,
		},
		{
			"medium rejects core",
			domain.Finding{Confidence: 95, ReferenceCount: 0, Risk: domain.RiskMedium, IsCore: true},
			domain.PolicyMedium, false,
		},
		{
			"medium rejects high risk",
			domain.Finding{Confidence: 95, ReferenceCount: 0, Risk: domain.RiskHigh},
			domain.PolicyMedium, false,
		},
		{
			"medium rejects three references",
			domain.Finding{Confidence: 95, ReferenceCount: 3, Risk: domain.RiskLow},
			domain.PolicyMedium, false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.AutoApproved(tt.finding, tt.policy))
		})
	}
}
