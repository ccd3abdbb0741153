package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debloat-dev/debloat/internal/domain"
)

func TestActionRank(t *testing.T) {
	assert.Equal(t, 0, domain.ActionRank(domain.ActionDelete))
	assert.Equal(t, 1, domain.ActionRank(domain.ActionConsolidate))
	assert.Equal(t, 2, domain.ActionRank(domain.ActionArchive))
	assert.Equal(t, 3, domain.ActionRank(domain.ActionRefactor))
	assert.Equal(t, 4, domain.ActionRank(domain.Action("unknown")))
}

func TestRisk_JSON(t *testing.T) {
	type payload struct {
		Risk domain.Risk `json:"risk"`
	}

	data, err := json.Marshal(payload{Risk: domain.RiskMedium})
	require.NoError(t, err)
	assert.JSONEq(t, `{"risk":"MEDIUM"}`, string(data))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"risk":"LOW"}`), &p))
	assert.Equal(t, domain.RiskLow, p.Risk)

	// unrecognized values fall back to the safest interpretation
	require.NoError(t, json.Unmarshal([]byte(`{"risk":"WAT"}`), &p))
	assert.Equal(t, domain.RiskHigh, p.Risk)
}

func TestFinding_PlanRoundTrip(t *testing.T) {
	f := domain.Finding{
		Target:     "docs/setup.md",
		Action:     domain.ActionConsolidate,
		Confidence: 88,
		Risk:       domain.RiskMedium,
		Plan: &domain.ActionPlan{
			Consolidate: &domain.ConsolidatePlan{
				TargetFile: "docs/install.md",
				Dependents: []string{"README.md"},
			},
		},
	}

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var got domain.Finding
	require.NoError(t, json.Unmarshal(data, &got))
	require.NotNil(t, got.Plan)
	require.NotNil(t, got.Plan.Consolidate)
	assert.Equal(t, "docs/install.md", got.Plan.Consolidate.TargetFile)
	assert.Nil(t, got.Plan.Refactor)
	assert.Nil(t, got.Plan.Archive)
}
