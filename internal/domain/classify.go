package domain

// Classify computes the risk level for a finding from its immutable inputs.
// Pure and deterministic; ties resolve toward the higher risk.
//
// Rules, in order:
//  1. base risk from confidence: >=90 LOW, 80-89 MEDIUM, <80 HIGH
//  2. more than 5 inbound references escalates to HIGH
//  3. zero references with confidence >=90 demotes to LOW
//  4. core files never classify below MEDIUM
//  5. deprecated/test/archive files cap at MEDIUM, except rule 2 still wins
func Classify(confidence, referenceCount int, category Category, isCore bool) Risk {
	var risk Risk
	switch {
	case confidence >= 90:
		risk = RiskLow
	case confidence >= 80:
		risk = RiskMedium
	default:
		risk = RiskHigh
	}

	escalated := referenceCount > 5
	if escalated {
		risk = RiskHigh
	}

	if referenceCount == 0 && confidence >= 90 {
		risk = RiskLow
	}

	if isCore && risk < RiskMedium {
		risk = RiskMedium
	}

	if !escalated && risk == RiskHigh {
		switch category {
		case CategoryDeprecated, CategoryTest, CategoryArchive:
			risk = RiskMedium
		}
	}

	return risk
}

// Reclassify recomputes and stores the risk of every finding in place.
func Reclassify(findings []Finding) {
	for i := range findings {
		f := &findings[i]
		f.Risk = Classify(f.Confidence, f.ReferenceCount, f.Category, f.IsCore)
	}
}
