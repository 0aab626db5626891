package application

import "github.com/rios0rios0/depdoctor/domain"

// Score deductions per finding.
const (
	deductionCriticalMissing = 15
	deductionOtherMissing    = 5
	deductionOutdated        = 2
	deductionConflict        = 10
)

// CalculateHealthScore derives a 0-100 health score from a report's raw
// findings. It is a pure function of the counts: per-item linear deduction
// with a single clamp at the end, so large repositories can saturate at 0.
func CalculateHealthScore(report *domain.DependencyReport) int {
	score := 100

	for _, pkg := range report.Missing {
		if pkg.Severity == domain.SeverityCritical {
			score -= deductionCriticalMissing
		} else {
			score -= deductionOtherMissing
		}
	}

	score -= len(report.Outdated) * deductionOutdated
	score -= len(report.Conflicts) * deductionConflict

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
