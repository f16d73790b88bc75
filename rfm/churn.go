package rfm

// Churn risk labels ordered by severity.
const (
	ChurnLabelLowRisk    = "Low Risk"
	ChurnLabelMediumRisk = "Medium Risk"
	ChurnLabelHighRisk   = "High Risk"
)

// AssignChurnRisk computes churn ratio and label for every profile in
// place. The ratio is recency over the customer's own median cadence. A
// zero cadence would divide to inf, so ratio and label stay nil there.
func AssignChurnRisk(profiles []CustomerProfile) {
	for i := range profiles {
		if profiles[i].MedianPurchaseDays <= 0 {
			continue
		}

		ratio := float64(profiles[i].Recency) / profiles[i].MedianPurchaseDays
		label := churnLabelForRatio(ratio)
		profiles[i].ChurnRatio = &ratio
		profiles[i].ChurnLabel = &label
	}
}

func churnLabelForRatio(ratio float64) string {
	if ratio <= 1 {
		return ChurnLabelLowRisk
	}
	if ratio < 2 {
		return ChurnLabelMediumRisk
	}
	return ChurnLabelHighRisk
}
