package report

import (
	"bytes"
	"fmt"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/pkg/errors"

	"retailpulse/rfm"
)

const (
	profileSheet = "Profiles"
	statsSheet   = "Segment Statistics"
)

var profileHeader = []interface{}{
	"Customer ID", "Recency", "Frequency", "Monetary", "Median Purchase Days",
	"Churn Ratio", "Churn Label", "Monetary Log", "Cluster", "Segment",
}

var statsHeader = []interface{}{
	"Segment", "High Risk", "Medium Risk", "At Risk Ratio", "At Risk Monetary",
}

// BuildProfilesWorkbook writes profiles and segment rows into a two
// sheet xlsx workbook, ready to hand to a FileManager.
func BuildProfilesWorkbook(profiles []rfm.CustomerProfile, stats []rfm.SegmentStatistic) (*bytes.Buffer, error) {
	file := excelize.NewFile()
	file.SetSheetName(file.GetSheetName(file.GetActiveSheetIndex()), profileSheet)
	file.NewSheet(statsSheet)

	if err := file.SetSheetRow(profileSheet, "A1", &profileHeader); err != nil {
		return nil, errors.Wrap(err, "failed to write profile header")
	}
	for i := range profiles {
		row := profileRow(&profiles[i])
		axis := fmt.Sprintf("A%d", i+2)
		if err := file.SetSheetRow(profileSheet, axis, &row); err != nil {
			return nil, errors.Wrapf(err, "failed to write profile row %d", i+2)
		}
	}

	if err := file.SetSheetRow(statsSheet, "A1", &statsHeader); err != nil {
		return nil, errors.Wrap(err, "failed to write stats header")
	}
	for i := range stats {
		row := statsRow(&stats[i])
		axis := fmt.Sprintf("A%d", i+2)
		if err := file.SetSheetRow(statsSheet, axis, &row); err != nil {
			return nil, errors.Wrapf(err, "failed to write stats row %d", i+2)
		}
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize workbook")
	}
	return buffer, nil
}

func profileRow(profile *rfm.CustomerProfile) []interface{} {
	var churnRatio interface{}
	if profile.ChurnRatio != nil {
		churnRatio = *profile.ChurnRatio
	}
	var churnLabel interface{}
	if profile.ChurnLabel != nil {
		churnLabel = *profile.ChurnLabel
	}

	return []interface{}{
		profile.CustomerID,
		profile.Recency,
		profile.Frequency,
		profile.Monetary,
		profile.MedianPurchaseDays,
		churnRatio,
		churnLabel,
		profile.MonetaryLog,
		profile.ClusterAssignment,
		profile.Segment,
	}
}

func statsRow(row *rfm.SegmentStatistic) []interface{} {
	return []interface{}{
		row.Segment,
		row.HighRiskCount,
		row.MediumRiskCount,
		row.MedHighRatio,
		row.MedHighMonetarySum,
	}
}
