// Package report renders a profiling run into shareable artifacts:
// chart and table urls, an xlsx workbook and the csv frames the job
// archives.
package report

import (
	"github.com/pkg/errors"

	"retailpulse/quickchart"
	"retailpulse/rfm"
)

const (
	colorHighRisk   = "rgb(220, 53, 69)"
	colorMediumRisk = "rgb(255, 193, 7)"
)

// GetChurnRiskChartURL returns a rendered bar chart of at risk
// customers per segment. The Total row is left out, it would dwarf the
// segment bars.
func GetChurnRiskChartURL(stats []rfm.SegmentStatistic) (string, error) {
	labels := make([]interface{}, 0, len(stats))
	highRisk := make([]interface{}, 0, len(stats))
	mediumRisk := make([]interface{}, 0, len(stats))

	for _, row := range stats {
		if row.Segment == rfm.SegmentTotalRow {
			continue
		}
		labels = append(labels, row.Segment)
		highRisk = append(highRisk, row.HighRiskCount)
		mediumRisk = append(mediumRisk, row.MediumRiskCount)
	}

	if len(labels) == 0 {
		return "", errors.New("no segment rows to chart")
	}

	config := quickchart.ChartConfig{
		Type: "bar",
		Data: quickchart.ChartData{
			Labels: labels,
			DataSets: []quickchart.Dataset{
				{
					Label:           "High Risk",
					Data:            highRisk,
					BackgroundColor: []string{colorHighRisk},
				},
				{
					Label:           "Medium Risk",
					Data:            mediumRisk,
					BackgroundColor: []string{colorMediumRisk},
				},
			},
		},
	}

	url, err := quickchart.GetChartImageUrlForConfig(config)
	if err != nil {
		return "", errors.Wrap(err, "failed to build churn risk chart")
	}
	return url, nil
}

// GetSegmentStatisticsTableURL returns a rendered table of the full
// stats rows, Total included.
func GetSegmentStatisticsTableURL(stats []rfm.SegmentStatistic) (string, error) {
	if len(stats) == 0 {
		return "", errors.New("no segment rows to tabulate")
	}

	dataSource := make([]interface{}, 0, len(stats))
	for _, row := range stats {
		dataSource = append(dataSource, row)
	}

	config := quickchart.TableConfig{
		Title: "Segment Churn Risk",
		Columns: []quickchart.Column{
			{Width: 280, Title: "Segment", DataIndex: "segment"},
			{Width: 100, Title: "High Risk", DataIndex: "high_risk_count"},
			{Width: 100, Title: "Medium Risk", DataIndex: "medium_risk_count"},
			{Width: 120, Title: "At Risk Ratio", DataIndex: "med_high_ratio"},
			{Width: 160, Title: "At Risk Monetary", DataIndex: "med_high_monetary_sum"},
		},
		DataSource: dataSource,
	}

	return quickchart.GetTableURLfromTableConfig(config)
}
