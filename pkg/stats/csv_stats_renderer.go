package stats

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type SummaryRenderer interface {
	RenderSummary(summary Summary) (string, error)
}

type CsvSummaryRendererImpl struct {
}

func NewCsvSummaryRenderer() *CsvSummaryRendererImpl {
	return &CsvSummaryRendererImpl{}
}

func (t *CsvSummaryRendererImpl) RenderSummary(summary Summary) (string, error) {
	data := make([][]string, 0, 6+len(summary.Daily))
	data = append(data,
		[]string{"Metric", "Value"},
		[]string{"Balance", formatAmount(summary.Balance)},
		[]string{"Monthly spend", formatAmount(summary.MonthlySpend)},
		[]string{"Budget status", summary.Budget.String()},
		[]string{"Top category", summary.TopCategory},
		[]string{"Date", "Spent"},
	)
	for _, day := range summary.Daily {
		data = append(data, []string{day.Date, formatAmount(day.Total)})
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
