package stats

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type StatsRenderer interface {
	RenderReport(report WeeklyReport) (string, error)
}

type CsvStatsRendererImpl struct {
}

func NewCsvStatsRenderer() *CsvStatsRendererImpl {
	return &CsvStatsRendererImpl{}
}

// RenderReport renders the daily breakdown as CSV: a header, one row per day
// of the window, and a closing total row.
func (t *CsvStatsRendererImpl) RenderReport(report WeeklyReport) (string, error) {
	data := make([][]string, 0, len(report.Days)+2)
	data = append(data, []string{"Date", "Minutes"})
	for _, day := range report.Days {
		data = append(data, []string{day.Date.Format("02/01/2006"), strconv.Itoa(day.Minutes)})
	}
	data = append(data, []string{"Total", strconv.Itoa(report.WeeklyMinutes)})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
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
