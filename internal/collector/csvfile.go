package collector

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"SplitSentinel/internal/model"
)

// CSVFetcher implements Fetcher over a local date,close CSV file, used for
// historical backtests without network access.
type CSVFetcher struct {
	Path string
}

func NewCSVFetcher(path string) *CSVFetcher { return &CSVFetcher{Path: path} }

func (f *CSVFetcher) Name() string { return "csv:" + f.Path }

// FetchDailyCloses loads the file and returns the last days points.
func (f *CSVFetcher) FetchDailyCloses(_ string, days int) ([]model.PricePoint, error) {
	points, err := LoadCSV(f.Path)
	if err != nil {
		return nil, err
	}
	if days > 0 && len(points) > days {
		points = points[len(points)-days:]
	}
	return points, nil
}

// LoadCSV reads a date,close series. A header row is skipped when the first
// field does not parse as a date.
func LoadCSV(path string) ([]model.PricePoint, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	points := make([]model.PricePoint, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d: want date,close got %d fields", i+1, len(row))
		}
		date, err := time.Parse("2006-01-02", strings.TrimSpace(row[0]))
		if err != nil {
			if i == 0 {
				continue // header
			}
			return nil, fmt.Errorf("row %d: parse date %q: %w", i+1, row[0], err)
		}
		close, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse close %q: %w", i+1, row[1], err)
		}
		points = append(points, model.PricePoint{Date: date, Close: close})
	}

	if err := ValidateSeries(points); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return points, nil
}
