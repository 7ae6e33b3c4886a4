package model

import "time"

// PricePoint is one daily closing price.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// DateKey formats the point's date as the canonical map key.
func (p PricePoint) DateKey() string {
	return p.Date.Format("2006-01-02")
}
