package model

import "time"

// RawRecord is one dataset row as shipped. Fields other than Date and Price are ignored.
type RawRecord struct {
	Date  string  `json:"Date"`
	Price float64 `json:"Price"`
}

// PriceObservation is the closing price of one instrument for one monthly period.
type PriceObservation struct {
	Date  time.Time
	Price float64
}

// PriceSeries holds observations in strictly ascending order; index 0 is the earliest period.
// A loaded series is never modified and may be shared between calculations.
type PriceSeries struct {
	Symbol       string
	Observations []PriceObservation
}

// Len returns the number of available periods.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Observations)
}

// At returns the observation for period i.
func (s *PriceSeries) At(i int) PriceObservation {
	return s.Observations[i]
}

// Prices returns a fresh copy of the closing prices.
func (s *PriceSeries) Prices() []float64 {
	prices := make([]float64, s.Len())
	for i := range prices {
		prices[i] = s.Observations[i].Price
	}
	return prices
}
