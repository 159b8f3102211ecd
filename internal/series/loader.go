package series

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"SIPCompare/internal/apperrors"
	"SIPCompare/internal/model"
)

// dateLayouts are tried in order when parsing a record date.
var dateLayouts = []string{
	"01/02/2006", // investing.com export
	"2006-01-02",
	"Jan 2006",
}

// ParseDate parses a dataset date in any of the supported layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, s)
}

// Load builds an ascending PriceSeries from records shipped most-recent-first.
// If every record is dated the result is sorted by date; if none is, the shipped order is reversed.
// raw is never modified.
func Load(symbol string, raw []model.RawRecord) (*model.PriceSeries, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: %w: empty dataset", symbol, apperrors.ErrInvalidData)
	}

	obs := make([]model.PriceObservation, len(raw))
	dated := 0
	for i, r := range raw {
		if !(r.Price > 0) || math.IsInf(r.Price, 1) {
			return nil, fmt.Errorf("%s: %w: price %v at row %d", symbol, apperrors.ErrInvalidData, r.Price, i)
		}
		obs[i].Price = r.Price
		if strings.TrimSpace(r.Date) == "" {
			continue
		}
		d, err := ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", symbol, i, err)
		}
		obs[i].Date = d
		dated++
	}

	switch dated {
	case 0:
		for i, j := 0, len(obs)-1; i < j; i, j = i+1, j-1 {
			obs[i], obs[j] = obs[j], obs[i]
		}
	case len(obs):
		sort.SliceStable(obs, func(i, j int) bool { return obs[i].Date.Before(obs[j].Date) })
		for i := 1; i < len(obs); i++ {
			if obs[i].Date.Equal(obs[i-1].Date) {
				return nil, fmt.Errorf("%s: %w: duplicate date %s", symbol, apperrors.ErrInvalidData, obs[i].Date.Format("2006-01-02"))
			}
		}
	default:
		return nil, fmt.Errorf("%s: %w: %d of %d rows are dated", symbol, apperrors.ErrInvalidData, dated, len(obs))
	}

	return &model.PriceSeries{Symbol: symbol, Observations: obs}, nil
}

// FromPrices builds an undated series from prices already in ascending order.
func FromPrices(symbol string, prices []float64) (*model.PriceSeries, error) {
	raw := make([]model.RawRecord, len(prices))
	for i, p := range prices {
		raw[len(prices)-1-i] = model.RawRecord{Price: p}
	}
	return Load(symbol, raw)
}
