package domain

import (
	"encoding/json"
	"fmt"
)

// Month indexes the twelve calendar months, 0 = Ocak.
type Month int

const MonthCount = 12

var monthNames = [MonthCount]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// Name returns the canonical Turkish month name.
func (m Month) Name() string {
	if m < 0 || int(m) >= MonthCount {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return monthNames[m]
}

// MonthNames returns the canonical names in calendar order.
func MonthNames() []string {
	out := make([]string, MonthCount)
	copy(out, monthNames[:])
	return out
}

// MonthlySeries holds one value per canonical month. It is a value type, so a copy
// never aliases the series it was taken from.
type MonthlySeries [MonthCount]float64

func (s MonthlySeries) Get(m Month) float64 {
	return s[m]
}

func (s MonthlySeries) Total() float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return total
}

// MonthlyPoint is one month of a series as exposed to report consumers.
type MonthlyPoint struct {
	Month string  `json:"month"`
	Units float64 `json:"units"`
}

// Points returns the series in calendar order.
func (s MonthlySeries) Points() []MonthlyPoint {
	out := make([]MonthlyPoint, MonthCount)
	for i, v := range s {
		out[i] = MonthlyPoint{Month: monthNames[i], Units: v}
	}
	return out
}

func (s MonthlySeries) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Points())
}

func (s *MonthlySeries) UnmarshalJSON(data []byte) error {
	var points []MonthlyPoint
	if err := json.Unmarshal(data, &points); err != nil {
		return err
	}
	var out MonthlySeries
	for _, p := range points {
		for i, name := range monthNames {
			if name == p.Month {
				out[i] = p.Units
			}
		}
	}
	*s = out
	return nil
}
