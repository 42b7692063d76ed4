package calculator

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrItemNotFound indicates an appliance id absent from the worksheet.
	ErrItemNotFound = errors.New("calculator: appliance not found")
	// ErrInvalidWattage indicates a wattage outside [0, MaxWattage].
	ErrInvalidWattage = errors.New("calculator: wattage out of range")
	// ErrInvalidQuantity indicates a quantity outside [0, MaxQuantity].
	ErrInvalidQuantity = errors.New("calculator: quantity out of range")
)

const (
	// InverterHeadroom is the safety margin applied to the total load.
	InverterHeadroom = 1.2
	// MaxWattage bounds the per-unit wattage of one appliance.
	MaxWattage = 100_000
	// MaxQuantity bounds the unit count of one appliance.
	MaxQuantity = 1_000
)

// ApplianceItem is one worksheet row. TotalWattage is Wattage * Quantity.
type ApplianceItem struct {
	ID           string `yaml:"id" json:"id"`
	Name         string `yaml:"name" json:"name"`
	Wattage      int    `yaml:"wattage" json:"wattage"`
	Quantity     int    `yaml:"quantity" json:"quantity"`
	TotalWattage int    `yaml:"-" json:"total_wattage"`
}

func (a ApplianceItem) normalize() ApplianceItem {
	a.Wattage = clamp(a.Wattage, MaxWattage)
	a.Quantity = clamp(a.Quantity, MaxQuantity)
	a.TotalWattage = a.Wattage * a.Quantity
	return a
}

func clamp(v, limit int) int {
	return max(0, min(v, limit))
}

// RoomType is a named bundle of appliances loaded wholesale.
type RoomType struct {
	ID         string          `yaml:"id" json:"id"`
	Name       string          `yaml:"name" json:"name"`
	Icon       string          `yaml:"icon" json:"icon"`
	Appliances []ApplianceItem `yaml:"appliances" json:"appliances"`
}

func (r RoomType) clone() RoomType {
	r.Appliances = append([]ApplianceItem(nil), r.Appliances...)
	return r
}

// Worksheet is the working appliance list of one calculator.
type Worksheet struct {
	Mode   Mode            `json:"mode"`
	RoomID string          `json:"room_id"`
	Items  []ApplianceItem `json:"items"`
}

// NewWorksheet starts a worksheet from room.
func NewWorksheet(mode Mode, room RoomType) *Worksheet {
	w := &Worksheet{Mode: mode}
	w.SelectRoom(room)
	return w
}

// SelectRoom replaces every item with a fresh copy of the room's appliances.
func (w *Worksheet) SelectRoom(room RoomType) {
	w.RoomID = room.ID
	w.Items = make([]ApplianceItem, len(room.Appliances))
	for i, item := range room.Appliances {
		w.Items[i] = item.normalize()
	}
}

// Increment adds one to the quantity of item id, stopping at MaxQuantity.
func (w *Worksheet) Increment(id string) error {
	return w.update(id, func(item *ApplianceItem) error {
		if item.Quantity < MaxQuantity {
			item.Quantity++
		}
		return nil
	})
}

// Decrement removes one from the quantity of item id, stopping at zero.
func (w *Worksheet) Decrement(id string) error {
	return w.update(id, func(item *ApplianceItem) error {
		if item.Quantity > 0 {
			item.Quantity--
		}
		return nil
	})
}

// SetQuantity sets the unit count of item id.
func (w *Worksheet) SetQuantity(id string, qty int) error {
	if qty < 0 || qty > MaxQuantity {
		return ErrInvalidQuantity
	}
	return w.update(id, func(item *ApplianceItem) error {
		item.Quantity = qty
		return nil
	})
}

// SetWattage changes the per-unit wattage of item id.
func (w *Worksheet) SetWattage(id string, watts int) error {
	if watts < 0 || watts > MaxWattage {
		return ErrInvalidWattage
	}
	return w.update(id, func(item *ApplianceItem) error {
		item.Wattage = watts
		return nil
	})
}

func (w *Worksheet) update(id string, mutate func(*ApplianceItem) error) error {
	for i := range w.Items {
		if w.Items[i].ID != id {
			continue
		}
		if err := mutate(&w.Items[i]); err != nil {
			return err
		}
		w.Items[i].TotalWattage = w.Items[i].Wattage * w.Items[i].Quantity
		return nil
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// TotalLoad sums the row totals.
func (w *Worksheet) TotalLoad() int {
	return TotalLoad(w.Items)
}

// Summary is the aggregate of a worksheet.
type Summary struct {
	TotalLoad      int `json:"total_load"`
	InverterRating int `json:"inverter_rating"`
}

// Summary aggregates the worksheet.
func (w *Worksheet) Summary() Summary {
	return Summarize(w.Items)
}

// TotalLoad sums TotalWattage over items.
func TotalLoad(items []ApplianceItem) int {
	total := 0
	for _, item := range items {
		total += item.TotalWattage
	}
	return total
}

// InverterRating is the recommended inverter size for totalLoad watts.
func InverterRating(totalLoad int) int {
	return int(math.Round(float64(totalLoad) * InverterHeadroom))
}

// Summarize normalizes items and computes their totals. Items are not modified.
func Summarize(items []ApplianceItem) Summary {
	total := 0
	for _, item := range items {
		total += item.normalize().TotalWattage
	}
	return Summary{TotalLoad: total, InverterRating: InverterRating(total)}
}
