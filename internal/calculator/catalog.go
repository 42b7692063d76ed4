// Package calculator implements the inverter and solar load worksheets.
package calculator

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownMode indicates a calculator mode outside Modes.
	ErrUnknownMode = errors.New("calculator: unknown mode")
	// ErrUnknownRoom indicates a room id absent from the mode's presets.
	ErrUnknownRoom = errors.New("calculator: unknown room")
)

// Mode selects a calculator and its preset set.
type Mode string

// Supported calculator modes.
const (
	ModeInverter Mode = "inverter"
	ModeSolar    Mode = "solar"
)

// Modes lists the calculators in menu order.
var Modes = []Mode{ModeInverter, ModeSolar}

// ParseMode validates a mode taken from a URL.
func ParseMode(raw string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == raw {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, raw)
}

// Title is the page heading of the mode.
func (m Mode) Title() string {
	if m == ModeSolar {
		return "Solar Panel Calculator"
	}
	return "Inverter Load Calculator"
}

// TotalLabel names the aggregate the mode reports.
func (m Mode) TotalLabel() string {
	if m == ModeSolar {
		return "Total Load"
	}
	return "Total Output"
}

//go:embed presets.yaml
var presetsYAML []byte

// Catalog holds the room presets of every mode.
type Catalog struct {
	rooms map[Mode][]RoomType
}

// LoadCatalog parses the embedded presets.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(presetsYAML)
}

// ParseCatalog parses presets from YAML keyed by mode.
func ParseCatalog(data []byte) (*Catalog, error) {
	var raw map[Mode][]RoomType
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("calculator: parse presets: %w", err)
	}
	for _, mode := range Modes {
		rooms := raw[mode]
		if len(rooms) == 0 {
			return nil, fmt.Errorf("calculator: no presets for %s", mode)
		}
		for i := range rooms {
			for j := range rooms[i].Appliances {
				rooms[i].Appliances[j] = rooms[i].Appliances[j].normalize()
			}
		}
	}
	return &Catalog{rooms: raw}, nil
}

// Rooms returns copies of the presets of mode.
func (c *Catalog) Rooms(mode Mode) []RoomType {
	rooms := c.rooms[mode]
	out := make([]RoomType, len(rooms))
	for i, room := range rooms {
		out[i] = room.clone()
	}
	return out
}

// Room returns a copy of one preset.
func (c *Catalog) Room(mode Mode, id string) (RoomType, error) {
	for _, room := range c.rooms[mode] {
		if room.ID == id {
			return room.clone(), nil
		}
	}
	return RoomType{}, fmt.Errorf("%w: %s/%s", ErrUnknownRoom, mode, id)
}

// DefaultRoom is the first preset of mode.
func (c *Catalog) DefaultRoom(mode Mode) (RoomType, error) {
	rooms := c.rooms[mode]
	if len(rooms) == 0 {
		return RoomType{}, fmt.Errorf("%w: %s", ErrUnknownMode, mode)
	}
	return rooms[0].clone(), nil
}
