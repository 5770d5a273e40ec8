package filter

import (
	"strconv"

	"github.com/hotelhub/hotel-api/internal/core/domain"
)

// MaxCompared is the largest number of rooms shown side by side.
const MaxCompared = 4

// RoomFeatures is one column of the comparison matrix.
type RoomFeatures struct {
	Name        string
	SizeM2      int
	BedType     string
	View        string
	Wifi        bool
	Minibar     bool
	Balcony     bool
	Jacuzzi     bool
	RoomService bool
}

// ComparisonTable is the hand-authored feature sheet keyed by room id.
var ComparisonTable = map[string]RoomFeatures{
	"r1": {Name: "Habitación Estándar", SizeM2: 22, BedType: "Queen", View: "Ciudad", Wifi: true, RoomService: true},
	"r2": {Name: "Habitación Deluxe", SizeM2: 30, BedType: "King", View: "Jardín", Wifi: true, Minibar: true, RoomService: true},
	"r3": {Name: "Suite Junior", SizeM2: 45, BedType: "King", View: "Mar", Wifi: true, Minibar: true, Balcony: true, RoomService: true},
	"r4": {Name: "Suite Familiar", SizeM2: 60, BedType: "2 Queen", View: "Piscina", Wifi: true, Minibar: true, Balcony: true, RoomService: true},
	"r5": {Name: "Suite Presidencial", SizeM2: 110, BedType: "King", View: "Mar", Wifi: true, Minibar: true, Balcony: true, Jacuzzi: true, RoomService: true},
	"r6": {Name: "Habitación Individual", SizeM2: 16, BedType: "Individual", View: "Patio", Wifi: true},
}

// Selection is the ordered set of rooms chosen for comparison, capped at MaxCompared.
type Selection struct {
	ids []string
}

// NewSelection builds a selection from ids, rejecting the first id that
// would exceed the cap. Duplicates are ignored.
func NewSelection(ids ...string) (*Selection, error) {
	s := &Selection{}
	for _, id := range ids {
		if err := s.Add(id); err != nil {
			return s, err
		}
	}
	return s, nil
}

// Add appends id. Adding an id already selected is a no-op; adding a new id
// while the selection is full returns ErrComparisonFull and changes nothing.
func (s *Selection) Add(id string) error {
	if s.Contains(id) {
		return nil
	}
	if len(s.ids) >= MaxCompared {
		return domain.ErrComparisonFull
	}
	s.ids = append(s.ids, id)
	return nil
}

// Remove drops id if present.
func (s *Selection) Remove(id string) {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
}

func (s *Selection) Contains(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// IDs returns a copy of the selected ids in selection order.
func (s *Selection) IDs() []string {
	return append([]string(nil), s.ids...)
}

func (s *Selection) Len() int { return len(s.ids) }

// MatrixRow is one feature across every selected room.
type MatrixRow struct {
	Feature string   `json:"feature"`
	Values  []string `json:"values"`
}

// Matrix is the side-by-side comparison view.
type Matrix struct {
	RoomIDs []string    `json:"room_ids"`
	Rows    []MatrixRow `json:"rows"`
}

var featureRows = []struct {
	label string
	value func(RoomFeatures) string
}{
	{"name", func(f RoomFeatures) string { return f.Name }},
	{"size_m2", func(f RoomFeatures) string { return strconv.Itoa(f.SizeM2) }},
	{"bed_type", func(f RoomFeatures) string { return f.BedType }},
	{"view", func(f RoomFeatures) string { return f.View }},
	{"wifi", func(f RoomFeatures) string { return yesNo(f.Wifi) }},
	{"minibar", func(f RoomFeatures) string { return yesNo(f.Minibar) }},
	{"balcony", func(f RoomFeatures) string { return yesNo(f.Balcony) }},
	{"jacuzzi", func(f RoomFeatures) string { return yesNo(f.Jacuzzi) }},
	{"room_service", func(f RoomFeatures) string { return yesNo(f.RoomService) }},
}

// Compare renders the matrix for the selection against table. Ids missing
// from table produce blank cells.
func Compare(sel *Selection, table map[string]RoomFeatures) Matrix {
	ids := sel.IDs()
	m := Matrix{RoomIDs: ids, Rows: make([]MatrixRow, 0, len(featureRows))}
	for _, fr := range featureRows {
		row := MatrixRow{Feature: fr.label, Values: make([]string, len(ids))}
		for i, id := range ids {
			if f, ok := table[id]; ok {
				row.Values[i] = fr.value(f)
			}
		}
		m.Rows = append(m.Rows, row)
	}
	return m
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
