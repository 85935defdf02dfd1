package export

import (
	"encoding/json"
	"io"

	"github.com/randocore/randocore/pkg/rando"
)

// PlacementRecord is one flattened, JSON-serializable placement: an
// item's name and the location it landed on, with the stage/group
// indices it came from.
type PlacementRecord struct {
	Stage    int    `json:"stage"`
	Group    int    `json:"group"`
	Item     string `json:"item"`
	Location string `json:"location"`
}

// Flatten converts a RunResult's nested [stage][group][]RandoPlacement
// shape into a flat, ordered slice of PlacementRecord.
func Flatten(result *rando.RunResult) []PlacementRecord {
	var records []PlacementRecord
	for si, groups := range result.StagedPlacements {
		for gi, placements := range groups {
			for _, p := range placements {
				records = append(records, PlacementRecord{
					Stage:    si,
					Group:    gi,
					Item:     p.Item.Name(),
					Location: p.Location.Name(),
				})
			}
		}
	}
	return records
}

// WriteJSON writes result's flattened placements to w as indented JSON.
func WriteJSON(w io.Writer, result *rando.RunResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Flatten(result))
}

// ReadJSON reads a placement record list previously written by
// WriteJSON, for `randocore validate`'s replay path.
func ReadJSON(r io.Reader) ([]PlacementRecord, error) {
	var records []PlacementRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}
