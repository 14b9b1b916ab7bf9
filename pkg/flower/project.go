package flower

import "slices"

// ProjectedRecord is a record reduced to what the petals ring draws.
type ProjectedRecord struct {
	Label string        `json:"label" toml:"label"`
	Types []LegendEntry `json:"types" toml:"types"`
}

// TypeNames returns the types of the record in canonical order.
func (p ProjectedRecord) TypeNames() []string {
	names := make([]string, len(p.Types))
	for i, e := range p.Types {
		names[i] = e.Type
	}
	return names
}

// ProjectRecords maps each record to its label and the legend entries whose
// type the record belongs to. Entries keep the legend order, not the order the
// accessor returned them in. A nil type list projects to no entries.
func ProjectRecords[R any](records []R, acc Accessor[R], legend []LegendEntry) []ProjectedRecord {
	out := make([]ProjectedRecord, len(records))
	for i, r := range records {
		types := acc.Types(r)
		entries := []LegendEntry{}
		for _, e := range legend {
			if slices.Contains(types, e.Type) {
				entries = append(entries, e)
			}
		}
		out[i] = ProjectedRecord{Label: acc.Label(r), Types: entries}
	}
	return out
}
