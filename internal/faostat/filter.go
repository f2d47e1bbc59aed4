package faostat

// Filter returns the records whose Area equals area exactly. The match is
// case-sensitive and byte-wise, so "Côte d'Ivoire" only matches the same
// composed spelling. No match gives an empty result.
func Filter(records []Record, area string) []Record {
	var out []Record
	for _, r := range records {
		if r.Area == area {
			out = append(out, r)
		}
	}
	return out
}

// Areas lists the distinct area names in the order they first appear.
func Areas(records []Record) []string {
	seen := make(map[string]bool)
	var areas []string
	for _, r := range records {
		if !seen[r.Area] {
			seen[r.Area] = true
			areas = append(areas, r.Area)
		}
	}
	return areas
}
