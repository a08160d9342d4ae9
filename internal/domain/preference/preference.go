package preference

import "sort"

// Weights maps a tag to the number of times it was liked.
type Weights map[string]int

// Top returns up to n tags with the highest weight, ties broken by tag name.
// Tags with a non-positive weight are ignored.
func (w Weights) Top(n int) []string {
	if n <= 0 || len(w) == 0 {
		return nil
	}

	type entry struct {
		tag    string
		weight int
	}
	entries := make([]entry, 0, len(w))
	for tag, weight := range w {
		if weight <= 0 {
			continue
		}
		entries = append(entries, entry{tag: tag, weight: weight})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].weight != entries[j].weight {
			return entries[i].weight > entries[j].weight
		}
		return entries[i].tag < entries[j].tag
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.tag
	}
	return out
}

// Clone returns an independent copy.
func (w Weights) Clone() Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}
