package cart

// Normalize collapses a raw item list into at most one line per product id.
// Invalid lines (product id <= 0 or quantity < 1) are dropped, quantities of
// duplicate lines are summed, and the most recently supplied non-empty
// display field wins. Output keeps the first-seen order of product ids.
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(items []Item) []Item {
	out := make([]Item, 0, len(items))
	index := make(map[int64]int, len(items))
	for _, it := range items {
		if it.ProductID <= 0 || it.Quantity < 1 {
			continue
		}
		i, seen := index[it.ProductID]
		if !seen {
			index[it.ProductID] = len(out)
			out = append(out, it)
			continue
		}
		out[i].Quantity += it.Quantity
		if it.Name != "" {
			out[i].Name = it.Name
		}
		if it.Price != "" {
			out[i].Price = it.Price
		}
		if it.Image != "" {
			out[i].Image = it.Image
		}
	}
	return out
}
