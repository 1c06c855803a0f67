package core

// CategoryTotal is one line of the category report.
type CategoryTotal struct {
	Category string
	Icon     string
	Count    int
	Subtotal Money
}

// Report aggregates expenses by category. Lines follow the enumeration order;
// labels outside the enumeration (possible after a trusting load) follow in
// first-seen order so that Total always equals the sum of all amounts.
type Report struct {
	Lines []CategoryTotal
	Total Money
}

// BuildReport groups expenses by category.
func BuildReport(expenses []Expense) Report {
	idx := make(map[string]int, len(Categories))
	lines := make([]CategoryTotal, len(Categories))
	for i, c := range Categories {
		idx[c.Label] = i
		lines[i] = CategoryTotal{Category: c.Label, Icon: c.Icon}
	}
	for _, e := range expenses {
		i, ok := idx[e.Category]
		if !ok {
			i = len(lines)
			idx[e.Category] = i
			lines = append(lines, CategoryTotal{Category: e.Category})
		}
		lines[i].Count++
		lines[i].Subtotal = lines[i].Subtotal.Add(e.Amount)
	}

	var r Report
	for _, l := range lines {
		if l.Count == 0 {
			continue
		}
		r.Lines = append(r.Lines, l)
		r.Total = r.Total.Add(l.Subtotal)
	}
	return r
}

// Empty reports whether no category has entries.
func (r Report) Empty() bool {
	return len(r.Lines) == 0
}

// Line returns the report line for a category label.
func (r Report) Line(category string) (CategoryTotal, bool) {
	for _, l := range r.Lines {
		if l.Category == category {
			return l, true
		}
	}
	return CategoryTotal{}, false
}
