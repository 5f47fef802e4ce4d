package catalog

import "sort"

// Criteria carries canonical tokens; empty fields are unconstrained.
type Criteria struct {
	Family    Family
	Standard  string
	Grade     string
	Dimension string
}

func (c Criteria) full() bool {
	return c.Family != "" && c.Standard != "" && c.Grade != "" && c.Dimension != ""
}

// Index is a read-only lookup over the product catalog, keyed by the
// field combinations the matcher relaxes through. Built once per catalog
// snapshot; queries never scan the whole catalog.
type Index struct {
	exact    map[string][]Product // family|standard|grade|dimension
	famDim   map[string][]Product // family|dimension
	famGrade map[string][]Product // family|grade
	byFamily map[Family][]Product
	size     int
}

func sep(parts ...string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "\x1f"
		}
		out += p
	}
	return out
}

func BuildIndex(products []Product) *Index {
	idx := &Index{
		exact:    make(map[string][]Product),
		famDim:   make(map[string][]Product),
		famGrade: make(map[string][]Product),
		byFamily: make(map[Family][]Product),
	}
	for _, p := range products {
		if p.Family == "" {
			continue
		}
		idx.size++
		f := string(p.Family)
		if p.Standard != "" && p.Grade != "" && p.Dimension != "" {
			k := sep(f, p.Standard, p.Grade, p.Dimension)
			idx.exact[k] = append(idx.exact[k], p)
		}
		if p.Dimension != "" {
			k := sep(f, p.Dimension)
			idx.famDim[k] = append(idx.famDim[k], p)
		}
		if p.Grade != "" {
			k := sep(f, p.Grade)
			idx.famGrade[k] = append(idx.famGrade[k], p)
		}
		idx.byFamily[p.Family] = append(idx.byFamily[p.Family], p)
	}
	// stable candidate order regardless of input order
	for k := range idx.exact {
		sortBySlug(idx.exact[k])
	}
	for k := range idx.famDim {
		sortBySlug(idx.famDim[k])
	}
	for k := range idx.famGrade {
		sortBySlug(idx.famGrade[k])
	}
	for k := range idx.byFamily {
		sortBySlug(idx.byFamily[k])
	}
	return idx
}

func sortBySlug(ps []Product) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Slug < ps[j].Slug })
}

func (idx *Index) Size() int { return idx.size }

// Exact returns products matching all four fields.
func (idx *Index) Exact(c Criteria) []Product {
	if !c.full() {
		return nil
	}
	return idx.exact[sep(string(c.Family), c.Standard, c.Grade, c.Dimension)]
}

func (idx *Index) FamilyDimension(f Family, dim string) []Product {
	if f == "" || dim == "" {
		return nil
	}
	return idx.famDim[sep(string(f), dim)]
}

func (idx *Index) FamilyGrade(f Family, grade string) []Product {
	if f == "" || grade == "" {
		return nil
	}
	return idx.famGrade[sep(string(f), grade)]
}

func (idx *Index) Family(f Family) []Product {
	return idx.byFamily[f]
}

// FindCandidates returns products satisfying the criteria, most specific
// tier first, deduplicated. An empty result is a valid outcome.
func (idx *Index) FindCandidates(c Criteria) []Product {
	var out []Product
	seen := make(map[string]struct{})
	add := func(ps []Product) {
		for _, p := range ps {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			out = append(out, p)
		}
	}
	add(idx.Exact(c))
	add(idx.FamilyDimension(c.Family, c.Dimension))
	add(idx.FamilyGrade(c.Family, c.Grade))
	add(idx.Family(c.Family))
	return out
}
