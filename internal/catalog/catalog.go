// Package catalog holds the static definition tables the engine is built
// from: specializations, geographic advantages, and infrastructure bases.
// A Catalog is constructed once and read-only afterwards.
package catalog

// Catalog bundles all definition tables behind id lookups.
type Catalog struct {
	specializations map[string]*Specialization
	advantages      map[string]*GeographicAdvantage

	// Stable iteration orders for listings.
	specOrder      []string
	advantageOrder []string
}

// New builds the default catalog.
func New() *Catalog {
	c := &Catalog{
		specializations: make(map[string]*Specialization),
		advantages:      make(map[string]*GeographicAdvantage),
	}
	for i := range defaultSpecializations {
		s := &defaultSpecializations[i]
		c.specializations[s.ID] = s
		c.specOrder = append(c.specOrder, s.ID)
	}
	for i := range defaultAdvantages {
		a := &defaultAdvantages[i]
		c.advantages[a.ID] = a
		c.advantageOrder = append(c.advantageOrder, a.ID)
	}
	return c
}

// Specialization returns the definition for id, or nil.
func (c *Catalog) Specialization(id string) *Specialization {
	return c.specializations[id]
}

// Specializations lists all definitions in declaration order.
func (c *Catalog) Specializations() []*Specialization {
	out := make([]*Specialization, 0, len(c.specOrder))
	for _, id := range c.specOrder {
		out = append(out, c.specializations[id])
	}
	return out
}

// Advantage returns the geographic advantage for id, or nil.
func (c *Catalog) Advantage(id string) *GeographicAdvantage {
	return c.advantages[id]
}

// Advantages lists all geographic advantages in declaration order.
func (c *Catalog) Advantages() []*GeographicAdvantage {
	out := make([]*GeographicAdvantage, 0, len(c.advantageOrder))
	for _, id := range c.advantageOrder {
		out = append(out, c.advantages[id])
	}
	return out
}
