// Package entities holds the domain types shared by the pokedex packages.
package entities

// Stat is a single base stat of a Pokémon, e.g. ("hp", 45).
type Stat struct {
	Name  string `json:"name"  yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

// Pokemon is the normalized detail record built from a PokeAPI response.
// Types, Abilities and Stats keep the order the API returned them in.
type Pokemon struct {
	ID        int      `json:"id"                yaml:"id"`
	Name      string   `json:"name"              yaml:"name"`
	Height    int      `json:"height"            yaml:"height"`
	Weight    int      `json:"weight"            yaml:"weight"`
	Types     []string `json:"types"             yaml:"types"`
	Abilities []string `json:"abilities"         yaml:"abilities"`
	Stats     []Stat   `json:"stats"             yaml:"stats"`
	Image     *string  `json:"image,omitempty"   yaml:"image,omitempty"`
}

// HasImage reports whether an image reference is present.
func (p *Pokemon) HasImage() bool {
	return p != nil && p.Image != nil && *p.Image != ""
}

// HeightMeters converts the API height (decimetres) to metres.
func (p *Pokemon) HeightMeters() float64 {
	return float64(p.Height) / 10
}

// WeightKilograms converts the API weight (hectograms) to kilograms.
func (p *Pokemon) WeightKilograms() float64 {
	return float64(p.Weight) / 10
}

// StatTotal returns the sum of all base stats.
func (p *Pokemon) StatTotal() int {
	total := 0
	for _, s := range p.Stats {
		total += s.Value
	}
	return total
}
