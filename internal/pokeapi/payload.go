package pokeapi

import (
	"fmt"

	"github.com/rshade/pokedex/internal/entities"
)

const officialArtwork = "official-artwork"

// listPayload is the index endpoint response.
type listPayload struct {
	Count   int `json:"count"`
	Results []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"results"`
}

type namedRef struct {
	Name string `json:"name"`
}

type spriteSet struct {
	FrontDefault *string `json:"front_default"`
}

// pokemonPayload mirrors the detail response loosely. Every field may be
// missing; toEntity decides what is acceptable.
type pokemonPayload struct {
	ID     *int    `json:"id"`
	Name   *string `json:"name"`
	Height int     `json:"height"`
	Weight int     `json:"weight"`
	Types  []struct {
		Slot int      `json:"slot"`
		Type namedRef `json:"type"`
	} `json:"types"`
	Abilities []struct {
		Ability  namedRef `json:"ability"`
		IsHidden bool     `json:"is_hidden"`
	} `json:"abilities"`
	Stats []struct {
		BaseStat int      `json:"base_stat"`
		Stat     namedRef `json:"stat"`
	} `json:"stats"`
	Sprites struct {
		FrontDefault *string              `json:"front_default"`
		Other        map[string]spriteSet `json:"other"`
	} `json:"sprites"`
}

// toEntity converts the payload, failing closed when id or name is absent.
func (p *pokemonPayload) toEntity() (*entities.Pokemon, error) {
	if p.ID == nil || p.Name == nil || *p.Name == "" {
		return nil, fmt.Errorf("%w: response has no id or name", ErrNotFound)
	}

	out := &entities.Pokemon{
		ID:        *p.ID,
		Name:      *p.Name,
		Height:    p.Height,
		Weight:    p.Weight,
		Types:     make([]string, 0, len(p.Types)),
		Abilities: make([]string, 0, len(p.Abilities)),
		Stats:     make([]entities.Stat, 0, len(p.Stats)),
		Image:     p.image(),
	}
	for _, t := range p.Types {
		out.Types = append(out.Types, t.Type.Name)
	}
	for _, a := range p.Abilities {
		out.Abilities = append(out.Abilities, a.Ability.Name)
	}
	for _, s := range p.Stats {
		out.Stats = append(out.Stats, entities.Stat{Name: s.Stat.Name, Value: s.BaseStat})
	}
	return out, nil
}

// image picks official artwork, then the default sprite. Empty strings count as absent.
func (p *pokemonPayload) image() *string {
	if art, ok := p.Sprites.Other[officialArtwork]; ok && nonEmpty(art.FrontDefault) {
		v := *art.FrontDefault
		return &v
	}
	if nonEmpty(p.Sprites.FrontDefault) {
		v := *p.Sprites.FrontDefault
		return &v
	}
	return nil
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}
