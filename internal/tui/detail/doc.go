// Package detail renders a Pokémon as a terminal card.
//
// The card shows the zero-padded id and display name, an image line, height in
// metres and weight in kilograms, one coloured badge per type, the abilities,
// and a bar per base stat scaled against MaxStat. Rendering is pure: the same
// Pokémon and width always give the same string, so the search screen and the
// `lookup --output card` command share it.
package detail
