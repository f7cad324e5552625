// Package listview is a virtually scrolled, filterable list for Bubble Tea.
//
// Only the rows inside the viewport (plus a small buffer) are rendered, so the
// catalog browser stays responsive over the full PokeAPI index. Typing narrows
// the list to entries containing the filter text; up/down, pgup/pgdn and
// home/end move the cursor.
package listview
