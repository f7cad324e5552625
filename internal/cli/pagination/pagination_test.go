package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr string
	}{
		{name: "defaults", params: NewParams()},
		{name: "offset mode", params: Params{Limit: 10, Offset: 20}},
		{name: "page mode", params: Params{Page: 2, PageSize: 10}},
		{name: "negative limit", params: Params{Limit: -1}, wantErr: "limit cannot be negative"},
		{name: "limit too large", params: Params{Limit: MaxLimit + 1}, wantErr: "limit must be at most"},
		{name: "negative offset", params: Params{Offset: -1}, wantErr: "offset cannot be negative"},
		{name: "negative page", params: Params{Page: -1}, wantErr: "page cannot be negative"},
		{name: "negative page-size", params: Params{PageSize: -1}, wantErr: "page-size cannot be negative"},
		{name: "page-size too large", params: Params{Page: 1, PageSize: MaxPageSize + 1}, wantErr: "page-size must be at most"},
		{name: "mixed modes", params: Params{Page: 1, PageSize: 5, Offset: 10}, wantErr: "mutually exclusive"},
		{name: "page-size alone", params: Params{PageSize: 10}, wantErr: "page must be specified"},
		{name: "page alone", params: Params{Page: 3}, wantErr: "page-size must be specified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApplyToSlice(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g"}

	tests := []struct {
		name   string
		params Params
		want   []string
	}{
		{name: "first page", params: Params{Page: 1, PageSize: 3}, want: []string{"a", "b", "c"}},
		{name: "last partial page", params: Params{Page: 3, PageSize: 3}, want: []string{"g"}},
		{name: "page past end clamps to last page", params: Params{Page: 9, PageSize: 3}, want: []string{"g"}},
		{name: "offset and limit", params: Params{Offset: 2, Limit: 2}, want: []string{"c", "d"}},
		{name: "limit beyond end", params: Params{Offset: 5, Limit: 10}, want: []string{"f", "g"}},
		{name: "offset past end", params: Params{Offset: 20, Limit: 5}, want: []string{}},
		{name: "no limit", params: Params{Offset: 4}, want: []string{"e", "f", "g"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ApplyToSlice(tt.params, items))
		})
	}

	assert.Empty(t, ApplyToSlice(Params{Limit: 5}, []int(nil)))
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		total  int
		want   Meta
	}{
		{
			name:   "page mode middle",
			params: Params{Page: 2, PageSize: 10},
			total:  35,
			want:   Meta{CurrentPage: 2, PageSize: 10, TotalPages: 4, TotalItems: 35, HasPrevious: true, HasNext: true},
		},
		{
			name:   "page past end clamps",
			params: Params{Page: 10, PageSize: 10},
			total:  35,
			want:   Meta{CurrentPage: 4, PageSize: 10, TotalPages: 4, TotalItems: 35, HasPrevious: true},
		},
		{
			name:   "offset mode",
			params: Params{Offset: 20, Limit: 10},
			total:  35,
			want:   Meta{CurrentPage: 3, PageSize: 10, TotalPages: 4, TotalItems: 35, HasPrevious: true, HasNext: true},
		},
		{
			name:   "no limit is a single page",
			params: Params{},
			total:  12,
			want:   Meta{CurrentPage: 1, PageSize: 12, TotalPages: 1, TotalItems: 12},
		},
		{
			name:   "empty",
			params: NewParams(),
			total:  0,
			want:   Meta{CurrentPage: 1, PageSize: DefaultLimit, TotalItems: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMeta(tt.params, tt.total))
		})
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		expr      string
		wantField string
		wantOrder string
		wantErr   error
	}{
		{expr: "", wantField: SortByIndex, wantOrder: SortOrderAsc},
		{expr: "name", wantField: "name", wantOrder: SortOrderAsc},
		{expr: "name:DESC", wantField: "name", wantOrder: SortOrderDesc},
		{expr: " index : asc ", wantField: "index", wantOrder: SortOrderAsc},
		{expr: "name:up", wantErr: ErrInvalidSortOrder},
		{expr: ":desc", wantErr: ErrEmptySortField},
		{expr: "a:b:c", wantErr: ErrInvalidSortFormat},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			field, order, err := ParseSort(tt.expr, SortByIndex)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)
		})
	}
}

func TestSortEntries(t *testing.T) {
	entries := Entries([]string{"charmander", "bulbasaur", "squirtle"})
	require.Equal(t, Entry{Index: 1, Name: "charmander"}, entries[0])

	byName, err := SortEntries(entries, SortByName, SortOrderAsc)
	require.NoError(t, err)
	assert.Equal(t, []string{"bulbasaur", "charmander", "squirtle"}, names(byName))

	byIndexDesc, err := SortEntries(entries, SortByIndex, SortOrderDesc)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 1}, []int{byIndexDesc[0].Index, byIndexDesc[1].Index, byIndexDesc[2].Index})

	assert.Equal(t, "charmander", entries[0].Name, "input is not modified")

	_, err = SortEntries(entries, "weight", SortOrderAsc)
	require.ErrorIs(t, err, ErrInvalidSortField)
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}
