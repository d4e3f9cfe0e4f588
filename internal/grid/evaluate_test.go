package grid_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/datagrid/internal/grid"
)

func TestEvaluate_ColumnFilters(t *testing.T) {
	rows := sampleUsers()

	tests := []struct {
		name   string
		filter func(s *grid.FilterState)
		want   []int
	}{
		{
			name:   "no filters",
			filter: func(*grid.FilterState) {},
			want:   []int{1, 2, 3, 4},
		},
		{
			name:   "contains is case-insensitive",
			filter: func(s *grid.FilterState) { s.SetColumn("name", "ALI", grid.MatchContains) },
			want:   []int{1, 3},
		},
		{
			name:   "equals on bool",
			filter: func(s *grid.FilterState) { s.SetColumn("active", true, grid.MatchEquals) },
			want:   []int{1, 3, 4},
		},
		{
			name:   "equals on number",
			filter: func(s *grid.FilterState) { s.SetColumn("id", 2, grid.MatchEquals) },
			want:   []int{2},
		},
		{
			name:   "starts with",
			filter: func(s *grid.FilterState) { s.SetColumn("email", "d", grid.MatchStartsWith) },
			want:   []int{4},
		},
		{
			name:   "ends with",
			filter: func(s *grid.FilterState) { s.SetColumn("email", "corp.io", grid.MatchEndsWith) },
			want:   []int{2, 4},
		},
		{
			name: "columns are ANDed",
			filter: func(s *grid.FilterState) {
				s.SetColumn("email", "corp.io", grid.MatchEndsWith)
				s.SetColumn("team", "platform", grid.MatchEquals)
			},
			want: []int{4},
		},
		{
			name:   "null field never matches",
			filter: func(s *grid.FilterState) { s.SetColumn("team", "l", grid.MatchContains) },
			want:   []int{1, 2, 4},
		},
		{
			name:   "unknown field never matches",
			filter: func(s *grid.FilterState) { s.SetColumn("nickname", "a", grid.MatchContains) },
			want:   []int{},
		},
		{
			name:   "empty value is ignored",
			filter: func(s *grid.FilterState) { s.SetColumn("nickname", "", grid.MatchEquals) },
			want:   []int{1, 2, 3, 4},
		},
		{
			name:   "unknown mode acts as contains",
			filter: func(s *grid.FilterState) { s.SetColumn("name", "jon", grid.MatchMode("fuzzy")) },
			want:   []int{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var state grid.FilterState
			tt.filter(&state)
			got := grid.Evaluate(rows, state, evalOpts())
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestEvaluate_GlobalFilterIsORAcrossFields(t *testing.T) {
	rows := sampleUsers()

	// "ali" hits Alice by name and Carol by surname; "example" hits by email.
	got := grid.Evaluate(rows, grid.FilterState{Global: "ali"}, evalOpts())
	assert.Equal(t, []int{1, 3}, ids(got))

	got = grid.Evaluate(rows, grid.FilterState{Global: "example"}, evalOpts())
	assert.Equal(t, []int{1, 3}, ids(got))

	got = grid.Evaluate(rows, grid.FilterState{Global: "billing"}, evalOpts())
	assert.Equal(t, []int{2}, ids(got))
}

func TestEvaluate_GlobalANDColumns(t *testing.T) {
	var state grid.FilterState
	state.Global = "example"
	state.SetColumn("active", true, grid.MatchEquals)
	state.SetColumn("team", "plat", grid.MatchStartsWith)

	got := grid.Evaluate(sampleUsers(), state, evalOpts())
	assert.Equal(t, []int{1}, ids(got))
}

func TestEvaluate_GlobalFieldsAndMatchMode(t *testing.T) {
	rows := sampleUsers()

	opts := evalOpts()
	opts.GlobalFields = []string{"email"}
	got := grid.Evaluate(rows, grid.FilterState{Global: "alice"}, opts)
	assert.Equal(t, []int{1}, ids(got), "only email is searched")

	got = grid.Evaluate(rows, grid.FilterState{Global: "alison"}, opts)
	assert.Empty(t, got)

	opts.GlobalMatchMode = grid.MatchStartsWith
	got = grid.Evaluate(rows, grid.FilterState{Global: "example"}, opts)
	assert.Empty(t, got)
	got = grid.Evaluate(rows, grid.FilterState{Global: "bob@"}, opts)
	assert.Equal(t, []int{2}, ids(got))
}

func TestEvaluate_RowFieldsFallback(t *testing.T) {
	rows := []map[string]any{
		{"name": "alpha", "tag": "x"},
		{"name": "beta", "tag": "alpha-ish"},
		{"name": "gamma"},
	}
	get := func(r map[string]any, f string) (any, bool) {
		v, ok := r[f]
		return v, ok
	}
	opts := grid.EvalOptions[map[string]any]{
		Accessor: get,
		RowFields: func(r map[string]any) []string {
			keys := make([]string, 0, len(r))
			for k := range r {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			return keys
		},
	}

	got := grid.Evaluate(rows, grid.FilterState{Global: "alpha"}, opts)
	assert.Len(t, got, 2)
	assert.Equal(t, "alpha", got[0]["name"])
	assert.Equal(t, "beta", got[1]["name"])
}

func TestEvaluate_EmptyFilterIdentity(t *testing.T) {
	rows := sampleUsers()
	got := grid.Evaluate(rows, grid.FilterState{}, evalOpts())
	assert.Equal(t, rows, got)

	got = grid.Evaluate(rows, grid.FilterState{Global: ""}, evalOpts())
	assert.Equal(t, rows, got)
}

func TestEvaluate_EmptyRows(t *testing.T) {
	got := grid.Evaluate(nil, grid.FilterState{Global: "x"}, evalOpts())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEvaluate_NilAccessorMatchesOnlyWithoutFilters(t *testing.T) {
	rows := sampleUsers()
	opts := grid.EvalOptions[user]{Columns: userColumns}

	assert.Len(t, grid.Evaluate(rows, grid.FilterState{}, opts), 4)
	assert.Empty(t, grid.Evaluate(rows, grid.FilterState{Global: "a"}, opts))
}

func TestEvaluate_Idempotent(t *testing.T) {
	var once, twice grid.FilterState
	once.SetColumn("email", "example", grid.MatchContains)
	twice.SetColumn("email", "example", grid.MatchContains)
	twice.SetColumn("email", "example", grid.MatchContains)

	assert.Equal(t,
		grid.Evaluate(sampleUsers(), once, evalOpts()),
		grid.Evaluate(sampleUsers(), twice, evalOpts()),
	)
}
