package grid_test

import (
	"fmt"

	"github.com/rshade/datagrid/internal/grid"
)

type user struct {
	ID     int
	Name   string
	Email  string
	Active bool
	Team   *string
}

func userField(u user, field string) (any, bool) {
	switch field {
	case "id":
		return u.ID, true
	case "name":
		return u.Name, true
	case "email":
		return u.Email, true
	case "active":
		return u.Active, true
	case "team":
		if u.Team == nil {
			return nil, true
		}
		return *u.Team, true
	default:
		return nil, false
	}
}

func strptr(s string) *string { return &s }

var userColumns = []grid.Column{
	{Field: "id", Header: "ID"},
	{Field: "name", Header: "Name", Filterable: true},
	{Field: "email", Header: "Email", Filterable: true},
	{Field: "team", Header: "Team", Filterable: true},
}

func sampleUsers() []user {
	return []user{
		{ID: 1, Name: "Alice Smith", Email: "alice@example.com", Active: true, Team: strptr("Platform")},
		{ID: 2, Name: "Bob Jones", Email: "bob@corp.io", Active: false, Team: strptr("Billing")},
		{ID: 3, Name: "Carol Alison", Email: "carol@example.com", Active: true},
		{ID: 4, Name: "Dave Brown", Email: "dave@corp.io", Active: true, Team: strptr("Platform")},
	}
}

// numberedUsers returns n users; the first active users are marked Active.
func numberedUsers(n, active int) []user {
	out := make([]user, n)
	for i := range out {
		out[i] = user{
			ID:     i + 1,
			Name:   fmt.Sprintf("user-%02d", i+1),
			Email:  fmt.Sprintf("user%02d@example.com", i+1),
			Active: i < active,
		}
	}
	return out
}

func ids(rows []user) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func evalOpts() grid.EvalOptions[user] {
	return grid.EvalOptions[user]{Accessor: userField, Columns: userColumns}
}
