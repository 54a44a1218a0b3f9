package dto_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"stayhub/shared/dto"
)

func TestFilterGetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name: "eq with table",
			filter: dto.Filter{
				Field:    "city",
				Operator: dto.FilterOperatorEq,
				Value:    "Lisbon",
				Table:    "listings",
			},
			wantWhere: "listings.city = :city",
			wantArgs:  map[string]any{"city": "Lisbon"},
		},
		{
			name: "like wraps value in wildcards",
			filter: dto.Filter{
				Field:    "title",
				Operator: dto.FilterOperatorLike,
				Value:    "beach",
				Table:    "listings",
			},
			wantWhere: "LOWER(listings.title) LIKE LOWER(:title) ",
			wantArgs:  map[string]any{"title": "%beach%"},
		},
		{
			name: "custom arg name",
			filter: dto.Filter{
				ArgName:  "guest",
				Field:    "guest_id",
				Operator: dto.FilterOperatorEq,
				Value:    "user-1",
			},
			wantWhere: "guest_id = :guest",
			wantArgs:  map[string]any{"guest": "user-1"},
		},
		{
			name: "unknown operator yields empty clause",
			filter: dto.Filter{
				Field:    "status",
				Operator: "between",
				Value:    "pending",
			},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroupGetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "guest_id", Operator: dto.FilterOperatorEq, Value: "user-1", Table: "bookings"},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "title", Operator: dto.FilterOperatorLike, Value: "villa", Table: "listings"},
					dto.Filter{ArgName: "search_city", Field: "city", Operator: dto.FilterOperatorLike, Value: "villa", Table: "listings"},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Contains(t, where, "bookings.guest_id = :guest_id")
	assert.Contains(t, where, " OR ")
	assert.Contains(t, where, " AND ")
	assert.Equal(t, "user-1", args["guest_id"])
	assert.Equal(t, "%villa%", args["title"])
	assert.Equal(t, "%villa%", args["search_city"])
}

func TestFilterGroupEmpty(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestQueryParamsFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/listings?page=2&limit=25&sort_by=price_per_night&sort_dir=asc", nil)

	q := dto.QueryParams{}
	q.FromRequest(r, true)

	assert.Equal(t, 2, q.Page)
	assert.Equal(t, 25, q.Limit)
	assert.Equal(t, "price_per_night", q.SortBy)
	assert.Equal(t, dto.SortDirAsc, q.SortDir)
}

func TestQueryParamsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/listings", nil)

	q := dto.QueryParams{}
	q.FromRequest(r, true)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
}

func TestQueryParamsIgnoresInvalid(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/listings?page=-3&limit=abc&sort_dir=sideways", nil)

	q := dto.QueryParams{}
	q.FromRequest(r, false)

	assert.Zero(t, q.Page)
	assert.Zero(t, q.Limit)
	assert.Empty(t, q.SortDir)
}

func TestSanitizeSort(t *testing.T) {
	tests := []struct {
		name     string
		params   dto.QueryParams
		allowed  []string
		wantBy   string
		wantDir  string
	}{
		{
			name:    "allowed column kept",
			params:  dto.QueryParams{SortBy: "price_per_night", SortDir: "ASC"},
			allowed: []string{"price_per_night", "created_at", "updated_at"},
			wantBy:  "price_per_night",
			wantDir: "ASC",
		},
		{
			name:    "disallowed column falls back to newest first",
			params:  dto.QueryParams{SortBy: "host_id", SortDir: "ASC"},
			allowed: []string{"price_per_night", "created_at", "updated_at"},
			wantBy:  "created_at",
			wantDir: "DESC",
		},
		{
			name:    "empty sort falls back to newest first",
			params:  dto.QueryParams{},
			allowed: []string{"created_at"},
			wantBy:  "created_at",
			wantDir: "DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.SanitizeSort(tt.allowed...)

			assert.Equal(t, tt.wantBy, tt.params.SortBy)
			assert.Equal(t, tt.wantDir, tt.params.SortDir)
		})
	}
}
