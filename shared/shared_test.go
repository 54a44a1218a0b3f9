package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stayhub/shared"
	"stayhub/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	assert.Nil(t, shared.ConvertStringToBool(""))
	assert.Nil(t, shared.ConvertStringToBool("maybe"))

	yes := shared.ConvertStringToBool("true")
	if assert.NotNil(t, yes) {
		assert.True(t, *yes)
	}

	no := shared.ConvertStringToBool("false")
	if assert.NotNil(t, no) {
		assert.False(t, *no)
	}
}

func TestConvertStringToInt(t *testing.T) {
	got, err := shared.ConvertStringToInt("42")
	assert.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = shared.ConvertStringToInt("forty-two")
	assert.Error(t, err)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "exact pages", total: 20, limit: 10, want: 2},
		{name: "partial last page", total: 21, limit: 10, want: 3},
		{name: "no data", total: 0, limit: 10, want: 1},
		{name: "no limit", total: 15, limit: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	req := struct {
		Title     string   `db:"title"`
		City      string   `db:"city"`
		MaxGuests *int     `db:"max_guests"`
		Available *bool    `db:"is_available"`
		Ignored   string   `json:"ignored"`
	}{
		Title:     "Renamed listing",
		MaxGuests: ptr(6),
		Available: ptr(false),
	}

	fields := shared.TransformFields(req)

	assert.Equal(t, "Renamed listing", fields["title"])
	assert.Equal(t, 6, fields["max_guests"])
	assert.Equal(t, false, fields["is_available"])
	assert.NotContains(t, fields, "city")
	assert.NotContains(t, fields, "ignored")
	assert.Contains(t, fields, "updated_at")
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("listing-1", "id", "listings")

	where, args := group.GetWhereClause()

	assert.Equal(t, "(listings.id = :id)", where)
	assert.Equal(t, "listing-1", args["id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "listing:get:listing-1", shared.BuildCacheKey("listing:get", "listing-1"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	paramsA := dto.QueryParams{Page: 1, Limit: 10}
	paramsB := dto.QueryParams{Page: 2, Limit: 10}
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "city", Operator: dto.FilterOperatorEq, Value: "Lisbon", Table: "listings"},
		},
	}

	keyA := shared.BuildCacheKeyWithQuery("listing:gets", paramsA, filter)
	keyB := shared.BuildCacheKeyWithQuery("listing:gets", paramsB, filter)

	assert.NotEqual(t, keyA, keyB)
	assert.Equal(t, keyA, shared.BuildCacheKeyWithQuery("listing:gets", paramsA, filter))
}

func ptr[T any](v T) *T {
	return &v
}
