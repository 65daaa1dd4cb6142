package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/company-scout/internal/search"
)

func TestClauseExpr_ExactArrayField(t *testing.T) {
	var args []any
	expr, err := clauseExpr(search.Clause{
		Field: search.FieldPhones, Term: "5551234567", Boost: 2.0,
	}, &args)

	require.NoError(t, err)
	assert.Equal(t, "(CASE WHEN $1 = ANY(c.phones) THEN $2::float8 ELSE 0 END)", expr)
	assert.Equal(t, []any{"5551234567", 2.0}, args)
}

func TestClauseExpr_FuzzyArrayField(t *testing.T) {
	var args []any
	expr, err := clauseExpr(search.Clause{
		Field: search.FieldCompanyNames, Term: "Acme Corp", Fuzzy: true, Boost: 3.0,
	}, &args)

	require.NoError(t, err)
	assert.Equal(t,
		"(SELECT COALESCE(MAX(similarity(v, $1)), 0) FROM unnest(c.company_names) AS v) * $2::float8",
		expr)
	assert.Equal(t, []any{"Acme Corp", 3.0}, args)
}

func TestClauseExpr_Domain(t *testing.T) {
	var args []any
	expr, err := clauseExpr(search.Clause{
		Field: search.FieldDomain, Term: "acme.com", Boost: 3.0,
	}, &args)

	require.NoError(t, err)
	assert.Equal(t, "(CASE WHEN c.domain = $1 THEN $2::float8 ELSE 0 END)", expr)
}

func TestClauseExpr_FuzzyDomainRejected(t *testing.T) {
	var args []any
	_, err := clauseExpr(search.Clause{
		Field: search.FieldDomain, Term: "acme.com", Fuzzy: true, Boost: 1.0,
	}, &args)
	assert.Error(t, err)
}

func TestClauseExpr_UnknownField(t *testing.T) {
	var args []any
	_, err := clauseExpr(search.Clause{Field: "created_at", Term: "x", Boost: 1.0}, &args)
	assert.ErrorContains(t, err, "unknown search field")
}

func TestClauseExpr_URLColumnsComparedCleaned(t *testing.T) {
	tests := []struct {
		field  string
		column string
	}{
		{search.FieldURLs, "urls"},
		{search.FieldSocial, "social_media"},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			var args []any
			expr, err := clauseExpr(search.Clause{Field: tt.field, Term: "facebook.com", Boost: 2.0}, &args)
			require.NoError(t, err)
			assert.Equal(t,
				`(CASE WHEN EXISTS (SELECT 1 FROM unnest(c.`+tt.column+`) AS v WHERE split_part(regexp_replace(lower(v), '^https?://(www\.)?', ''), '/', 1) = $1) THEN $2::float8 ELSE 0 END)`,
				expr)
			assert.Equal(t, []any{"facebook.com", 2.0}, args)
		})
	}
}

func TestClauseExpr_ParameterNumbering(t *testing.T) {
	var args []any
	_, err := clauseExpr(search.Clause{Field: search.FieldPhones, Term: "111", Boost: 2.0}, &args)
	require.NoError(t, err)

	expr, err := clauseExpr(search.Clause{Field: search.FieldAddresses, Term: "1 Main St", Boost: 1.0}, &args)
	require.NoError(t, err)
	assert.Equal(t, "(CASE WHEN $3 = ANY(c.addresses) THEN $4::float8 ELSE 0 END)", expr)
	assert.Len(t, args, 4)
}
