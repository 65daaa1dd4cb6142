package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/company-scout/internal/record"
	"github.com/jonathan/company-scout/internal/search"
	"github.com/jonathan/company-scout/internal/store"
)

type fakeBackend struct {
	records   map[string]*record.CompanyRecord
	hits      []search.Hit
	lastQuery *search.Query
	queryErr  error
	getErr    error
	statsErr  error
	upserts   int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{records: make(map[string]*record.CompanyRecord)}
}

func (f *fakeBackend) GetByDomain(_ context.Context, domain string) (*record.CompanyRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.records[domain], nil
}

func (f *fakeBackend) UpsertMerge(_ context.Context, rec *record.CompanyRecord) (*record.CompanyRecord, error) {
	f.upserts++
	if existing, ok := f.records[rec.Domain]; ok {
		merged, err := existing.MergeWith(rec)
		if err != nil {
			return nil, err
		}
		f.records[rec.Domain] = merged
		return merged, nil
	}
	f.records[rec.Domain] = rec.Clone()
	return f.records[rec.Domain], nil
}

func (f *fakeBackend) Query(_ context.Context, q *search.Query) ([]search.Hit, error) {
	f.lastQuery = q
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	hits := f.hits
	if len(hits) > q.Size {
		hits = hits[:q.Size]
	}
	return hits, nil
}

func (f *fakeBackend) Stats(context.Context) (*store.IndexStats, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return &store.IndexStats{TotalCompanies: 2, WithPhones: 1}, nil
}

func (f *fakeBackend) ListCrawlRuns(context.Context, int) ([]store.CrawlRun, error) {
	return nil, nil
}

func acmeRecord() *record.CompanyRecord {
	rec := record.New("acme.com")
	rec.AddCompanyNames("Acme Corp")
	rec.AddPhones("5551234567")
	return rec
}

func doRequest(t *testing.T, backend Backend, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()

	s := newServer(backend)
	defer s.rateLimiter.Stop()
	s.routes().ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestHandleSearch_Found(t *testing.T) {
	backend := newFakeBackend()
	backend.hits = []search.Hit{{Record: acmeRecord(), Score: 5.0}}

	rr := doRequest(t, backend, "POST", "/api/search", map[string]any{
		"name":  "Acme Corp",
		"phone": "(555) 123-4567",
	})

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, true, body["found"])
	assert.Equal(t, 5.0, body["score"])
	company := body["company"].(map[string]any)
	assert.Equal(t, "acme.com", company["domain"])
	assert.Equal(t, 1, backend.lastQuery.Size)
}

func TestHandleSearch_ListValues(t *testing.T) {
	backend := newFakeBackend()
	backend.hits = []search.Hit{{Record: acmeRecord(), Score: 3.0}}

	rr := doRequest(t, backend, "POST", "/api/search", map[string]any{
		"name": []string{"Acme", "Acme Corp"},
	})

	require.Equal(t, http.StatusOK, rr.Code)
	// Two names, each an exact and a fuzzy clause
	assert.Len(t, backend.lastQuery.Clauses, 4)
}

func TestHandleSearch_Debug(t *testing.T) {
	backend := newFakeBackend()
	backend.hits = []search.Hit{
		{Record: acmeRecord(), Score: 5.0},
		{Record: record.New("globex.com"), Score: 2.0},
	}

	rr := doRequest(t, backend, "POST", "/api/search", map[string]any{
		"name":  "Acme",
		"debug": true,
	})

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	results := body["results"].([]any)
	assert.Len(t, results, 2)
	assert.Equal(t, search.DebugResultSize, backend.lastQuery.Size)
}

func TestHandleSearch_NotFound(t *testing.T) {
	backend := newFakeBackend()

	rr := doRequest(t, backend, "POST", "/api/search", map[string]any{
		"phone": "555-123-4567",
		"urls":  "https://www.acme.com",
	})

	require.Equal(t, http.StatusNotFound, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, false, body["found"])
	criteria := body["search_criteria"].(map[string]any)
	assert.Equal(t, []any{"5551234567"}, criteria["normalized_phones"])
	assert.Equal(t, []any{"acme.com"}, criteria["cleaned_urls"])
}

func TestHandleSearch_EmptyCriteria(t *testing.T) {
	backend := newFakeBackend()

	rr := doRequest(t, backend, "POST", "/api/search", map[string]any{})

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Nil(t, backend.lastQuery, "empty criteria must not hit the store")
}

func TestHandleSearch_InvalidBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/search", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	s := newServer(newFakeBackend())
	defer s.rateLimiter.Stop()
	s.routes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleSearch_RejectsNonStringValues(t *testing.T) {
	rr := doRequest(t, newFakeBackend(), "POST", "/api/search", map[string]any{
		"name": 42,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleSearch_StoreFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.queryErr = errors.New("connection refused")

	rr := doRequest(t, backend, "POST", "/api/search", map[string]any{"name": "Acme"})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHandleGetCompany(t *testing.T) {
	backend := newFakeBackend()
	backend.records["acme.com"] = acmeRecord()

	rr := doRequest(t, backend, "GET", "/api/companies/acme.com", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "acme.com", body["domain"])
}

func TestHandleGetCompany_NotFound(t *testing.T) {
	rr := doRequest(t, newFakeBackend(), "GET", "/api/companies/absent.com", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandleImport(t *testing.T) {
	backend := newFakeBackend()

	rr := doRequest(t, backend, "POST", "/api/import", []map[string]any{
		{"domain": "acme.com", "name": "Acme Corp", "phone": "(555) 123-4567"},
		{"domain": "acme.com", "page_type": "contact"},
	})

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, 2.0, body["rows_read"])
	assert.Equal(t, 1.0, body["domains_imported"])
	assert.Equal(t, 1, backend.upserts)
}

func TestHandleImport_ValidationFailure(t *testing.T) {
	backend := newFakeBackend()

	rr := doRequest(t, backend, "POST", "/api/import", []map[string]any{
		{"name": "No Domain Inc"},
	})

	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "validation_failed", body["error"])
	assert.NotEmpty(t, body["fields"])
	assert.Equal(t, 0, backend.upserts)
}

func TestHandleStats(t *testing.T) {
	rr := doRequest(t, newFakeBackend(), "GET", "/api/stats", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	index := body["index"].(map[string]any)
	assert.Equal(t, 2.0, index["total_companies"])
}

func TestHandleStats_Failure(t *testing.T) {
	backend := newFakeBackend()
	backend.statsErr = errors.New("down")

	rr := doRequest(t, backend, "GET", "/api/stats", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHandleHealth(t *testing.T) {
	rr := doRequest(t, newFakeBackend(), "GET", "/api/health", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", decodeBody(t, rr)["status"])
}

func TestStringList_Unmarshal(t *testing.T) {
	var sl stringList
	require.NoError(t, json.Unmarshal([]byte(`"one"`), &sl))
	assert.Equal(t, stringList{"one"}, sl)

	require.NoError(t, json.Unmarshal([]byte(`["a", "b"]`), &sl))
	assert.Equal(t, stringList{"a", "b"}, sl)

	assert.Error(t, json.Unmarshal([]byte(`7`), &sl))
}
