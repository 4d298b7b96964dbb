package search

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestRegexOr(t *testing.T) {
	filter := regexOr("shea", "name", "description")
	or, ok := filter["$or"].([]bson.M)
	if !ok || len(or) != 2 {
		t.Fatalf("expected 2 branches, got %v", filter)
	}
	name := or[0]["name"].(bson.M)
	if name["$regex"] != "shea" || name["$options"] != "i" {
		t.Errorf("name branch = %v", name)
	}
}

func TestSearchFieldsPerResource(t *testing.T) {
	cases := map[string][]string{
		"meals":     {"name", "description"},
		"herbs":     {"name", "scientificName", "description"},
		"honey":     {"name", "description", "flowerSource"},
		"workouts":  {"name", "description", "exercises.name"},
		"personnel": {"name", "specialization", "email"},
	}
	for resource, want := range cases {
		got := searchFields(resource)
		if len(got) != len(want) {
			t.Errorf("%s: fields %v, want %v", resource, got, want)
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s: field[%d] = %q, want %q", resource, i, got[i], want[i])
			}
		}
	}
	if searchFields("unknown") != nil {
		t.Error("unknown resource should have no fields")
	}
}

func TestThinProjectionNeverExposesPassword(t *testing.T) {
	for _, resource := range allTypes {
		proj := thinProjection(resource)
		if proj == nil {
			t.Errorf("%s: missing projection", resource)
			continue
		}
		if _, present := proj["password"]; present {
			t.Errorf("%s: projection includes password", resource)
		}
	}
}

func TestGlobalSearchRejectsEmptyQuery(t *testing.T) {
	// Whitespace-only queries are rejected the same as a missing q;
	// neither may reach the store.
	for _, q := range []string{"", "%20%20", "+++"} {
		req := httptest.NewRequest("GET", "/api/v1/search?q="+q, nil)
		rec := httptest.NewRecorder()
		GlobalSearch(rec, req, nil)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("q=%q: got %d, want 400", q, rec.Code)
			continue
		}
		var body map[string]interface{}
		json.Unmarshal(rec.Body.Bytes(), &body)
		if body["error"] != "Search query is required" {
			t.Errorf("q=%q: error = %q", q, body["error"])
		}
	}
}

func TestAdvancedSearchRejectsEmptyQuery(t *testing.T) {
	for _, payload := range []string{`{}`, `{"query":""}`, `{"query":"   "}`} {
		req := httptest.NewRequest("POST", "/api/v1/search/advanced", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		AdvancedSearch(rec, req, nil)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("payload %s: got %d, want 400", payload, rec.Code)
		}
	}
}

func TestWanted(t *testing.T) {
	all := wanted(nil)
	if len(all) != len(allTypes) {
		t.Errorf("default wanted set = %v", all)
	}

	one := wanted([]string{"herbs"})
	if !one["herbs"] || len(one) != 1 {
		t.Errorf("wanted(herbs) = %v", one)
	}

	// Unknown types are dropped rather than queried.
	none := wanted([]string{"spaceships"})
	if len(none) != 0 {
		t.Errorf("wanted(spaceships) = %v", none)
	}
}
