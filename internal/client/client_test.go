package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/satish051/RealEstateApp/internal/property"
)

func TestListProperties(t *testing.T) {
	var gotAuth string
	var gotQuery map[string]string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"properties": []*property.Property{
				{ID: 1, Title: "Sunny Bungalow", Price: 24500000},
			},
			"count": 1,
		})
	}))
	defer ts.Close()

	c := New(ts.URL, "rea_testkey")

	min := int64(100000)
	props, err := c.ListProperties(ListOptions{
		Search:      "bungalow",
		MinPrice:    &min,
		ListingType: "for_sale",
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if gotAuth != "Bearer rea_testkey" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotQuery["search"] != "bungalow" || gotQuery["min_price"] != "100000" || gotQuery["type"] != "for_sale" {
		t.Errorf("unexpected query: %v", gotQuery)
	}
	if _, ok := gotQuery["max_price"]; ok {
		t.Error("unset max price should not be sent")
	}

	if len(props) != 1 || props[0].Title != "Sunny Bungalow" {
		t.Errorf("unexpected properties: %+v", props)
	}
}

func TestGetProperty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/properties/7" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("seed") != "42" || r.URL.Query().Get("max") != "5" {
			t.Errorf("unexpected query: %v", r.URL.Query())
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"property": &property.Property{ID: 7, Title: "Reference"},
			"similar": []*property.Property{
				{ID: 8, Title: "Neighbor"},
			},
		})
	}))
	defer ts.Close()

	c := New(ts.URL, "rea_testkey")

	seed := int64(42)
	p, similar, err := c.GetProperty(7, SimilarOptions{Max: 5, Seed: &seed})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.ID != 7 {
		t.Errorf("property id = %d, want 7", p.ID)
	}
	if len(similar) != 1 || similar[0].Title != "Neighbor" {
		t.Errorf("unexpected similar: %+v", similar)
	}
}

func TestGetPropertyByPriceOmitsSeed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("by_price") != "1" {
			t.Error("expected by_price=1")
		}
		if r.URL.Query().Has("seed") {
			t.Error("seed should be omitted with by_price")
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"property": &property.Property{ID: 7},
		})
	}))
	defer ts.Close()

	c := New(ts.URL, "rea_testkey")
	seed := int64(42)
	if _, _, err := c.GetProperty(7, SimilarOptions{Seed: &seed, ByPrice: true}); err != nil {
		t.Fatalf("get: %v", err)
	}
}

func TestServerErrorSurfaced(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "property not found"})
	}))
	defer ts.Close()

	c := New(ts.URL, "rea_testkey")
	_, _, err := c.GetProperty(999, SimilarOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "server returned 404: property not found" {
		t.Errorf("error = %q", got)
	}
}
