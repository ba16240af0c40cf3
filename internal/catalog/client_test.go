package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const countriesJSON = `[
	{
		"name": {"common": "France", "official": "French Republic"},
		"capital": ["Paris"],
		"population": 67391582,
		"region": "Europe",
		"subregion": "Western Europe",
		"area": 551695,
		"flags": {"png": "https://flags.example/fra.png", "svg": "https://flags.example/fra.svg"},
		"languages": {"fra": "French"},
		"currencies": {"EUR": {"name": "Euro", "symbol": "€"}},
		"borders": ["BEL", "DEU", "ESP"],
		"cca3": "FRA",
		"unMember": true
	}
]`

func TestByName_DecodesCountryRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/name/france" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(countriesJSON))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL})
	countries, err := client.ByName(context.Background(), "france")
	if err != nil {
		t.Fatalf("ByName failed: %v", err)
	}
	if len(countries) != 1 {
		t.Fatalf("expected 1 country, got %d", len(countries))
	}

	c := countries[0]
	if c.Name.Common != "France" || c.Name.Official != "French Republic" {
		t.Errorf("unexpected name: %+v", c.Name)
	}
	if c.CCA3 != "FRA" || !c.UNMember || c.Region != "Europe" {
		t.Errorf("unexpected fields: %+v", c)
	}
	if c.Currencies["EUR"].Symbol != "€" {
		t.Errorf("unexpected currency: %+v", c.Currencies)
	}
	if c.FlagURL() != "https://flags.example/fra.png" {
		t.Errorf("FlagURL = %q; want the PNG variant", c.FlagURL())
	}
}

func TestByName_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":404,"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL})
	_, err := client.ByName(context.Background(), "atlantis")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestByName_ServerErrorIsNotNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL})
	_, err := client.ByName(context.Background(), "france")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("server failure must be distinguishable from a not-found result")
	}
}

func TestByName_TransportErrorIsNotNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := New(Config{BaseURL: srv.URL})
	_, err := client.ByName(context.Background(), "france")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("transport failure must be distinguishable from a not-found result")
	}
}

func TestByCode_ReturnsSingleCountry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/alpha/FRA" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(countriesJSON))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL})
	country, err := client.ByCode(context.Background(), "FRA")
	if err != nil {
		t.Fatalf("ByCode failed: %v", err)
	}
	if country.CCA3 != "FRA" {
		t.Errorf("ByCode returned %q; want FRA", country.CCA3)
	}
}

func TestByCode_EmptySequenceIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL})
	_, err := client.ByCode(context.Background(), "XYZ")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAll_RequestsAllPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/all" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(countriesJSON))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL})
	countries, err := client.All(context.Background())
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(countries) != 1 {
		t.Errorf("expected 1 country, got %d", len(countries))
	}
}

func TestByRegion_EscapesPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(countriesJSON))
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL})
	if _, err := client.ByRegion(context.Background(), "Latin America"); err != nil {
		t.Fatalf("ByRegion failed: %v", err)
	}
	if gotPath != "/region/Latin%20America" {
		t.Errorf("request path = %q; want escaped region", gotPath)
	}
}
