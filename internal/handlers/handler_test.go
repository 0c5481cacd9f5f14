// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Valkey is replaced by miniredis and the Heureka export by httptest.
package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"heurekafeed/internal/cache"
	"heurekafeed/internal/catalog"
	"heurekafeed/internal/models"
)

const categoryExport = `<?xml version="1.0" encoding="utf-8"?>
<HEUREKA>
  <CATEGORY>
    <CATEGORY_ID>1</CATEGORY_ID>
    <CATEGORY_NAME>Elektronika</CATEGORY_NAME>
    <CATEGORY>
      <CATEGORY_ID>10</CATEGORY_ID>
      <CATEGORY_NAME>Foto</CATEGORY_NAME>
      <CATEGORY>
        <CATEGORY_ID>100</CATEGORY_ID>
        <CATEGORY_NAME>Fotoaparáty</CATEGORY_NAME>
        <CATEGORY_FULLNAME>Heureka.cz | Elektronika | Foto | Fotoaparáty</CATEGORY_FULLNAME>
      </CATEGORY>
    </CATEGORY>
  </CATEGORY>
</HEUREKA>`

// testStore returns a cache store on a fresh miniredis.
func testStore(t *testing.T) (*cache.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewStore(client, cache.DefaultPrefix), mr
}

// testManager returns a category manager reading from an in-process
// export server answering with status and body.
func testManager(t *testing.T, status int, body string) *catalog.Manager {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	store, _ := testStore(t)
	m := catalog.NewManager(store, catalog.NewHTTPFetcher(5*time.Second), nil)
	if err := m.SetFeedURL(srv.URL + "/heureka-sekce.xml"); err != nil {
		t.Fatalf("SetFeedURL: %v", err)
	}
	return m
}

// testProduct returns a valid product in category 100.
func testProduct(t *testing.T, itemID string) *models.Product {
	t.Helper()
	p, err := models.NewProduct(itemID, "Canon PowerShot SX100", "Canon PowerShot SX100 červený",
		"https://shop.example.com/"+itemID, 4990, models.NewCategory(100, "Fotoaparáty", nil), "Canon")
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	return p
}

// serve routes a single request through a chi router with one route.
func serve(method, pattern, target string, h http.HandlerFunc) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Method(method, pattern, h)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}
