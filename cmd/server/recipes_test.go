package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Simplici0/recipecost/internal/seed"
)

func TestRecipesListShowsPricedTemplates(t *testing.T) {
	srv := newTestServer(t, true)

	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/recipes?q=fub", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	for _, expected := range []string{seed.SampleRecipe, "R$ 9,46", `href="/?recipe=1"`} {
		if !strings.Contains(body, expected) {
			t.Fatalf("expected body to contain %q, got: %s", expected, body)
		}
	}
}

func TestRecipesListFilterWithoutMatches(t *testing.T) {
	srv := newTestServer(t, true)

	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/recipes?q=lasanha", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Nenhuma receita encontrada.") {
		t.Fatalf("expected empty-state message")
	}
}
