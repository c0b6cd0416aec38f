package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestGetCasaQueryWins(t *testing.T) {
	c := newTestContext(t, "/cart?casa=3")
	c.Set("operator_casa", 2)
	if got := GetCasa(c, 5); got != 3 {
		t.Fatalf("expected query register 3, got %d", got)
	}
}

func TestGetCasaTokenBeatsConfigured(t *testing.T) {
	c := newTestContext(t, "/cart")
	c.Set("operator_casa", 2)
	if got := GetCasa(c, 5); got != 2 {
		t.Fatalf("expected token register 2, got %d", got)
	}
}

func TestGetCasaConfiguredDefault(t *testing.T) {
	c := newTestContext(t, "/cart")
	if got := GetCasa(c, 5); got != 5 {
		t.Fatalf("expected configured register 5, got %d", got)
	}
}

func TestGetCasaLastResort(t *testing.T) {
	c := newTestContext(t, "/cart?casa=bogus")
	if got := GetCasa(c, 0); got != 1 {
		t.Fatalf("expected register 1, got %d", got)
	}
}
