package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vendorhub/internal/config"
)

func TestParsePaginationParamsDefaults(t *testing.T) {
	page, limit, err := parsePaginationParams("", "")
	if err != nil {
		t.Fatal(err)
	}
	if page != 1 || limit != 20 {
		t.Errorf("defaults = (%d, %d), want (1, 20)", page, limit)
	}
}

func TestParsePaginationParamsExplicit(t *testing.T) {
	page, limit, err := parsePaginationParams("3", "50")
	if err != nil {
		t.Fatal(err)
	}
	if page != 3 || limit != 50 {
		t.Errorf("parsed = (%d, %d), want (3, 50)", page, limit)
	}
}

func TestParsePaginationParamsRejectsBadInput(t *testing.T) {
	cases := [][2]string{
		{"0", "10"},
		{"-1", "10"},
		{"abc", "10"},
		{"1", "0"},
		{"1", "xyz"},
	}
	for _, tc := range cases {
		if _, _, err := parsePaginationParams(tc[0], tc[1]); err == nil {
			t.Errorf("parsePaginationParams(%q, %q) accepted bad input", tc[0], tc[1])
		}
	}
}

func TestValidationErrorsUseJSONFieldNames(t *testing.T) {
	c, w := newTestContext(t)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"password":"pw"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req LoginRequest
	err := c.ShouldBindJSON(&req)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	respondValidationError(c, err)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "email is required") {
		t.Errorf("body = %s, want the json field name in the message", w.Body.String())
	}
}

func TestResetLinkURL(t *testing.T) {
	got := resetLinkURL("http://localhost:8080/", "tok123")
	want := "http://localhost:8080/vendors/auth/reset-password/tok123"
	if got != want {
		t.Errorf("resetLinkURL = %q, want %q", got, want)
	}
}

func TestSafeDeleteUploadRemovesFileUnderRoot(t *testing.T) {
	root := t.TempDir()
	config.AppEnv.UploadDir = root

	dir := filepath.Join(root, "uploads", "products")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "img.jpg")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := safeDeleteUpload("uploads/products/img.jpg"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("file should have been removed")
	}
}

func TestSafeDeleteUploadRefusesTraversal(t *testing.T) {
	config.AppEnv.UploadDir = t.TempDir()

	for _, p := range []string{
		"../etc/passwd",
		"uploads/../../etc/passwd",
		"/etc/passwd",
		"somewhere/else.jpg",
	} {
		if err := safeDeleteUpload(p); err == nil {
			t.Errorf("safeDeleteUpload(%q) should refuse", p)
		}
	}
}

func TestSafeDeleteUploadIgnoresEmptyAndMissing(t *testing.T) {
	config.AppEnv.UploadDir = t.TempDir()

	if err := safeDeleteUpload(""); err != nil {
		t.Errorf("empty path: %v", err)
	}
	if err := safeDeleteUpload("uploads/products/never-existed.jpg"); err != nil {
		t.Errorf("missing file: %v", err)
	}
}
