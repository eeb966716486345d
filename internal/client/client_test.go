package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"vendorhub/internal/forms"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sessions := NewSessionStore(filepath.Join(t.TempDir(), "session.json"))
	return New(server.URL, sessions)
}

func TestUpdateOrderStatusAcceptsEveryWorkflowValue(t *testing.T) {
	statuses := []string{"In Review", "Pending", "Processing", "Shipped", "Delivered", "Cancelled"}

	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method = %s, want PUT", r.Method)
		}
		var body struct {
			NewStatus string `json:"newStatus"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		seen = append(seen, body.NewStatus)
		w.WriteHeader(http.StatusOK)
	})

	for _, status := range statuses {
		if err := c.UpdateOrderStatus(context.Background(), "o1", "v1", status); err != nil {
			t.Fatalf("UpdateOrderStatus(%q): %v", status, err)
		}
	}
	if len(seen) != len(statuses) {
		t.Fatalf("server saw %d writes, want %d", len(seen), len(statuses))
	}
	for i, status := range statuses {
		if seen[i] != status {
			t.Errorf("write %d sent %q, want %q", i, seen[i], status)
		}
	}
}

func TestUpdateSettlementStatusSendsTypeAndStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin-update-payment-status/o1" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body struct {
			Type   string `json:"type"`
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body.Type != "floatingCash" || body.Status != "Paid" {
			t.Errorf("body = %+v", body)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := c.UpdateSettlementStatus(context.Background(), "o1", "floatingCash", "Paid"); err != nil {
		t.Fatal(err)
	}
}

func TestRestrictVendorSurfacesServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "db error"})
	})

	err := c.RestrictVendor(context.Background(), "v1")
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", apiErr.Status)
	}
	if apiErr.Message != "db error" {
		t.Errorf("message = %q, want db error", apiErr.Message)
	}
}

func TestLoginStoresSessionAndInjectsToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/vendors/login":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"token": "tok-123",
				"user":  map[string]string{"email": "asha@example.com"},
			})
		case "/vendors/me":
			if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
				t.Errorf("Authorization = %q", got)
			}
			json.NewEncoder(w).Encode(map[string]string{"email": "asha@example.com"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	if _, err := c.Login(context.Background(), "asha@example.com", "pw"); err != nil {
		t.Fatal(err)
	}
	sess := c.Sessions.Current()
	if !sess.IsAuthenticated || sess.Token != "tok-123" {
		t.Fatalf("session after login = %+v", sess)
	}

	if _, err := c.Me(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestVariationFormPartitionsImages(t *testing.T) {
	images := []forms.ImageRef{
		{URL: "/public/products/a.jpg"},
		{Name: "new.png", Data: strings.NewReader("png-bytes")},
		{URL: "/public/products/b.jpg"},
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatal(err)
		}

		var kept []string
		if err := json.Unmarshal([]byte(r.FormValue("existingImages")), &kept); err != nil {
			t.Fatalf("existingImages: %v", err)
		}
		if len(kept) != 2 || kept[0] != "/public/products/a.jpg" || kept[1] != "/public/products/b.jpg" {
			t.Errorf("existingImages = %v", kept)
		}

		files := r.MultipartForm.File["images"]
		if len(files) != 1 || files[0].Filename != "new.png" {
			t.Errorf("uploaded files = %v", files)
		}

		if r.FormValue("variation") == "" {
			t.Error("variation field missing")
		}
		w.WriteHeader(http.StatusOK)
	})

	input := VariationInput{Price: 100, Quantity: 3}
	if err := c.AddVariation(context.Background(), "p1", input, images); err != nil {
		t.Fatal(err)
	}
}
