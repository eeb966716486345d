package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestScopeToVendorConstrainsWritesToOwnDocuments(t *testing.T) {
	caller := primitive.NewObjectID()
	other := primitive.NewObjectID()

	c, _ := newTestContext(t)
	c.Set("role", "vendor")
	c.Set("vendorId", caller)

	filter, ok := scopeToVendor(c, bson.M{"_id": primitive.NewObjectID()})
	if !ok {
		t.Fatal("expected the filter to be built")
	}
	if filter["vendor"] != caller {
		t.Errorf("vendor filter = %v, want %v", filter["vendor"], caller)
	}
	// A document owned by someone else must never match the write filter.
	if filter["vendor"] == other {
		t.Error("filter matches another vendor's documents")
	}
}

func TestScopeToVendorAdminPassesThrough(t *testing.T) {
	c, _ := newTestContext(t)
	c.Set("role", "admin")

	filter, ok := scopeToVendor(c, bson.M{"_id": primitive.NewObjectID()})
	if !ok {
		t.Fatal("expected the filter to be built")
	}
	if _, present := filter["vendor"]; present {
		t.Error("admin filters must not be vendor scoped")
	}
}

func TestScopeToVendorRejectsMissingIdentity(t *testing.T) {
	c, w := newTestContext(t)
	c.Set("role", "vendor")

	if _, ok := scopeToVendor(c, bson.M{}); ok {
		t.Fatal("expected the request to be rejected")
	}
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestCategoryScopeFilterVendorRoutes(t *testing.T) {
	owner := primitive.NewObjectID()
	categoryID := primitive.NewObjectID()

	c, _ := newTestContext(t)
	c.Set("role", "vendor")
	c.Set("vendorId", owner)

	filter, ok := categoryScopeFilter(c, categoryID, true)
	if !ok {
		t.Fatal("expected the filter to be built")
	}
	if filter["_id"] != categoryID {
		t.Errorf("_id filter = %v, want %v", filter["_id"], categoryID)
	}
	if filter["vendor"] != owner {
		t.Errorf("vendor filter = %v, want %v", filter["vendor"], owner)
	}
}

func TestCategoryScopeFilterGlobalRoutesExcludeVendorCategories(t *testing.T) {
	c, _ := newTestContext(t)

	filter, ok := categoryScopeFilter(c, primitive.NewObjectID(), false)
	if !ok {
		t.Fatal("expected the filter to be built")
	}
	cond, isM := filter["vendor"].(bson.M)
	if !isM || cond["$exists"] != false {
		t.Errorf("vendor filter = %v, want $exists: false", filter["vendor"])
	}
}
