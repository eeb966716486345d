package forms

import (
	"reflect"
	"strings"
	"testing"
)

func TestPartitionImagesSplitsMixedList(t *testing.T) {
	refs := []ImageRef{
		{URL: "uploads/products/a.jpg"},
		{Name: "new1.png", Data: strings.NewReader("png-bytes")},
		{URL: "uploads/products/b.jpg"},
		{Name: "new2.jpg", Data: strings.NewReader("jpg-bytes")},
	}

	existing, uploads := PartitionImages(refs)

	wantExisting := []string{"uploads/products/a.jpg", "uploads/products/b.jpg"}
	if !reflect.DeepEqual(existing, wantExisting) {
		t.Fatalf("existing = %v, want %v", existing, wantExisting)
	}
	if len(uploads) != 2 || uploads[0].Name != "new1.png" || uploads[1].Name != "new2.jpg" {
		t.Fatalf("uploads not partitioned in order: %v", uploads)
	}
}

func TestPartitionImagesDropsEmptyEntries(t *testing.T) {
	refs := []ImageRef{{URL: "  "}, {}}
	existing, uploads := PartitionImages(refs)
	if len(existing) != 0 || len(uploads) != 0 {
		t.Fatalf("expected empty partition, got existing=%v uploads=%v", existing, uploads)
	}
}

func TestMergeImagesIsUnion(t *testing.T) {
	existing := []string{"uploads/a.jpg", "uploads/b.jpg"}
	uploaded := []string{"uploads/c.jpg", "uploads/d.jpg"}

	merged := MergeImages(existing, uploaded)

	want := []string{"uploads/a.jpg", "uploads/b.jpg", "uploads/c.jpg", "uploads/d.jpg"}
	if !reflect.DeepEqual(merged, want) {
		t.Fatalf("merged = %v, want %v", merged, want)
	}
}

func TestMergeImagesAfterRemoveAndAdd(t *testing.T) {
	// The form removed b.jpg client-side and added one new file: the result
	// must contain exactly the kept URL and the new path, nothing else.
	merged := MergeImages([]string{"uploads/a.jpg"}, []string{"uploads/new.jpg"})
	want := []string{"uploads/a.jpg", "uploads/new.jpg"}
	if !reflect.DeepEqual(merged, want) {
		t.Fatalf("merged = %v, want %v", merged, want)
	}
}

func TestMergeImagesDeduplicates(t *testing.T) {
	merged := MergeImages(
		[]string{"uploads/a.jpg", "uploads/a.jpg"},
		[]string{"uploads/a.jpg", "uploads/b.jpg"},
	)
	want := []string{"uploads/a.jpg", "uploads/b.jpg"}
	if !reflect.DeepEqual(merged, want) {
		t.Fatalf("merged = %v, want %v", merged, want)
	}
}

func TestMergeImagesSkipsBlanks(t *testing.T) {
	merged := MergeImages([]string{"", " "}, []string{"uploads/a.jpg"})
	if !reflect.DeepEqual(merged, []string{"uploads/a.jpg"}) {
		t.Fatalf("merged = %v", merged)
	}
}

func TestRequireFieldsReturnsFirstViolation(t *testing.T) {
	err := RequireFields(
		FieldCheck{Name: "name", Value: "Asha"},
		FieldCheck{Name: "email", Value: ""},
		FieldCheck{Name: "phone", Value: ""},
	)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if err.Error() != "email is required" {
		t.Fatalf("expected first violation to win, got %q", err.Error())
	}
}

func TestRequireFieldsPassesWhenAllSet(t *testing.T) {
	err := RequireFields(
		FieldCheck{Name: "name", Value: "Asha"},
		FieldCheck{Name: "email", Value: "asha@example.com"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
