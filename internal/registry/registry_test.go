package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/printshop/internal/domain/errors"
	"github.com/polkiloo/printshop/internal/domain/model"
	testhelpers "github.com/polkiloo/printshop/internal/test"
)

func TestContrastColor(t *testing.T) {
	cases := []struct {
		name  string
		color string
		want  string
	}{
		{"white background", "#FFFFFF", "#000000"},
		{"lowercase white", "#ffffff", "#000000"},
		{"black background", "#000000", "#ffffff"},
		{"pure yellow", "#ffff00", "#000000"},
		{"mid grey stays white", "#808080", "#ffffff"},
		{"just above threshold", "#b4b4b4", "#000000"},
		{"just below threshold", "#b2b2b2", "#ffffff"},
		{"pure red", "#ff0000", "#ffffff"},
		{"missing hash", "ffffff", "#ffffff"},
		{"short form", "#fff", "#ffffff"},
		{"non hex", "#gggggg", "#ffffff"},
		{"empty", "", "#ffffff"},
		{"signed", "#+fffff", "#ffffff"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ContrastColor(tc.color); got != tc.want {
				t.Fatalf("expected %s for %q, got %s", tc.want, tc.color, got)
			}
		})
	}
}

func TestContrastColorMatchesLuminance(t *testing.T) {
	for v := 0; v <= 255; v += 5 {
		c := uint8(v)
		hex := "#" + hexByte(c) + hexByte(c) + hexByte(c)
		want := "#ffffff"
		if Luminance(c, c, c) > luminanceThreshold {
			want = "#000000"
		}
		if got := ContrastColor(hex); got != want {
			t.Fatalf("color %s: expected %s, got %s", hex, want, got)
		}
	}
}

func hexByte(b uint8) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0x0f]})
}

func TestValidColor(t *testing.T) {
	if !ValidColor("#A1b2C3") {
		t.Fatal("expected mixed case color to be valid")
	}
	if ValidColor("#12345") || ValidColor("red") {
		t.Fatal("expected malformed colors to be rejected")
	}
}

func TestSnapshotOrdering(t *testing.T) {
	snap := NewSnapshot([]model.OrderStatus{
		{Name: "Delivered", SortOrder: 40},
		{Name: "New", SortOrder: 10},
		{Name: "Ready for Production", SortOrder: 20},
		{Name: "Printing", SortOrder: 30},
	})

	names := snap.Names()
	if len(names) != snap.Len() || len(snap.Statuses()) != snap.Len() {
		t.Fatalf("unexpected snapshot size %d", snap.Len())
	}
	want := []string{"New", "Ready for Production", "Printing", "Delivered"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, names)
		}
	}

	initial, err := snap.Initial()
	if err != nil || initial.Name != "New" {
		t.Fatalf("unexpected initial status %+v err=%v", initial, err)
	}
	if err := snap.Require(Required...); err != nil {
		t.Fatalf("expected required statuses, got %v", err)
	}
	if missing := snap.Missing(); len(missing) != 0 {
		t.Fatalf("did not expect missing statuses, got %v", missing)
	}
	if _, ok := snap.Lookup("Printing"); !ok {
		t.Fatal("expected lookup to find Printing")
	}
	if err := snap.Validate("printing"); !errors.Is(err, domainErrors.ErrUnknownStatus) {
		t.Fatalf("expected case-sensitive lookup, got %v", err)
	}
}

func TestSnapshotMissingRequired(t *testing.T) {
	snap := NewSnapshot([]model.OrderStatus{{Name: "New", SortOrder: 1}, {Name: "Delivered", SortOrder: 2}})

	err := snap.Require(model.StatusReadyForProduction)
	var missing *domainErrors.MissingStatusError
	if !errors.As(err, &missing) || missing.Name != model.StatusReadyForProduction {
		t.Fatalf("expected missing status error, got %v", err)
	}
	if !errors.Is(err, domainErrors.ErrRequiredStatusMissing) {
		t.Fatalf("expected sentinel in chain, got %v", err)
	}
	if got := snap.Missing(); len(got) != 1 || got[0] != model.StatusReadyForProduction {
		t.Fatalf("unexpected missing list %v", got)
	}

	empty := NewSnapshot(nil)
	if _, err := empty.Initial(); !errors.Is(err, domainErrors.ErrRequiredStatusMissing) {
		t.Fatalf("expected empty registry error, got %v", err)
	}
}

func TestGuarded(t *testing.T) {
	for _, name := range []string{model.StatusReadyForProduction, model.StatusDelivered} {
		if !Guarded(name) {
			t.Fatalf("expected %q to be guarded", name)
		}
	}
	for _, name := range []string{"New", "Printing", "delivered", ""} {
		if Guarded(name) {
			t.Fatalf("expected %q not to be guarded", name)
		}
	}
}

func TestSnapshotIsolatedFromInput(t *testing.T) {
	input := []model.OrderStatus{{Name: "New", SortOrder: 1}}
	snap := NewSnapshot(input)
	input[0].Name = "Changed"
	if !snap.Contains("New") {
		t.Fatal("expected snapshot to keep its own copy")
	}
	out := snap.Statuses()
	out[0].Name = "Mutated"
	if !snap.Contains("New") {
		t.Fatal("expected Statuses to return a copy")
	}
}

func TestCacheLoadsOnceAndInvalidates(t *testing.T) {
	companyID := uuid.New()
	calls := 0
	repo := &testhelpers.StatusRepositoryStub{
		ListFn: func(ctx context.Context, id uuid.UUID) ([]model.OrderStatus, error) {
			calls++
			if id != companyID {
				t.Fatalf("unexpected company %s", id)
			}
			return []model.OrderStatus{{Name: "New", SortOrder: 1}}, nil
		},
	}
	cache := NewCache(repo)

	for i := 0; i < 3; i++ {
		snap, err := cache.Snapshot(context.Background(), companyID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !snap.Contains("New") {
			t.Fatal("expected cached status")
		}
	}
	if calls != 1 {
		t.Fatalf("expected single load, got %d", calls)
	}

	cache.Invalidate(companyID)
	if _, err := cache.Snapshot(context.Background(), companyID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected reload after invalidation, got %d", calls)
	}
}

func TestCacheLoadError(t *testing.T) {
	repo := &testhelpers.StatusRepositoryStub{
		ListFn: func(context.Context, uuid.UUID) ([]model.OrderStatus, error) {
			return nil, errors.New("db down")
		},
	}
	cache := NewCache(repo)
	if _, err := cache.Snapshot(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected load error")
	}
}
