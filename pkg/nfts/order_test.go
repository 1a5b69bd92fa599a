package nfts

import "testing"

func TestOrderDirection(t *testing.T) {
	tests := []struct {
		name   string
		sortBy SortBy
		want   Direction
	}{
		{"newest", SortByNewest, Descending},
		{"recently listed", SortByRecentlyListed, Descending},
		{"recently sold", SortByRecentlySold, Descending},
		{"name", SortByName, Ascending},
		{"cheapest", SortByCheapest, Ascending},
		{"unset falls back to newest", "", Descending},
		{"unknown falls back to newest", "most_liked", Descending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OrderDirection(tt.sortBy); got != tt.want {
				t.Errorf("OrderDirection(%q) = %q, want %q", tt.sortBy, got, tt.want)
			}
		})
	}
}

func TestDefaultOrderBy(t *testing.T) {
	tests := []struct {
		sortBy SortBy
		want   string
	}{
		{SortByNewest, "createdAt"},
		{SortByRecentlyListed, "searchOrderCreatedAt"},
		{SortByRecentlySold, "soldAt"},
		{SortByName, "name"},
		{SortByCheapest, "searchOrderPrice"},
		{"", "createdAt"},
		{"bogus", "createdAt"},
	}

	for _, tt := range tests {
		if got := DefaultOrderBy(tt.sortBy); got != tt.want {
			t.Errorf("DefaultOrderBy(%q) = %q, want %q", tt.sortBy, got, tt.want)
		}
	}
}

func TestParseEnums(t *testing.T) {
	if c, ok := ParseCategory(" Wearable "); !ok || c != CategoryWearable {
		t.Errorf("ParseCategory(Wearable) = %q, %v", c, ok)
	}
	if _, ok := ParseCategory("hat"); ok {
		t.Error("ParseCategory(hat) should fail")
	}
	if s, ok := ParseSortBy("RECENTLY_SOLD"); !ok || s != SortByRecentlySold {
		t.Errorf("ParseSortBy(RECENTLY_SOLD) = %q, %v", s, ok)
	}
	if g, ok := ParseGender("FEMALE"); !ok || g != GenderFemale {
		t.Errorf("ParseGender(FEMALE) = %q, %v", g, ok)
	}
	if m, ok := ParsePlayMode("loop"); !ok || m != PlayModeLoop {
		t.Errorf("ParsePlayMode(loop) = %q, %v", m, ok)
	}
	if _, ok := ParsePlayMode("forever"); ok {
		t.Error("ParsePlayMode(forever) should fail")
	}
}
