package pagination

import "testing"

func TestNewParams(t *testing.T) {
	tests := []struct {
		page, limit            int
		wantPage, wantLimit    int
		wantOffset             int
	}{
		{1, 10, 1, 10, 0},
		{3, 20, 3, 20, 40},
		{0, 0, 1, DefaultLimit, 0},
		{-5, 500, 1, MaxLimit, 0},
	}

	for _, tt := range tests {
		p := NewParams(tt.page, tt.limit)
		if p.Page != tt.wantPage || p.Limit != tt.wantLimit || p.Offset != tt.wantOffset {
			t.Errorf("NewParams(%d, %d) = {%d %d %d}, want {%d %d %d}",
				tt.page, tt.limit, p.Page, p.Limit, p.Offset, tt.wantPage, tt.wantLimit, tt.wantOffset)
		}
	}
}

func TestGetMeta(t *testing.T) {
	meta := GetMeta(NewParams(2, 10), 25)

	if meta.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", meta.TotalPages)
	}
	if meta.TotalItems != 25 {
		t.Errorf("TotalItems = %d, want 25", meta.TotalItems)
	}
	if !meta.HasNext {
		t.Error("page 2 of 3 should have a next page")
	}
	if !meta.HasPrev {
		t.Error("page 2 should have a previous page")
	}

	last := GetMeta(NewParams(3, 10), 25)
	if last.HasNext {
		t.Error("last page should not have a next page")
	}
}
