package pagination

import "testing"

func TestValidateClampsParams(t *testing.T) {
	tests := []struct {
		name     string
		in       PaginationParams
		wantPage int
		wantPer  int
	}{
		{"defaults applied", PaginationParams{}, 1, 15},
		{"negative page", PaginationParams{Page: -3, PerPage: 10}, 1, 10},
		{"oversized page size", PaginationParams{Page: 2, PerPage: 500}, 2, 100},
		{"valid untouched", PaginationParams{Page: 4, PerPage: 25}, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Validate()
			if tt.in.Page != tt.wantPage || tt.in.PerPage != tt.wantPer {
				t.Errorf("got page %d size %d, want %d/%d",
					tt.in.Page, tt.in.PerPage, tt.wantPage, tt.wantPer)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := PaginationParams{Page: 3, PerPage: 15}
	if got := p.Offset(); got != 30 {
		t.Errorf("Offset = %d, want 30", got)
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 15, 31)
	if p.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", p.TotalPages)
	}
	if !p.HasNext || !p.HasPrev {
		t.Errorf("HasNext=%v HasPrev=%v, want true/true", p.HasNext, p.HasPrev)
	}

	last := NewPagination(3, 15, 31)
	if last.HasNext {
		t.Errorf("HasNext on the last page")
	}
}
