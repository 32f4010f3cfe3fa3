package pagination

import (
	"net/http/httptest"
	"testing"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantPage    int
		wantPerPage int
		wantOffset  int
	}{
		{"defaults", "", 1, DefaultPerPage, 0},
		{"explicit", "?page=3&per_page=10", 3, 10, 20},
		{"negative page", "?page=-1", 1, DefaultPerPage, 0},
		{"zero per_page", "?per_page=0", 1, DefaultPerPage, 0},
		{"per_page capped", "?per_page=5000", 1, MaxPerPage, 0},
		{"garbage", "?page=abc&per_page=xyz", 1, DefaultPerPage, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/sessions"+tt.query, nil)
			p := ParseParams(r)
			if p.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", p.Page, tt.wantPage)
			}
			if p.PerPage != tt.wantPerPage {
				t.Errorf("PerPage = %d, want %d", p.PerPage, tt.wantPerPage)
			}
			if p.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d", p.Offset, tt.wantOffset)
			}
			if p.Limit != p.PerPage {
				t.Errorf("Limit = %d, want %d", p.Limit, p.PerPage)
			}
		})
	}
}

func TestNewResponse(t *testing.T) {
	resp := NewResponse([]string{"a", "b"}, 2, 2, 5)

	if resp.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", resp.TotalPages)
	}
	if resp.TotalResults != 5 {
		t.Errorf("TotalResults = %d, want 5", resp.TotalResults)
	}
	if len(resp.Results) != 2 {
		t.Errorf("len(Results) = %d, want 2", len(resp.Results))
	}
}

func TestNewResponseNilResults(t *testing.T) {
	resp := NewResponse[string](nil, 1, 20, 0)
	if resp.Results == nil {
		t.Error("Results should never be nil so it serializes as []")
	}
}

func TestCalculateTotalPages(t *testing.T) {
	tests := []struct {
		total, perPage, want int
	}{
		{0, 20, 1},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 20, 5},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := CalculateTotalPages(tt.total, tt.perPage); got != tt.want {
			t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.want)
		}
	}
}
