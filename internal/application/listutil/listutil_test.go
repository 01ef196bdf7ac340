package listutil

import (
	"net/url"
	"testing"
)

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name        string
		query       url.Values
		wantPage    int
		wantPerPage int
	}{
		{"defaults", url.Values{}, 1, DefaultPerPage},
		{"valid", url.Values{"page": {"3"}, "per_page": {"24"}}, 3, 24},
		{"negative page", url.Values{"page": {"-1"}}, 1, DefaultPerPage},
		{"per_page not in options", url.Values{"per_page": {"25"}}, 1, DefaultPerPage},
		{"garbage", url.Values{"page": {"abc"}, "per_page": {"xyz"}}, 1, DefaultPerPage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePageParams(tt.query)
			if p.Page != tt.wantPage {
				t.Errorf("Page: got %d, want %d", p.Page, tt.wantPage)
			}
			if p.PerPage != tt.wantPerPage {
				t.Errorf("PerPage: got %d, want %d", p.PerPage, tt.wantPerPage)
			}
		})
	}
}

func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		perPage    int
		total      int
		wantPages  int
		wantPage   int
		wantOffset int
	}{
		{"first page", 1, 12, 30, 3, 1, 0},
		{"middle page", 2, 12, 30, 3, 2, 12},
		{"page beyond total clamps", 9, 12, 30, 3, 3, 24},
		{"empty result", 1, 12, 0, 1, 1, 0},
		{"exact fit", 1, 12, 12, 1, 1, 0},
		{"zero per page falls back", 1, 0, 5, 1, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pi := NewPageInfo(tt.page, tt.perPage, tt.total)
			if pi.TotalPages != tt.wantPages {
				t.Errorf("TotalPages: got %d, want %d", pi.TotalPages, tt.wantPages)
			}
			if pi.Page != tt.wantPage {
				t.Errorf("Page: got %d, want %d", pi.Page, tt.wantPage)
			}
			if pi.Offset() != tt.wantOffset {
				t.Errorf("Offset: got %d, want %d", pi.Offset(), tt.wantOffset)
			}
		})
	}
}
