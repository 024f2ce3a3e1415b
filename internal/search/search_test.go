package search

import (
	"fmt"
	"testing"

	"github.com/Werneck0live/job-portal/internal/models"
)

func jobs(specs ...[3]string) []models.Job {
	out := make([]models.Job, 0, len(specs))
	for i, s := range specs {
		out = append(out, models.Job{ID: fmt.Sprintf("j%d", i+1), Title: s[0], Location: s[1], Category: s[2]})
	}
	return out
}

func ids(list []models.Job) []string {
	out := make([]string, 0, len(list))
	for _, j := range list {
		out = append(out, j.ID)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter(t *testing.T) {
	src := jobs(
		[3]string{"Backend Engineer", "Berlin", "Programming"},
		[3]string{"Frontend Dev", "Remote", "Programming"},
		[3]string{"Data Scientist", "Berlin", "Data Science"},
		[3]string{"Backend Lead", "Lisbon", "Management"},
	)

	cases := []struct {
		name string
		f    Facets
		want []string
	}{
		{"no facets reverses order", Facets{}, []string{"j4", "j3", "j2", "j1"}},
		{"title substring any case", Facets{Title: "BACK"}, []string{"j4", "j1"}},
		{"blank title ignored", Facets{Title: "   "}, []string{"j4", "j3", "j2", "j1"}},
		{"location substring", Facets{Location: "ber"}, []string{"j3", "j1"}},
		{"categories OR", Facets{Categories: []string{"Management", "Data Science"}}, []string{"j4", "j3"}},
		{"locations exact", Facets{Locations: []string{"Remote"}}, []string{"j2"}},
		{"location set is exact, not substring", Facets{Locations: []string{"berlin"}}, []string{}},
		{"facets AND", Facets{Title: "back", Locations: []string{"Berlin"}}, []string{"j1"}},
		{"no match", Facets{Title: "chef"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Filter(src, tc.f, JobFields))
			if !equal(got, tc.want) {
				t.Fatalf("want %v got %v", tc.want, got)
			}
		})
	}
}

func TestFilter_BackMatchesOnlyBackend(t *testing.T) {
	src := jobs(
		[3]string{"Backend Engineer", "Berlin", ""},
		[3]string{"Frontend Dev", "Remote", ""},
	)
	for _, q := range []string{"back", "Back", "BACK"} {
		got := Filter(src, Facets{Title: q}, JobFields)
		if len(got) != 1 || got[0].Title != "Backend Engineer" {
			t.Fatalf("q=%q got %v", q, ids(got))
		}
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 13)
	for i := range items {
		items[i] = i
	}

	cases := []struct {
		page int
		want int
	}{
		{1, 6}, {2, 6}, {3, 1}, {4, 0}, {0, 6}, {-1, 6},
	}
	for _, tc := range cases {
		if got := len(Paginate(items, tc.page)); got != tc.want {
			t.Fatalf("page=%d want %d got %d", tc.page, tc.want, got)
		}
	}
	if p3 := Paginate(items, 3); p3[0] != 12 {
		t.Fatalf("page 3 must hold the 13th item, got %v", p3)
	}
	if PageCount(13) != 3 || PageCount(12) != 2 || PageCount(0) != 0 {
		t.Fatalf("page count: %d %d %d", PageCount(13), PageCount(12), PageCount(0))
	}
}

func TestRelated(t *testing.T) {
	list := []models.Job{
		{ID: "a", CompanyID: "c1"},
		{ID: "b", CompanyID: "c2"},
		{ID: "c", CompanyID: "c1"},
		{ID: "d", CompanyID: "c1"},
		{ID: "e", CompanyID: "c1"},
		{ID: "f", CompanyID: "c1"},
		{ID: "g", CompanyID: "c1"},
		{ID: "h", CompanyID: "c1"},
	}
	got := ids(Related(list, models.Job{ID: "a", CompanyID: "c1"}, map[string]bool{"d": true}, 4))
	if !equal(got, []string{"c", "e", "f", "g"}) {
		t.Fatalf("related: %v", got)
	}
}

func TestFacetsActive(t *testing.T) {
	if (Facets{Title: "  "}).Active() {
		t.Fatal("blank title should not count as active")
	}
	if !(Facets{Categories: []string{"x"}}).Active() {
		t.Fatal("category selection should be active")
	}
}
