package pagination

import (
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "item " + strconv.Itoa(i+1)
	}
	return out
}

func identity(s string) string { return s }

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 20, 2},
		{5, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestPaginate(t *testing.T) {
	items := names(23)

	r := Paginate(items, State{Page: 3, PageSize: 10}, identity)
	assert.Equal(t, []string{"item 21", "item 22", "item 23"}, r.Items)
	assert.Equal(t, 23, r.Total)
	assert.Equal(t, 3, r.TotalPages)
	assert.True(t, r.HasPrev())
	assert.False(t, r.HasNext())

	r = Paginate(items, State{Page: 9, PageSize: 10}, identity)
	assert.Equal(t, 3, r.Page)

	r = Paginate(nil, State{Page: 1, PageSize: 10}, identity)
	assert.Empty(t, r.Items)
	assert.Equal(t, 0, r.TotalPages)
}

func TestPaginate_Search(t *testing.T) {
	items := []string{"Nurse", "Teacher", "Engineer", "nursery aide"}

	r := Paginate(items, State{Page: 1, PageSize: 10, Search: "NURS"}, identity)
	assert.Equal(t, []string{"Nurse", "nursery aide"}, r.Items)
	assert.Equal(t, 1, r.TotalPages)
}

func TestState_ResetsPage(t *testing.T) {
	st := State{Page: 4, PageSize: 10}

	assert.Equal(t, 1, st.WithPageSize(20).Page)
	assert.Equal(t, 20, st.WithPageSize(20).PageSize)
	assert.Equal(t, 1, st.WithSearch("abc").Page)

	filtered := st.WithFilter("status_id", "s1")
	assert.Equal(t, 1, filtered.Page)
	assert.Equal(t, "s1", filtered.Filter("status_id"))
	assert.Nil(t, st.Filters)

	cleared := filtered.WithFilter("status_id", " ")
	assert.Equal(t, "", cleared.Filter("status_id"))

	assert.Equal(t, 7, st.WithPage(7).Page)
	assert.Equal(t, 1, st.WithPage(0).Page)
}

func TestFromQuery(t *testing.T) {
	q := url.Values{
		"page":      {"2"},
		"page_size": {"20"},
		"search":    {"  abel "},
		"family_id": {"f1"},
		"ignored":   {"x"},
	}
	st := FromQuery(q, 10, "family_id", "status_id")
	assert.Equal(t, State{Page: 2, PageSize: 20, Search: "abel", Filters: map[string]string{"family_id": "f1"}}, st)

	st = FromQuery(url.Values{"page": {"-1"}, "page_size": {"abc"}}, 10)
	assert.Equal(t, 1, st.Page)
	assert.Equal(t, 10, st.PageSize)

	assert.Equal(t, "/members?family_id=f1&page=1&page_size=20&search=abel",
		FromQuery(q, 10, "family_id").WithPage(1).URL("/members"))
}

func TestResult_Pages(t *testing.T) {
	r := Result[string]{State: State{Page: 5}, TotalPages: 10}
	assert.Equal(t, []int{3, 4, 5, 6, 7}, r.Pages(5))

	r.Page = 1
	assert.Equal(t, []int{1, 2, 3, 4, 5}, r.Pages(5))

	r.Page = 10
	assert.Equal(t, []int{6, 7, 8, 9, 10}, r.Pages(5))

	r.TotalPages = 2
	r.Page = 2
	assert.Equal(t, []int{1, 2}, r.Pages(5))
}

func TestFromServer(t *testing.T) {
	r := FromServer([]int{1, 2}, 25, 0, State{Page: 1, PageSize: 10})
	assert.Equal(t, 3, r.TotalPages)

	r = FromServer([]int{1, 2}, 25, 4, State{Page: 1, PageSize: 10})
	assert.Equal(t, 4, r.TotalPages)
}
