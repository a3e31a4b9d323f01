package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/user/movietracker/internal/model"
)

// 标题、评分、日期都有并列，用于检查稳定排序
func sortFixture(t *testing.T) []*model.WatchListItem {
	t.Helper()
	return []*model.WatchListItem{
		{MovieID: 1, Title: "Dune", Rating: 4, WatchedDate: date(t, "2024-03-01"), Duration: 155},
		{MovieID: 2, Title: "Arcane", Rating: 5, WatchedDate: date(t, "2024-01-10"), Duration: 360},
		{MovieID: 3, Title: "Dune", Rating: 4, WatchedDate: date(t, "2024-02-01"), Duration: 137},
		{MovieID: 4, Title: "Zodiac", Rating: 2, WatchedDate: date(t, "2024-01-10"), Duration: 157},
	}
}

func movieIDs(items []*model.WatchListItem) []int {
	out := make([]int, 0, len(items))
	for _, it := range items {
		out = append(out, it.MovieID)
	}
	return out
}

func TestSortItems(t *testing.T) {
	tests := []struct {
		key  string
		want []int
	}{
		{model.SortDateDesc, []int{1, 3, 2, 4}},
		{model.SortDateAsc, []int{2, 4, 3, 1}},
		{model.SortTitleAsc, []int{2, 1, 3, 4}},
		{model.SortTitleDesc, []int{4, 1, 3, 2}},
		{model.SortRatingDesc, []int{2, 1, 3, 4}},
		{model.SortRatingAsc, []int{4, 1, 3, 2}},
		{"", []int{1, 3, 2, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			items := sortFixture(t)
			got := SortItems(items, tt.key)
			assert.Equal(t, tt.want, movieIDs(got))
			// 输入切片不变
			assert.Equal(t, []int{1, 2, 3, 4}, movieIDs(items))
		})
	}
}

func TestSortItemsTiesKeepInputOrder(t *testing.T) {
	items := []*model.WatchListItem{
		{MovieID: 7, Title: "Solaris", Rating: 3},
		{MovieID: 5, Title: "Solaris", Rating: 3},
		{MovieID: 6, Title: "Solaris", Rating: 3},
	}
	for _, key := range model.SortKeys {
		assert.Equal(t, []int{7, 5, 6}, movieIDs(SortItems(items, key)), key)
	}
	assert.Empty(t, SortItems(nil, model.SortTitleAsc))
}

func TestStats(t *testing.T) {
	assert.Equal(t, model.ListStats{}, Stats(nil))
	assert.Equal(t, model.ListStats{}, Stats([]*model.WatchListItem{}))

	// (155+360+137+157)/60 = 13.48
	assert.Equal(t, model.ListStats{Count: 4, TotalHours: 13}, Stats(sortFixture(t)))

	filtered := FilterItems(sortFixture(t), model.WatchFilter{Genre: "none"})
	assert.Equal(t, model.ListStats{}, Stats(filtered))
}
