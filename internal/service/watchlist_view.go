package service

import (
	"math"
	"sort"
	"strings"

	"github.com/user/movietracker/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// 以下均为纯函数，输入切片不会被修改

// validSortKeys 支持的排序方式
var validSortKeys = func() map[string]bool {
	m := make(map[string]bool, len(model.SortKeys))
	for _, k := range model.SortKeys {
		m[k] = true
	}
	return m
}()

// FilterItems 按状态、类型、类型标签过滤
// status 为空或 all 时不过滤；type 精确匹配；genre 不区分大小写子串匹配
func FilterItems(items []*model.WatchListItem, f model.WatchFilter) []*model.WatchListItem {
	status := strings.ToLower(strings.TrimSpace(f.Status))
	typ := strings.ToLower(strings.TrimSpace(f.Type))
	genre := strings.ToLower(strings.TrimSpace(f.Genre))

	out := make([]*model.WatchListItem, 0, len(items))
	for _, it := range items {
		if status != "" && status != model.StatusAll && it.Status != status {
			continue
		}
		if typ != "" && it.Type != typ {
			continue
		}
		if genre != "" && !strings.Contains(strings.ToLower(it.Genre), genre) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// SortItems 稳定排序，相等元素保持输入顺序
func SortItems(items []*model.WatchListItem, key string) []*model.WatchListItem {
	out := make([]*model.WatchListItem, len(items))
	copy(out, items)

	switch key {
	case model.SortDateAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].WatchedDate.Before(out[j].WatchedDate.Time)
		})
	case model.SortTitleAsc, model.SortTitleDesc:
		// Collator 非并发安全，每次排序单独创建
		col := collate.New(language.Und)
		desc := key == model.SortTitleDesc
		sort.SliceStable(out, func(i, j int) bool {
			c := col.CompareString(out[i].Title, out[j].Title)
			if desc {
				return c > 0
			}
			return c < 0
		})
	case model.SortRatingDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case model.SortRatingAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating < out[j].Rating })
	default: // date-desc
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].WatchedDate.After(out[j].WatchedDate.Time)
		})
	}
	return out
}

// Stats 当前视图统计，筛选条件变化后必须重新计算
func Stats(items []*model.WatchListItem) model.ListStats {
	return model.ListStats{
		Count:      len(items),
		TotalHours: totalHours(items),
	}
}

// AggregateDashboard 全量清单汇总
func AggregateDashboard(items []*model.WatchListItem) model.DashboardSummary {
	var sum model.DashboardSummary
	ratingTotal := 0
	for _, it := range items {
		switch it.Type {
		case model.TypeMovie:
			sum.MovieCount++
		case model.TypeSeries:
			sum.SeriesCount++
		}
		ratingTotal += it.Rating
	}
	sum.TotalHours = totalHours(items)
	if len(items) > 0 {
		avg := float64(ratingTotal) / float64(len(items))
		sum.AverageRating = math.Round(avg*10) / 10
	}
	return sum
}

// Recent 最近观看的 n 条
func Recent(items []*model.WatchListItem, n int) []*model.WatchListItem {
	sorted := SortItems(items, model.SortDateDesc)
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Charts 图表数据：按类型、按标签（首次出现顺序）、按月份（时间顺序）
func Charts(items []*model.WatchListItem) model.ChartData {
	data := model.ChartData{
		ByType: []model.ChartPoint{
			{Label: model.TypeMovie},
			{Label: model.TypeSeries},
		},
		ByGenre: []model.ChartPoint{},
		ByMonth: []model.ChartPoint{},
	}

	genreIdx := map[string]int{}
	months := map[string]int{}
	for _, it := range items {
		switch it.Type {
		case model.TypeMovie:
			data.ByType[0].Count++
		case model.TypeSeries:
			data.ByType[1].Count++
		}

		if it.Genre != "" {
			if i, ok := genreIdx[it.Genre]; ok {
				data.ByGenre[i].Count++
			} else {
				genreIdx[it.Genre] = len(data.ByGenre)
				data.ByGenre = append(data.ByGenre, model.ChartPoint{Label: it.Genre, Count: 1})
			}
		}

		if !it.WatchedDate.IsZero() {
			months[it.WatchedDate.Format("2006-01")]++
		}
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		data.ByMonth = append(data.ByMonth, model.ChartPoint{Label: k, Count: months[k]})
	}
	return data
}

func totalHours(items []*model.WatchListItem) int {
	minutes := 0
	for _, it := range items {
		minutes += it.Duration
	}
	return int(math.Round(float64(minutes) / 60))
}
