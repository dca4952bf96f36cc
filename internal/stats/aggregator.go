// Package stats сводит снимок канала к итоговой статистике за год.
// Агрегация — чистая функция без ввода-вывода: один проход по постам
// и детерминированный выбор мод по таблицам частот.
package stats

import (
	"log"
	"sort"

	"unwrapped_go/models"
)

// Значения по умолчанию для пустого набора постов.
const (
	defaultHour    = 12
	defaultWeekday = 0 // понедельник
	defaultMonth   = 1 // январь
)

const topPostsLimit = 3

// Aggregate строит статистику по снимку. Определена и для пустого
// снимка: возвращает нулевую сводку со значениями по умолчанию.
func Aggregate(snapshot *models.ChannelSnapshot) models.StatsSummary {
	summary := models.StatsSummary{
		MediaCounts: map[string]int{
			models.MediaPhoto: 0,
			models.MediaVideo: 0,
			models.MediaPoll:  0,
			models.MediaText:  0,
		},
		MostActiveHour:    defaultHour,
		MostActiveWeekday: defaultWeekday,
		MostActiveMonth:   defaultMonth,
	}

	var (
		hours    [24]int
		weekdays [7]int
		months   [12]int
	)

	dated := 0
	for _, post := range snapshot.Messages {
		summary.TotalViews += post.Views
		summary.TotalReactions += post.ReactionTotal()

		switch post.MediaType {
		case models.MediaPhoto, models.MediaVideo, models.MediaPoll:
			summary.MediaCounts[post.MediaType]++
		default:
			// Документы и неизвестные типы считаем текстом, чтобы
			// сумма распределения всегда равнялась числу постов.
			summary.MediaCounts[models.MediaText]++
		}

		// Пост без даты не попадает в таблицы активности,
		// но в остальной статистике участвует.
		if post.Date.IsZero() {
			log.Printf("[STATS] пост %d без даты пропущен в таблицах активности", post.ID)
			continue
		}
		dated++
		hours[post.Date.Hour()]++
		// В Go воскресенье — нулевой день, приводим к счёту от понедельника.
		weekdays[(int(post.Date.Weekday())+6)%7]++
		months[int(post.Date.Month())-1]++
	}

	summary.TotalPosts = len(snapshot.Messages)
	if summary.TotalPosts > 0 {
		summary.AverageViews = summary.TotalViews / summary.TotalPosts
	}
	if summary.TotalViews > 0 {
		summary.EngagementRate = float64(summary.TotalReactions) / float64(summary.TotalViews) * 100
	}
	if dated > 0 {
		summary.MostActiveHour = mode(hours[:])
		summary.MostActiveWeekday = mode(weekdays[:])
		summary.MostActiveMonth = mode(months[:]) + 1
	}
	summary.TopPosts = topPosts(snapshot.Messages)

	return summary
}

// mode возвращает ключ с максимальной частотой. Перебор идёт по
// возрастанию ключей, поэтому при равенстве побеждает меньший ключ.
func mode(counts []int) int {
	best, bestCount := 0, counts[0]
	for key, count := range counts {
		if count > bestCount {
			best, bestCount = key, count
		}
	}
	return best
}

// topPosts выбирает до трёх постов с наибольшими просмотрами.
// Сортировка стабильная: при равных просмотрах сохраняется порядок ленты.
func topPosts(posts []models.ChannelPost) []models.ChannelPost {
	sorted := make([]models.ChannelPost, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Views > sorted[j].Views
	})
	if len(sorted) > topPostsLimit {
		sorted = sorted[:topPostsLimit]
	}
	return sorted
}
