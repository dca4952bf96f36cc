package stats

import (
	"testing"
	"time"

	"unwrapped_go/models"
)

func post(id, views int, date time.Time) models.ChannelPost {
	return models.ChannelPost{ID: id, Views: views, Date: date, MediaType: models.MediaText}
}

// TestAggregateEmpty проверяет значения по умолчанию для пустого снимка:
// агрегация обязана быть определена и без постов.
func TestAggregateEmpty(t *testing.T) {
	summary := Aggregate(&models.ChannelSnapshot{})

	if summary.TotalPosts != 0 || summary.AverageViews != 0 {
		t.Fatalf("пустой снимок должен давать нули: %+v", summary)
	}
	if summary.EngagementRate != 0.0 {
		t.Fatalf("вовлечённость без просмотров должна быть 0, получено %f", summary.EngagementRate)
	}
	if summary.MostActiveHour != 12 || summary.MostActiveWeekday != 0 || summary.MostActiveMonth != 1 {
		t.Fatalf("ожидались значения по умолчанию 12/понедельник/январь: %+v", summary)
	}
	if len(summary.TopPosts) != 0 {
		t.Fatalf("топ постов пустого снимка должен быть пуст")
	}
	total := 0
	for _, c := range summary.MediaCounts {
		total += c
	}
	if len(summary.MediaCounts) != 4 || total != 0 {
		t.Fatalf("распределение медиа должно содержать четыре нулевых категории: %v", summary.MediaCounts)
	}
}

// TestAggregateTotals повторяет сквозной сценарий: три поста с просмотрами
// 100, 500 и 200 без реакций.
func TestAggregateTotals(t *testing.T) {
	day := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	snapshot := &models.ChannelSnapshot{Messages: []models.ChannelPost{
		post(1, 100, day),
		post(2, 500, day),
		post(3, 200, day),
	}}

	summary := Aggregate(snapshot)
	if summary.TotalPosts != 3 {
		t.Fatalf("ожидалось 3 поста, получено %d", summary.TotalPosts)
	}
	if summary.TotalViews != 800 {
		t.Fatalf("ожидалось 800 просмотров, получено %d", summary.TotalViews)
	}
	if summary.AverageViews != 266 {
		t.Fatalf("ожидалось среднее 266 (целочисленное деление), получено %d", summary.AverageViews)
	}

	ids := []int{summary.TopPosts[0].ID, summary.TopPosts[1].ID, summary.TopPosts[2].ID}
	if ids[0] != 2 || ids[1] != 3 || ids[2] != 1 {
		t.Fatalf("топ должен идти по убыванию просмотров, получено %v", ids)
	}
}

// TestAggregateEngagementRate проверяет формулу вовлечённости и защиту
// от деления на ноль.
func TestAggregateEngagementRate(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	withViews := &models.ChannelSnapshot{Messages: []models.ChannelPost{
		{ID: 1, Views: 1000, Date: day, MediaType: models.MediaText,
			Reactions: []models.Reaction{{Type: "❤️", Count: 30}, {Type: "😂", Count: 20}}},
	}}
	summary := Aggregate(withViews)
	if summary.EngagementRate != 5.0 {
		t.Fatalf("ожидалась вовлечённость 5.0, получено %f", summary.EngagementRate)
	}
	if summary.TotalReactions != 50 {
		t.Fatalf("ожидалось 50 реакций, получено %d", summary.TotalReactions)
	}

	noViews := &models.ChannelSnapshot{Messages: []models.ChannelPost{
		{ID: 1, Views: 0, Date: day, MediaType: models.MediaText,
			Reactions: []models.Reaction{{Type: "❤️", Count: 9}}},
	}}
	if got := Aggregate(noViews).EngagementRate; got != 0.0 {
		t.Fatalf("без просмотров вовлечённость должна быть 0, получено %f", got)
	}
}

// TestAggregateModeTieBreak: при равных частотах побеждает меньший ключ.
func TestAggregateModeTieBreak(t *testing.T) {
	mk := func(id, hour int) models.ChannelPost {
		return post(id, 0, time.Date(2024, 5, 6, hour, 0, 0, 0, time.UTC))
	}
	snapshot := &models.ChannelSnapshot{Messages: []models.ChannelPost{
		mk(1, 3), mk(2, 3), mk(3, 7), mk(4, 7),
	}}

	if got := Aggregate(snapshot).MostActiveHour; got != 3 {
		t.Fatalf("при равенстве частот ожидался меньший час 3, получено %d", got)
	}
}

// TestAggregateTopStable: при равных просмотрах приоритет у поста,
// встретившегося в ленте раньше, и повторный запуск даёт тот же порядок.
func TestAggregateTopStable(t *testing.T) {
	day := time.Date(2024, 2, 2, 2, 0, 0, 0, time.UTC)
	snapshot := &models.ChannelSnapshot{Messages: []models.ChannelPost{
		post(10, 300, day),
		post(11, 300, day),
		post(12, 100, day),
	}}

	first := Aggregate(snapshot)
	second := Aggregate(snapshot)
	for i := range first.TopPosts {
		if first.TopPosts[i].ID != second.TopPosts[i].ID {
			t.Fatalf("повторный запуск изменил порядок топа")
		}
	}
	if first.TopPosts[0].ID != 10 || first.TopPosts[1].ID != 11 {
		t.Fatalf("при равных просмотрах порядок ленты должен сохраняться: %v",
			[]int{first.TopPosts[0].ID, first.TopPosts[1].ID})
	}
}

// TestAggregateMediaDistribution: сумма распределения равна числу постов,
// документы падают в текстовую корзину.
func TestAggregateMediaDistribution(t *testing.T) {
	day := time.Date(2024, 8, 8, 8, 0, 0, 0, time.UTC)
	mk := func(id int, kind string) models.ChannelPost {
		return models.ChannelPost{ID: id, Date: day, MediaType: kind}
	}
	snapshot := &models.ChannelSnapshot{Messages: []models.ChannelPost{
		mk(1, models.MediaPhoto),
		mk(2, models.MediaPhoto),
		mk(3, models.MediaVideo),
		mk(4, models.MediaDocument),
		mk(5, models.MediaText),
		mk(6, "неизвестно"),
	}}

	summary := Aggregate(snapshot)
	total := 0
	for _, c := range summary.MediaCounts {
		total += c
	}
	if total != summary.TotalPosts {
		t.Fatalf("сумма распределения %d не равна числу постов %d", total, summary.TotalPosts)
	}
	if summary.MediaCounts[models.MediaText] != 3 {
		t.Fatalf("документы и неизвестные типы должны попадать в text: %v", summary.MediaCounts)
	}
	if summary.MediaCounts[models.MediaPhoto] != 2 || summary.MediaCounts[models.MediaVideo] != 1 {
		t.Fatalf("распределение искажено: %v", summary.MediaCounts)
	}
}

// TestAggregateSkipsUndatedPosts: пост без даты не участвует в таблицах
// активности, но входит в остальную статистику.
func TestAggregateSkipsUndatedPosts(t *testing.T) {
	day := time.Date(2024, 4, 4, 9, 0, 0, 0, time.UTC)
	snapshot := &models.ChannelSnapshot{Messages: []models.ChannelPost{
		post(1, 10, day),
		{ID: 2, Views: 20, MediaType: models.MediaText}, // нулевая дата
	}}

	summary := Aggregate(snapshot)
	if summary.TotalPosts != 2 || summary.TotalViews != 30 {
		t.Fatalf("пост без даты должен учитываться в итогах: %+v", summary)
	}
	if summary.MostActiveHour != 9 {
		t.Fatalf("активность должна считаться только по датированным постам, получено %d", summary.MostActiveHour)
	}
}

// TestFormatHour проверяет 12-часовой формат с граничными значениями.
func TestFormatHour(t *testing.T) {
	cases := map[int]string{0: "12 AM", 1: "1 AM", 11: "11 AM", 12: "12 PM", 15: "3 PM", 23: "11 PM"}
	for hour, want := range cases {
		if got := FormatHour(hour); got != want {
			t.Fatalf("час %d: ожидалось %s, получено %s", hour, want, got)
		}
	}
}

// TestLabels проверяет соглашения нумерации: понедельник нулевой, январь первый.
func TestLabels(t *testing.T) {
	if WeekdayName(0) != "Monday" || WeekdayName(6) != "Sunday" {
		t.Fatalf("нумерация дней недели нарушена")
	}
	if MonthName(1) != "January" || MonthName(12) != "December" {
		t.Fatalf("нумерация месяцев нарушена")
	}
}
