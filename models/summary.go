package models

// StatsSummary — итоговая статистика канала за год.
// Считается по ChannelSnapshot непосредственно перед отрисовкой карточки
// и нигде не сохраняется.
type StatsSummary struct {
	TotalPosts     int     `json:"total_posts"`
	TotalViews     int     `json:"total_views"`
	AverageViews   int     `json:"average_views"`
	TotalReactions int     `json:"total_reactions"`
	EngagementRate float64 `json:"engagement_rate"`

	// Топ-3 поста по просмотрам; при равенстве просмотров сохраняется
	// порядок ленты.
	TopPosts []ChannelPost `json:"top_posts"`

	// Распределение по типам медиа. Ключи photo/video/poll/text
	// присутствуют всегда, даже с нулевым значением.
	MediaCounts map[string]int `json:"media_counts"`

	MostActiveHour    int `json:"most_active_hour"`    // 0-23
	MostActiveWeekday int `json:"most_active_weekday"` // 0 = понедельник
	MostActiveMonth   int `json:"most_active_month"`   // 1 = январь
}
