package card

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"os"
	"strconv"

	"unwrapped_go/internal/stats"
	"unwrapped_go/models"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Минимальная ширина сегмента, под которым ещё рисуется подпись.
const minLabelWidth = 40

// Сегменты полосы распределения в фиксированном порядке отрисовки.
var barSegments = []struct {
	kind  string
	color string
	label string
}{
	{models.MediaPhoto, "#3498db", "Photos"},
	{models.MediaVideo, "#9b59b6", "Videos"},
	{models.MediaPoll, "#f1c40f", "Polls"},
	{models.MediaText, "#2ecc71", "Text"},
}

// Renderer рисует карточку по статистике. Одинаковые входные данные
// всегда дают одинаковую геометрию; растеризация шрифта может отличаться
// между платформами, это допустимо.
type Renderer struct {
	Layout   Layout
	FontPath string
	Footer   string
}

func NewRenderer(fontPath string) *Renderer {
	return &Renderer{
		Layout:   DefaultLayout(),
		FontPath: fontPath,
		Footer:   "@channel_unwrapped_bot",
	}
}

// faces — набор шрифтов карточки. ttf хранится для подбора размера
// заголовка; при работе на запасном шрифте он нулевой.
type faces struct {
	title  font.Face
	header font.Face
	value  font.Face
	small  font.Face
	ttf    *truetype.Font
}

// loadFaces загружает TTF-шрифт. Если файл недоступен или битый,
// карточка рисуется встроенным растровым шрифтом, а не падает.
func (r *Renderer) loadFaces() faces {
	fallback := faces{
		title:  basicfont.Face7x13,
		header: basicfont.Face7x13,
		value:  basicfont.Face7x13,
		small:  basicfont.Face7x13,
	}

	data, err := os.ReadFile(r.FontPath)
	if err != nil {
		log.Printf("[CARD] шрифт %s недоступен, используем встроенный: %v", r.FontPath, err)
		return fallback
	}
	ttf, err := truetype.Parse(data)
	if err != nil {
		log.Printf("[CARD] не удалось разобрать шрифт %s: %v", r.FontPath, err)
		return fallback
	}

	face := func(size float64) font.Face {
		return truetype.NewFace(ttf, &truetype.Options{Size: size})
	}
	return faces{
		title:  face(55),
		header: face(32),
		value:  face(52),
		small:  face(24),
		ttf:    ttf,
	}
}

// Render собирает карточку. Порядок слоёв фиксированный, от заднего к
// переднему: фон → аватар → заголовок → блоки статистики → строка
// активности → полоса медиа → футер. Поздние слои перекрывают ранние.
func (r *Renderer) Render(snapshot *models.ChannelSnapshot, summary models.StatsSummary, avatar []byte) image.Image {
	l := r.Layout
	dc := gg.NewContext(l.CardWidth, l.CardHeight)

	// Фон: размытый затемнённый аватар во всю карточку либо тёмная заливка.
	dc.SetRGB255(15, 15, 15)
	dc.Clear()

	avatarImg := decodeAvatar(avatar)
	if avatarImg != nil {
		bg := imaging.Fill(avatarImg, l.CardWidth, l.CardHeight, imaging.Center, imaging.Lanczos)
		bg = imaging.Blur(bg, 15)
		bg = imaging.AdjustBrightness(bg, -35)
		dc.DrawImage(bg, 0, 0)
	}

	fs := r.loadFaces()

	// Аватар в круге с тонким кольцом.
	cx := float64(l.CardWidth) / 2
	avatarRad := float64(l.AvatarSize) / 2
	avatarCY := float64(l.AvatarY) + avatarRad
	if avatarImg != nil {
		pfp := imaging.Fill(avatarImg, l.AvatarSize, l.AvatarSize, imaging.Center, imaging.Lanczos)
		dc.DrawCircle(cx, avatarCY, avatarRad)
		dc.Clip()
		dc.DrawImage(pfp, (l.CardWidth-l.AvatarSize)/2, l.AvatarY)
		dc.ResetClip()
	} else {
		dc.SetRGB255(60, 60, 60)
		dc.DrawCircle(cx, avatarCY, avatarRad)
		dc.Fill()
	}
	dc.SetRGBA255(255, 255, 255, 150)
	dc.SetLineWidth(2)
	dc.DrawCircle(cx, avatarCY, avatarRad+4)
	dc.Stroke()

	// Заголовок: имя канала и подзаголовок года.
	textStartY := float64(l.AvatarY + l.AvatarSize + 60)
	r.drawChannelName(dc, fs, snapshot.Channel, cx, textStartY)
	dc.SetFontFace(fs.small)
	dc.SetRGB255(200, 200, 200)
	dc.DrawStringAnchored(fmt.Sprintf("%d UNWRAPPED", snapshot.Year), cx, textStartY+60, 0.5, 0.5)

	// Сетка стеклянных блоков два на два.
	gridY := int(textStartY) + 120
	leftX, rightX := l.LeftX(), l.RightX()
	r.drawStatBox(dc, fs, "Current Subs", formatInt(snapshot.Subscribers), leftX, gridY)
	r.drawStatBox(dc, fs, "Total Views", formatInt(summary.TotalViews), rightX, gridY)
	row2 := gridY + l.BoxHeight + l.Gap
	r.drawStatBox(dc, fs, "Total Posts", formatInt(summary.TotalPosts), leftX, row2)
	r.drawStatBox(dc, fs, "Engagement", fmt.Sprintf("%.2f%%", summary.EngagementRate), rightX, row2)

	// Широкий блок активности на три колонки.
	row3 := row2 + l.BoxHeight + l.Gap
	r.drawGlassRect(dc, float64(leftX), float64(row3), float64(l.WideWidth()), float64(l.WideHeight))
	colWidth := l.WideWidth() / 3
	drawColumn := func(idx int, value, label string) {
		colCX := float64(leftX + colWidth*idx + colWidth/2)
		dc.SetFontFace(fs.value)
		dc.SetRGB255(255, 255, 255)
		dc.DrawStringAnchored(value, colCX, float64(row3+75), 0.5, 0.5)
		dc.SetFontFace(fs.small)
		dc.SetRGB255(180, 180, 180)
		dc.DrawStringAnchored(label, colCX, float64(row3+135), 0.5, 0.5)
	}
	drawColumn(0, stats.FormatHour(summary.MostActiveHour), "Best Time")
	drawColumn(1, stats.WeekdayName(summary.MostActiveWeekday)[:3], "Best Day")
	drawColumn(2, stats.MonthName(summary.MostActiveMonth)[:3], "Best Month")

	// Полоса распределения медиа.
	row4 := row3 + l.WideHeight + 60
	dc.SetFontFace(fs.header)
	dc.SetRGB255(255, 255, 255)
	dc.DrawStringAnchored("Content Distribution", cx, float64(row4), 0.5, 0.5)

	counts := make([]int, len(barSegments))
	for i, seg := range barSegments {
		counts[i] = summary.MediaCounts[seg.kind]
	}
	widths := segmentWidths(counts, l.WideWidth())

	barY := float64(row4 + 30)
	x := float64(leftX)
	for i, seg := range barSegments {
		w := float64(widths[i])
		if w == 0 {
			continue
		}
		dc.SetHexColor(seg.color)
		dc.DrawRectangle(x, barY, w, float64(l.BarHeight))
		dc.Fill()
		if w > minLabelWidth {
			dc.SetFontFace(fs.small)
			dc.SetHexColor(seg.color)
			dc.DrawStringAnchored(seg.label, x+w/2, barY+float64(l.BarHeight)+30, 0.5, 0.5)
		}
		x += w
	}

	// Футер.
	dc.SetFontFace(fs.small)
	dc.SetRGB255(200, 200, 200)
	dc.DrawStringAnchored(r.Footer, cx, float64(l.CardHeight-60), 0.5, 0.5)

	return dc.Image()
}

// RenderToFile рисует карточку и сохраняет её в PNG-файл.
func (r *Renderer) RenderToFile(snapshot *models.ChannelSnapshot, summary models.StatsSummary, avatar []byte, path string) error {
	img := r.Render(snapshot, summary, avatar)
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("не удалось сохранить карточку: %w", err)
	}
	return nil
}

// drawChannelName уменьшает шрифт, пока имя не уложится в ширину сетки;
// если не помог и минимальный размер, имя переносится на строки.
func (r *Renderer) drawChannelName(dc *gg.Context, fs faces, name string, cx, y float64) {
	maxWidth := float64(r.Layout.WideWidth())
	dc.SetRGB255(255, 255, 255)
	dc.SetFontFace(fs.title)

	if fs.ttf != nil {
		for _, size := range []float64{55, 48, 42, 36, 30} {
			dc.SetFontFace(truetype.NewFace(fs.ttf, &truetype.Options{Size: size}))
			if w, _ := dc.MeasureString(name); w <= maxWidth {
				break
			}
		}
	}

	if w, _ := dc.MeasureString(name); w <= maxWidth {
		dc.DrawStringAnchored(name, cx, y, 0.5, 0.5)
		return
	}
	lines := wrapText(name, maxWidth, func(s string) float64 {
		w, _ := dc.MeasureString(s)
		return w
	})
	for i, line := range lines {
		dc.DrawStringAnchored(line, cx, y+float64(i)*46, 0.5, 0.5)
	}
}

// drawStatBox рисует стеклянный блок с подписью и значением.
func (r *Renderer) drawStatBox(dc *gg.Context, fs faces, label, value string, x, y int) {
	l := r.Layout
	r.drawGlassRect(dc, float64(x), float64(y), float64(l.BoxWidth), float64(l.BoxHeight))

	boxCX := float64(x + l.BoxWidth/2)
	dc.SetFontFace(fs.header)
	dc.SetRGB255(220, 220, 220)
	dc.DrawStringAnchored(label, boxCX, float64(y+45), 0.5, 0.5)
	dc.SetFontFace(fs.value)
	dc.SetRGB255(255, 255, 255)
	dc.DrawStringAnchored(value, boxCX, float64(y+105), 0.5, 0.5)
}

// drawGlassRect — полупрозрачный скруглённый блок с тонкой обводкой.
func (r *Renderer) drawGlassRect(dc *gg.Context, x, y, w, h float64) {
	dc.SetRGBA255(20, 20, 20, 160)
	dc.DrawRoundedRectangle(x, y, w, h, r.Layout.CornerRadius)
	dc.Fill()
	dc.SetRGBA255(255, 255, 255, 40)
	dc.SetLineWidth(2)
	dc.DrawRoundedRectangle(x, y, w, h, r.Layout.CornerRadius)
	dc.Stroke()
}

// decodeAvatar превращает байты аватара в изображение.
// Битые данные равносильны отсутствию аватара.
func decodeAvatar(data []byte) image.Image {
	if len(data) == 0 {
		return nil
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("[CARD] не удалось декодировать аватар: %v", err)
		return nil
	}
	return img
}

// formatInt добавляет разделители тысяч: 1234567 -> "1,234,567".
func formatInt(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, digit := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digit)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
