package common

import (
	"bytes"
	"image/color"
	"math"
	"sync"

	"github.com/Freeeeeet/skilllink_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/skilllink_bot/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = ""
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	chartWidth       = 1200
	chartHeight      = 700
	chartPadTop      = 110
	chartPadBottom   = 90
	chartPadLeft     = 110
	chartPadRight    = 50
	chartGridLines   = 5
	chartBarGap      = 0.3 // доля ширины колонки под промежуток
	chartBarRadius   = 6.0
	titleFontSize    = 30.0
	axisFontSize     = 17.0
	barLabelFontSize = 15.0
)

// Цветовая схема
var (
	chartBgColor     = color.RGBA{245, 246, 248, 255}
	chartTextColor   = color.RGBA{80, 85, 90, 230}
	chartGridColor   = color.NRGBA{200, 200, 200, 255}
	chartAxisColor   = color.NRGBA{120, 120, 120, 255}
	chartBarColor    = color.RGBA{133, 193, 85, 230}
	chartEmptyColor  = color.RGBA{150, 150, 150, 220}
	chartShadowColor = color.RGBA{0, 0, 0, 20}
)

var (
	fontsMu     sync.Mutex
	cachedFonts = make(map[FontStyle]*opentype.Font)
)

// loadFont загружает шрифт указанного стиля или использует basicfont как fallback
func loadFont(dc *gg.Context, size float64, style FontStyle) {
	fontData := goregular.TTF
	if style == FontStyleBold {
		fontData = gobold.TTF
	}

	fontsMu.Lock()
	parsed, ok := cachedFonts[style]
	if !ok {
		var err error
		parsed, err = opentype.Parse(fontData)
		if err != nil {
			fontsMu.Unlock()
			dc.SetFontFace(basicfont.Face7x13)
			return
		}
		cachedFonts[style] = parsed
	}
	fontsMu.Unlock()

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		dc.SetFontFace(basicfont.Face7x13)
		return
	}
	dc.SetFontFace(face)
}

// GenerateMonthlyChart рисует столбчатый график сумм по месяцам (PNG).
// Точки ожидаются в хронологическом порядке, см. model.MonthlyAmounts.Points
func GenerateMonthlyChart(title string, points []model.MonthlyPoint) ([]byte, error) {
	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetColor(chartBgColor)
	dc.Clear()

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(chartTextColor)
	dc.DrawStringAnchored(title, chartWidth/2, chartPadTop/2, 0.5, 0.5)

	if len(points) == 0 {
		loadFont(dc, axisFontSize, FontStyleDefault)
		dc.SetColor(chartEmptyColor)
		dc.DrawStringAnchored("No data yet", chartWidth/2, chartHeight/2, 0.5, 0.5)
		return encodeImage(dc)
	}

	maxAmount := 0.0
	for _, p := range points {
		maxAmount = math.Max(maxAmount, p.Amount)
	}
	top := niceCeil(maxAmount)

	plotW := float64(chartWidth - chartPadLeft - chartPadRight)
	plotH := float64(chartHeight - chartPadTop - chartPadBottom)
	baseY := float64(chartHeight - chartPadBottom)

	drawGrid(dc, top, plotW, plotH, baseY)
	drawBars(dc, points, top, plotW, plotH, baseY)

	return encodeImage(dc)
}

// drawGrid рисует горизонтальные линии и подписи оси сумм
func drawGrid(dc *gg.Context, top, plotW, plotH, baseY float64) {
	loadFont(dc, axisFontSize, FontStyleDefault)
	for i := 0; i <= chartGridLines; i++ {
		y := baseY - plotH*float64(i)/chartGridLines
		dc.SetColor(chartGridColor)
		dc.SetLineWidth(1)
		dc.DrawLine(chartPadLeft, y, chartPadLeft+plotW, y)
		dc.Stroke()

		dc.SetColor(chartTextColor)
		label := formatting.FormatRupeesShort(top * float64(i) / chartGridLines)
		dc.DrawStringAnchored(label, chartPadLeft-12, y, 1, 0.35)
	}

	dc.SetColor(chartAxisColor)
	dc.SetLineWidth(2)
	dc.DrawLine(chartPadLeft, baseY, chartPadLeft+plotW, baseY)
	dc.Stroke()
}

// drawBars рисует столбцы с подписями месяцев и сумм
func drawBars(dc *gg.Context, points []model.MonthlyPoint, top, plotW, plotH, baseY float64) {
	colW := plotW / float64(len(points))
	barW := colW * (1 - chartBarGap)

	for i, p := range points {
		x := chartPadLeft + colW*float64(i) + (colW-barW)/2
		h := 0.0
		if top > 0 {
			h = plotH * p.Amount / top
		}

		if h > 0 {
			dc.SetColor(chartShadowColor)
			dc.DrawRoundedRectangle(x+3, baseY-h+3, barW, h-3, chartBarRadius)
			dc.Fill()

			dc.SetColor(chartBarColor)
			dc.DrawRoundedRectangle(x, baseY-h, barW, h, chartBarRadius)
			dc.Fill()
		}

		loadFont(dc, barLabelFontSize, FontStyleBold)
		dc.SetColor(chartTextColor)
		dc.DrawStringAnchored(formatting.FormatRupeesShort(p.Amount), x+barW/2, baseY-h-12, 0.5, 0)

		loadFont(dc, axisFontSize, FontStyleDefault)
		dc.DrawStringAnchored(formatting.FormatMonthLabel(p), x+barW/2, baseY+28, 0.5, 0.5)
	}
}

// niceCeil округляет максимум шкалы вверх до 1, 2 или 5 * 10^n
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 5, 10} {
		if v <= m*exp {
			return m * exp
		}
	}
	return 10 * exp
}

// encodeImage кодирует изображение в PNG
func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
