// Package bitmap 实现 1 bit 单色帧缓冲画布，字形由 golang.org/x/image 栅格化后按阈值二值化。
package bitmap

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/monoglyph/fonts"
	"github.com/ByLCY/monoglyph/layout"
	"github.com/ByLCY/monoglyph/logger"
	"github.com/ByLCY/monoglyph/markup"
)

var log = logger.Named("bitmap")

// 默认屏幕尺寸。
const (
	DefaultWidth  = 128
	DefaultHeight = 64
)

// alphaThreshold 以上的覆盖率视为点亮。
const alphaThreshold = 0x8000

// FontOptions 控制字形栅格化尺寸。
type FontOptions struct {
	Size float64 // 字号（pt）
	DPI  float64
}

// DefaultFontOptions 在 72 DPI 下使用 8pt，约 8px 行高。
func DefaultFontOptions() FontOptions {
	return FontOptions{Size: 8, DPI: 72}
}

// Screen 是单色帧缓冲，实现 elements.Canvas。
type Screen struct {
	width, height int
	pix           []bool
	faces         [3]font.Face
	clip          image.Rectangle
}

// New 创建指定尺寸的屏幕，并加载主字体、粗体、等宽三种字形。
func New(width, height int, opts FontOptions) (*Screen, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("屏幕尺寸无效: %dx%d", width, height)
	}
	if opts.Size <= 0 {
		opts.Size = DefaultFontOptions().Size
	}
	if opts.DPI <= 0 {
		opts.DPI = DefaultFontOptions().DPI
	}
	s := &Screen{
		width:  width,
		height: height,
		pix:    make([]bool, width*height),
	}
	s.clip = s.bounds()
	s.faces[markup.FontPrimary] = loadFace(fonts.Regular, opts)
	s.faces[markup.FontBold] = loadFace(fonts.Bold, opts)
	s.faces[markup.FontMono] = loadFace(fonts.Mono, opts)
	return s, nil
}

func loadFace(name string, opts FontOptions) font.Face {
	fallback := func(err error) font.Face {
		log.WithField("font", name).WithField("err", err).Warn("字体加载失败，使用 basicfont")
		return basicfont.Face7x13
	}
	data, err := fonts.Load(name)
	if err != nil {
		return fallback(err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return fallback(err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    opts.Size,
		DPI:     opts.DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fallback(err)
	}
	return face
}

func (s *Screen) bounds() image.Rectangle { return image.Rect(0, 0, s.width, s.height) }

func (s *Screen) face(f markup.Font) font.Face {
	if int(f) < len(s.faces) && s.faces[f] != nil {
		return s.faces[f]
	}
	return s.faces[markup.FontPrimary]
}

// GlyphWidth 返回字形步进宽度（取整到像素）；字体缺字时按 '?' 计算。
func (s *Screen) GlyphWidth(f markup.Font, r rune) int {
	face := s.face(f)
	adv, ok := face.GlyphAdvance(r)
	if !ok {
		adv, _ = face.GlyphAdvance('?')
	}
	return adv.Round()
}

// FontHeight 返回字体行高。
func (s *Screen) FontHeight(f markup.Font) int {
	return s.face(f).Metrics().Height.Ceil()
}

// Size 返回屏幕像素尺寸。
func (s *Screen) Size() (int, int) { return s.width, s.height }

// Clear 熄灭所有像素。
func (s *Screen) Clear() {
	for i := range s.pix {
		s.pix[i] = false
	}
}

// Pixel 报告 (x, y) 是否点亮，越界返回 false。
func (s *Screen) Pixel(x, y int) bool {
	if !image.Pt(x, y).In(s.bounds()) {
		return false
	}
	return s.pix[y*s.width+x]
}

// Set 设置单个像素，越界或位于裁剪区外时忽略。
func (s *Screen) Set(x, y int, on bool) {
	if !image.Pt(x, y).In(s.clip) {
		return
	}
	s.pix[y*s.width+x] = on
}

// Fill 把矩形内像素全部置为 on。
func (s *Screen) Fill(r layout.Rect, on bool) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			s.Set(x, y, on)
		}
	}
}

// DrawRun 以 (x, y) 为左上角绘制文本。反色时先点亮整行高度的底框，再以熄灭像素绘制字形。
func (s *Screen) DrawRun(x, y int, style markup.Style, text string) {
	f := style.Font()
	face := s.face(f)
	ink := true
	if style.Inverted() {
		s.Fill(layout.Rect{X: x, Y: y, Width: layout.TextWidth(s, f, text), Height: s.FontHeight(f)}, true)
		ink = false
	}
	baseline := y + face.Metrics().Ascent.Ceil()
	dot := x
	for _, r := range text {
		dr, mask, mp, _, ok := face.Glyph(fixed.P(dot, baseline), r)
		if !ok {
			dr, mask, mp, _, ok = face.Glyph(fixed.P(dot, baseline), '?')
		}
		if ok {
			s.stamp(dr, mask, mp, ink)
		}
		dot += s.GlyphWidth(f, r)
	}
}

func (s *Screen) stamp(dr image.Rectangle, mask image.Image, mp image.Point, ink bool) {
	for py := dr.Min.Y; py < dr.Max.Y; py++ {
		for px := dr.Min.X; px < dr.Max.X; px++ {
			_, _, _, a := mask.At(mp.X+px-dr.Min.X, mp.Y+py-dr.Min.Y).RGBA()
			if a >= alphaThreshold {
				s.Set(px, py, ink)
			}
		}
	}
}

// DrawFrame 画 1px 圆角边框（四个角点留空）。
func (s *Screen) DrawFrame(r layout.Rect) {
	if r.Empty() {
		return
	}
	right, bottom := r.X+r.Width-1, r.Y+r.Height-1
	for x := r.X + 1; x < right; x++ {
		s.Set(x, r.Y, true)
		s.Set(x, bottom, true)
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.Set(r.X, y, true)
		s.Set(right, y, true)
	}
}

// SetClip 限制后续绘制范围，与屏幕边界取交集。
func (s *Screen) SetClip(r layout.Rect) {
	s.clip = image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height).Intersect(s.bounds())
}

// ResetClip 恢复为整个屏幕。
func (s *Screen) ResetClip() { s.clip = s.bounds() }

// Image 导出灰度图：点亮像素为黑色，其余为白色。
func (s *Screen) Image() *image.Gray {
	img := image.NewGray(s.bounds())
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			c := color.Gray{Y: 0xFF}
			if s.pix[y*s.width+x] {
				c.Y = 0
			}
			img.SetGray(x, y, c)
		}
	}
	return img
}

// String 以 '#'/'.' 文本形式输出帧缓冲，便于调试。
func (s *Screen) String() string {
	var b strings.Builder
	b.Grow((s.width + 1) * s.height)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			if s.pix[y*s.width+x] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
