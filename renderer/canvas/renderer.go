package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strconv"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/monoglyph/fonts"
	"github.com/ByLCY/monoglyph/renderer"
)

// 默认输出参数。
const (
	DefaultCaptionSize = 7.0 // pt
	captionLeading     = 1.6
)

var (
	backgroundColor = canvas.Hex("#c7d3b8") // 屏幕底色
	pixelColor      = canvas.Hex("#1e2418") // 点亮像素
	captionColor    = color.RGBA{R: 30, G: 30, B: 30, A: 255}
)

// Options 配置 PDF 输出。
type Options struct {
	PixelPitch  Length // 每个像素的边长，默认 0.5mm
	Margin      Length // 屏幕四周留白，默认 4mm
	Caption     bool   // 是否在屏幕下方标注 tick
	CaptionFont string // fonts 包中的字体名，默认 serif
	CaptionSize float64
	Title       string
}

// Renderer 把帧序列绘制为多页 PDF：每个 tick 一页，点亮像素绘制为方块。
type Renderer struct {
	opts Options

	fontOnce sync.Once
	family   *canvas.FontFamily
	fontErr  error
}

var _ renderer.Renderer = (*Renderer)(nil)

// NewRenderer 创建 PDF 渲染器，零值字段使用默认值。
func NewRenderer(opts Options) *Renderer {
	if opts.PixelPitch.IsZero() {
		opts.PixelPitch = Mm(0.5)
	}
	if opts.Margin.IsZero() {
		opts.Margin = Mm(4)
	}
	if opts.CaptionFont == "" {
		opts.CaptionFont = fonts.Serif
	}
	if opts.CaptionSize <= 0 {
		opts.CaptionSize = DefaultCaptionSize
	}
	return &Renderer{opts: opts}
}

// Render 将帧序列渲染为 PDF 字节。
func (r *Renderer) Render(frames []renderer.Frame) ([]byte, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("缺少可渲染的帧")
	}
	var face *canvas.FontFace
	if r.opts.Caption {
		var err error
		if face, err = r.captionFace(); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	var writer *pdf.PDF
	for i, frame := range frames {
		if frame.Image == nil {
			return nil, fmt.Errorf("第 %d 帧缺少图像", i)
		}
		w, h := r.pageSize(frame.Image.Bounds())
		if writer == nil {
			writer = pdf.New(&buf, w, h, nil)
			writer.SetInfo(r.opts.Title, "", "", "", "monoglyph")
		} else {
			writer.NewPage(w, h)
		}
		c := canvas.New(w, h)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 左上角为原点，与屏幕坐标一致

		r.drawFrame(ctx, frame.Image)
		if face != nil {
			r.drawCaption(ctx, face, frame, h)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

// pageSize 返回页面尺寸（mm）。
func (r *Renderer) pageSize(b image.Rectangle) (float64, float64) {
	pitch := r.opts.PixelPitch.ToMM()
	margin := r.opts.Margin.ToMM()
	w := float64(b.Dx())*pitch + 2*margin
	h := float64(b.Dy())*pitch + 2*margin
	if r.opts.Caption {
		h += r.opts.CaptionSize * PtToMm * captionLeading
	}
	return w, h
}

func (r *Renderer) drawFrame(ctx *canvas.Context, img *image.Gray) {
	pitch := r.opts.PixelPitch.ToMM()
	margin := r.opts.Margin.ToMM()
	b := img.Bounds()

	ctx.SetStrokeColor(color.RGBA{})
	ctx.SetFillColor(backgroundColor)
	ctx.DrawPath(margin, margin, canvas.Rectangle(float64(b.Dx())*pitch, float64(b.Dy())*pitch))

	// 同一行连续点亮的像素合并为一个矩形。
	ctx.SetFillColor(pixelColor)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		start := -1
		flush := func(end int) {
			if start < 0 {
				return
			}
			x0 := margin + float64(start-b.Min.X)*pitch
			y0 := margin + float64(y-b.Min.Y)*pitch
			ctx.DrawPath(x0, y0, canvas.Rectangle(float64(end-start)*pitch, pitch))
			start = -1
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			if lit(img, x, y) {
				if start < 0 {
					start = x
				}
				continue
			}
			flush(x)
		}
		flush(b.Max.X)
	}
}

func (r *Renderer) drawCaption(ctx *canvas.Context, face *canvas.FontFace, frame renderer.Frame, pageHeight float64) {
	label := "tick " + strconv.Itoa(frame.Tick)
	if r.opts.Title != "" {
		label = r.opts.Title + " · " + label
	}
	line := canvas.NewTextLine(face, label, canvas.Left)
	baseline := pageHeight - r.opts.Margin.ToMM()/2 - face.Metrics().Descent
	ctx.DrawText(r.opts.Margin.ToMM(), baseline, line)
}

func (r *Renderer) captionFace() (*canvas.FontFace, error) {
	r.fontOnce.Do(func() {
		data, err := fonts.Load(r.opts.CaptionFont)
		if err != nil {
			r.fontErr = err
			return
		}
		family := canvas.NewFontFamily("monoglyph-caption")
		if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
			r.fontErr = fmt.Errorf("加载标注字体 %s 失败: %w", r.opts.CaptionFont, err)
			return
		}
		r.family = family
	})
	if r.fontErr != nil {
		return nil, r.fontErr
	}
	return r.family.Face(r.opts.CaptionSize, captionColor, canvas.FontRegular, canvas.FontNormal), nil
}

// lit 以 50% 灰度为界判断像素是否点亮（黑色为点亮）。
func lit(img *image.Gray, x, y int) bool {
	return img.GrayAt(x, y).Y < 0x80
}
