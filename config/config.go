package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ByLCY/monoglyph/elements"
	"github.com/ByLCY/monoglyph/fonts"
	"github.com/ByLCY/monoglyph/layout"
	"github.com/ByLCY/monoglyph/renderer/bitmap"
	canvasrenderer "github.com/ByLCY/monoglyph/renderer/canvas"
	"github.com/ByLCY/monoglyph/scroll"
)

// EnvLogLevel 覆盖配置文件中的日志级别。
const EnvLogLevel = "MONOGLYPH_LOG_LEVEL"

// ErrInvalid 表示配置值不合法。
var ErrInvalid = errors.New("invalid config")

// Config 是显示配置文件（TOML）的结构。
type Config struct {
	Display Display `toml:"display"`
	Text    Text    `toml:"text"`
	Fonts   Fonts   `toml:"fonts"`
	Log     Log     `toml:"log"`
	Source  string  `toml:"-"`
}

// Display 描述目标屏幕及其 PDF 导出方式。
type Display struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	PixelPitch  string `toml:"pixel_pitch"`
	Caption     bool   `toml:"caption"`
	CaptionFont string `toml:"caption_font"`
}

// Text 对应 elements.Options。
type Text struct {
	MaxLines    int    `toml:"max_lines"`
	PauseTicks  int    `toml:"pause_ticks"`
	FrameMargin int    `toml:"frame_margin"`
	Ellipsis    string `toml:"ellipsis"`
}

// Fonts 控制帧缓冲字形栅格化。
type Fonts struct {
	Size float64 `toml:"size"`
	DPI  float64 `toml:"dpi"`
}

type Log struct {
	Level string `toml:"level"`
}

func Default() Config {
	font := bitmap.DefaultFontOptions()
	return Config{
		Display: Display{
			Width:       bitmap.DefaultWidth,
			Height:      bitmap.DefaultHeight,
			PixelPitch:  "0.5mm",
			Caption:     true,
			CaptionFont: fonts.Serif,
		},
		Text: Text{
			MaxLines:    layout.MaxLines,
			PauseTicks:  scroll.DefaultPauseTicks,
			FrameMargin: layout.FrameMargin,
			Ellipsis:    layout.DefaultEllipsis,
		},
		Fonts: Fonts{Size: font.Size, DPI: font.DPI},
		Log:   Log{Level: "info"},
	}
}

// Load 读取配置文件；path 为空或文件不存在时使用默认值。环境变量优先于文件。
func Load(path string) (Config, error) {
	cfg := Default()
	cfg.Source = path
	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			if err := toml.Unmarshal(content, &cfg); err != nil {
				return cfg, fmt.Errorf("解析配置 %s 失败: %w", path, err)
			}
		}
	}
	if env := strings.TrimSpace(os.Getenv(EnvLogLevel)); env != "" {
		cfg.Log.Level = env
	}
	return cfg, cfg.Validate()
}

// Save 以 TOML 写出配置。
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyOverrides 应用 key=value 形式的覆盖，key 为 TOML 点分路径（如 display.width）。
// 值不是合法 TOML 字面量时按字符串处理。
func ApplyOverrides(cfg Config, overrides []string) (Config, error) {
	for _, raw := range overrides {
		key, val, ok := strings.Cut(raw, "=")
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		if !ok || key == "" {
			return cfg, fmt.Errorf("%w: override %q is not key=value", ErrInvalid, raw)
		}
		next := cfg
		if err := toml.Unmarshal([]byte(key+" = "+val), &next); err != nil {
			next = cfg
			if err := toml.Unmarshal([]byte(key+" = "+strconv.Quote(val)), &next); err != nil {
				return cfg, fmt.Errorf("%w: override %q: %v", ErrInvalid, raw, err)
			}
		}
		cfg = next
	}
	return cfg, cfg.Validate()
}

// Validate 检查取值范围。
func (c Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("%w: display size %dx%d", ErrInvalid, c.Display.Width, c.Display.Height)
	}
	if _, err := canvasrenderer.ParseLength(c.Display.PixelPitch); err != nil {
		return fmt.Errorf("%w: display.pixel_pitch: %v", ErrInvalid, err)
	}
	if _, err := fonts.Load(c.Display.CaptionFont); err != nil {
		return fmt.Errorf("%w: display.caption_font: %v", ErrInvalid, err)
	}
	if c.Text.MaxLines < 0 || c.Text.PauseTicks < 0 || c.Text.FrameMargin < 0 {
		return fmt.Errorf("%w: text settings must not be negative", ErrInvalid)
	}
	if c.Fonts.Size < 0 || c.Fonts.DPI < 0 {
		return fmt.Errorf("%w: font size/dpi must not be negative", ErrInvalid)
	}
	return nil
}

// ElementOptions 转换为绘制参数。
func (c Config) ElementOptions() elements.Options {
	return elements.Options{
		MaxLines:    c.Text.MaxLines,
		PauseTicks:  c.Text.PauseTicks,
		FrameMargin: c.Text.FrameMargin,
		Ellipsis:    c.Text.Ellipsis,
	}
}

// FontOptions 转换为帧缓冲字体参数。
func (c Config) FontOptions() bitmap.FontOptions {
	return bitmap.FontOptions{Size: c.Fonts.Size, DPI: c.Fonts.DPI}
}

// PDFOptions 转换为 PDF 导出参数；title 用于文档信息与页脚标注。
func (c Config) PDFOptions(title string) canvasrenderer.Options {
	pitch, _ := canvasrenderer.ParseLength(c.Display.PixelPitch)
	return canvasrenderer.Options{
		PixelPitch:  pitch,
		Caption:     c.Display.Caption,
		CaptionFont: c.Display.CaptionFont,
		Title:       title,
	}
}
