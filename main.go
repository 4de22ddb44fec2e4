package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ByLCY/monoglyph/binding"
	"github.com/ByLCY/monoglyph/config"
	"github.com/ByLCY/monoglyph/dsl"
	"github.com/ByLCY/monoglyph/elements"
	"github.com/ByLCY/monoglyph/layout"
	"github.com/ByLCY/monoglyph/logger"
	"github.com/ByLCY/monoglyph/renderer"
	canvasrenderer "github.com/ByLCY/monoglyph/renderer/canvas"
	"github.com/ByLCY/monoglyph/renderer/term"
	"github.com/ByLCY/monoglyph/scene"
)

// overrides 收集可重复的 -set key=value 参数。
type overrides []string

func (o *overrides) String() string     { return strings.Join(*o, ",") }
func (o *overrides) Set(v string) error { *o = append(*o, v); return nil }

type options struct {
	input       string
	config      string
	writeConfig string
	screen      string
	output      string
	pngPath     string
	debug       string
	dataPath    string
	ticks       int
	preview     bool
	interval    time.Duration
	sets        overrides
}

func main() {
	var opts options
	flag.StringVar(&opts.input, "in", "examples/player.screen", "屏幕脚本路径")
	flag.StringVar(&opts.config, "config", "", "显示配置 TOML 路径")
	flag.StringVar(&opts.screen, "screen", "", "要渲染的 screen 名称，默认第一个")
	flag.StringVar(&opts.output, "out", "output/screen.pdf", "PDF 输出路径，为空则不输出")
	flag.StringVar(&opts.pngPath, "png", "", "PNG 输出路径，多帧时追加 tick 序号")
	flag.StringVar(&opts.debug, "debug", "", "排版调试 JSON 输出路径")
	flag.StringVar(&opts.dataPath, "data", "", "绑定到脚本的 JSON 数据文件")
	flag.IntVar(&opts.ticks, "ticks", 1, "渲染的 tick 数量（动画场景）")
	flag.BoolVar(&opts.preview, "preview", false, "在终端中预览动画")
	flag.DurationVar(&opts.interval, "interval", 100*time.Millisecond, "预览时每个 tick 的间隔")
	flag.Var(&opts.sets, "set", "覆盖配置项，如 -set display.width=96（可重复）")
	flag.StringVar(&opts.writeConfig, "write-config", "", "把应用覆盖后的有效配置写入该 TOML 路径")
	flag.Parse()

	log := logger.Named("cli")
	if err := run(opts); err != nil {
		log.WithField("err", err).Fatal("渲染失败")
	}
}

// run 串联配置、解析、场景构建与输出。
func run(opts options) error {
	cfg, err := config.Load(opts.config)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	if cfg, err = config.ApplyOverrides(cfg, opts.sets); err != nil {
		return fmt.Errorf("应用配置覆盖失败: %w", err)
	}
	if err := logger.Configure(cfg.Log.Level, os.Stderr); err != nil {
		return err
	}
	log := logger.Named("cli")
	if opts.writeConfig != "" {
		if err := config.Save(opts.writeConfig, cfg); err != nil {
			return fmt.Errorf("写入配置失败: %w", err)
		}
		log.WithField("path", opts.writeConfig).Info("已写入有效配置")
	}

	sc, err := loadScene(opts.input, opts.screen, cfg.ElementOptions())
	if err != nil {
		return err
	}
	var data any
	if opts.dataPath != "" {
		if data, err = binding.LoadJSON(opts.dataPath); err != nil {
			return err
		}
	}
	log.WithField("screen", sc.Name).WithField("elements", len(sc.Elements)).Info("场景已加载")
	if sc.Width != cfg.Display.Width || sc.Height != cfg.Display.Height {
		log.WithField("screen", fmt.Sprintf("%dx%d", sc.Width, sc.Height)).
			WithField("display", fmt.Sprintf("%dx%d", cfg.Display.Width, cfg.Display.Height)).
			Warn("screen 尺寸与显示配置不一致")
	}

	if opts.preview {
		return preview(sc, data, opts.interval)
	}

	screen, err := sc.NewScreen(cfg.FontOptions())
	if err != nil {
		return err
	}
	frames, debugFrames := sc.Render(screen, data, sc.Ticks(opts.ticks))

	if opts.debug != "" {
		if err := layout.WriteDebugJSON(debugFrames, opts.debug); err != nil {
			return fmt.Errorf("写入调试 JSON 失败: %w", err)
		}
		log.WithField("path", opts.debug).Info("已写入调试 JSON")
	}
	if opts.pngPath != "" {
		if err := writePNGs(frames, opts.pngPath); err != nil {
			return err
		}
		log.WithField("path", opts.pngPath).WithField("frames", len(frames)).Info("已写入 PNG")
	}
	if opts.output != "" {
		var r renderer.Renderer = canvasrenderer.NewRenderer(cfg.PDFOptions(sc.Name))
		if err := writePDF(r, frames, opts.output); err != nil {
			return err
		}
		log.WithField("path", opts.output).WithField("pages", len(frames)).Info("已生成 PDF")
	}
	return nil
}

func loadScene(path, name string, base elements.Options) (*scene.Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开脚本 %s: %w", path, err)
	}
	defer file.Close()

	script, err := dsl.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("解析脚本失败: %w", err)
	}
	scenes, err := scene.Build(script, base)
	if err != nil {
		return nil, fmt.Errorf("构建场景失败: %w", err)
	}
	return scene.Find(scenes, name)
}

func writePDF(r renderer.Renderer, frames []renderer.Frame, path string) error {
	pdfBytes, err := r.Render(frames)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(path, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return nil
}

// writePNGs 单帧直接写入 path，多帧写为 name-0000.png、name-0001.png…
func writePNGs(frames []renderer.Frame, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for _, f := range frames {
		target := path
		if len(frames) > 1 {
			target = fmt.Sprintf("%s-%04d%s", stem, f.Tick, ext)
		}
		if err := writePNG(f, target); err != nil {
			return err
		}
	}
	return nil
}

func writePNG(f renderer.Frame, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建 PNG 失败: %w", err)
	}
	if err := png.Encode(file, f.Image); err != nil {
		file.Close()
		return fmt.Errorf("编码 PNG 失败: %w", err)
	}
	return file.Close()
}

func preview(sc *scene.Scene, data any, interval time.Duration) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("打开终端失败: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("初始化终端失败: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return term.Animate(ctx, screen, interval, func(c *term.Canvas, tick int) {
		p := &elements.Painter{Canvas: c, Options: sc.Options}
		sc.Draw(p, binding.Scope{Data: data, Tick: tick})
	})
}
