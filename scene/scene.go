// Package scene 把解析后的屏幕脚本转换为带类型的元素列表，并在每个 tick 通过 elements 绘制。
package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ByLCY/monoglyph/binding"
	"github.com/ByLCY/monoglyph/dsl"
	"github.com/ByLCY/monoglyph/elements"
	"github.com/ByLCY/monoglyph/layout"
	"github.com/ByLCY/monoglyph/markup"
)

var (
	// ErrUnknownElement 表示脚本中出现了未知的元素名或设置项。
	ErrUnknownElement = errors.New("unknown element")
	// ErrInvalidArgs 表示元素参数缺失、多余或类型不符。
	ErrInvalidArgs = errors.New("invalid element arguments")
)

// Kind 是元素类型，取值与脚本中的命令名一致。
type Kind string

const (
	KindTextBox   Kind = "text_box"
	KindMultiline Kind = "multiline"
	KindAligned   Kind = "aligned"
	KindFramed    Kind = "framed"
	KindScroll    Kind = "scroll"
	KindFit       Kind = "fit"
)

// Element 是一条已校验的绘制指令。Text 保留未插值的原文，每帧重新绑定。
type Element struct {
	Kind       Kind
	Pos        string
	X, Y       int
	Width      int
	Height     int
	Horizontal layout.Align
	Vertical   layout.Align
	Dots       bool
	Ellipsis   bool
	Centered   bool
	Text       string
}

// Scene 是一个屏幕：尺寸、绘制参数与元素列表。
type Scene struct {
	Name     string
	Width    int
	Height   int
	Options  elements.Options
	Elements []Element
}

// Animated 报告场景是否随 tick 变化（含滚动元素或引用 ${tick}）。
func (s *Scene) Animated() bool {
	for _, el := range s.Elements {
		if el.Kind == KindScroll || binding.DependsOnTick(el.Text) {
			return true
		}
	}
	return false
}

// Build 校验脚本并构建场景。base 是脚本中未设置时使用的绘制参数。
func Build(script *dsl.Script, base elements.Options) ([]*Scene, error) {
	if script == nil || len(script.Screens) == 0 {
		return nil, fmt.Errorf("脚本中缺少 screen")
	}
	scenes := make([]*Scene, 0, len(script.Screens))
	seen := map[string]bool{}
	for _, screen := range script.Screens {
		if seen[screen.Name] {
			return nil, fmt.Errorf("%s: screen %s 重复定义", screen.Pos, screen.Name)
		}
		seen[screen.Name] = true
		sc, err := buildScreen(screen, base)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, sc)
	}
	return scenes, nil
}

// Find 按名称查找场景，name 为空时返回第一个。
func Find(scenes []*Scene, name string) (*Scene, error) {
	if len(scenes) == 0 {
		return nil, fmt.Errorf("没有可用的 screen")
	}
	if name == "" {
		return scenes[0], nil
	}
	for _, sc := range scenes {
		if sc.Name == name {
			return sc, nil
		}
	}
	return nil, fmt.Errorf("screen %s 未定义", name)
}

func buildScreen(screen *dsl.Screen, base elements.Options) (*Scene, error) {
	if screen.Size.Width <= 0 || screen.Size.Height <= 0 {
		return nil, fmt.Errorf("%s: screen %s 尺寸无效", screen.Pos, screen.Name)
	}
	sc := &Scene{
		Name:    screen.Name,
		Width:   screen.Size.Width,
		Height:  screen.Size.Height,
		Options: base,
	}
	for _, stmt := range screen.Statements {
		switch {
		case stmt.Assignment != nil:
			if err := applySetting(&sc.Options, stmt.Assignment); err != nil {
				return nil, err
			}
		case stmt.Command != nil:
			el, err := buildElement(stmt.Command)
			if err != nil {
				return nil, err
			}
			sc.Elements = append(sc.Elements, el)
		}
	}
	return sc, nil
}

func applySetting(opts *elements.Options, a *dsl.Assignment) error {
	key := strings.ToLower(a.Key)
	if key == "ellipsis" {
		if !a.Value.IsString() {
			return fmt.Errorf("%s: ellipsis 需要字符串: %w", a.Pos, ErrInvalidArgs)
		}
		opts.Ellipsis = a.Value.Value
		return nil
	}
	var target *int
	switch key {
	case "pause", "pause_ticks":
		target = &opts.PauseTicks
	case "max_lines":
		target = &opts.MaxLines
	case "frame_margin":
		target = &opts.FrameMargin
	default:
		return fmt.Errorf("%s: 设置项 %s: %w", a.Pos, a.Key, ErrUnknownElement)
	}
	v, err := a.Value.Int()
	if err != nil {
		return fmt.Errorf("%s: %s: %v: %w", a.Pos, a.Key, err, ErrInvalidArgs)
	}
	if v < 0 {
		return fmt.Errorf("%s: %s 不能为负: %w", a.Pos, a.Key, ErrInvalidArgs)
	}
	*target = v
	return nil
}

func buildElement(cmd *dsl.Command) (Element, error) {
	el := Element{Kind: Kind(cmd.Name), Pos: cmd.Pos.String()}
	args := &argReader{cmd: cmd}
	switch el.Kind {
	case KindTextBox:
		args.ints(&el.X, &el.Y, &el.Width, &el.Height)
		el.Horizontal = args.align("horizontal")
		el.Vertical = args.align("vertical")
		el.Dots = args.flag("dots")
	case KindMultiline, KindFramed:
		args.ints(&el.X, &el.Y)
	case KindAligned:
		args.ints(&el.X, &el.Y)
		el.Horizontal = args.align("horizontal")
		el.Vertical = args.align("vertical")
	case KindScroll:
		args.ints(&el.X, &el.Y, &el.Width)
		el.Ellipsis = args.flag("ellipsis")
		el.Centered = args.flag("centered")
	case KindFit:
		args.ints(&el.X, &el.Y, &el.Width)
	default:
		return el, fmt.Errorf("%s: %s: %w", cmd.Pos, cmd.Name, ErrUnknownElement)
	}
	el.Text = args.text()
	args.end()
	if args.err != nil {
		return el, args.err
	}
	return el, nil
}

// argReader 按顺序读取命令参数，记录第一个错误。
type argReader struct {
	cmd *dsl.Command
	i   int
	err error
}

func (r *argReader) fail(format string, a ...any) {
	if r.err == nil {
		r.err = fmt.Errorf("%s: %s: %s: %w", r.cmd.Pos, r.cmd.Name, fmt.Sprintf(format, a...), ErrInvalidArgs)
	}
}

func (r *argReader) next() *dsl.Lexeme {
	if r.i >= len(r.cmd.Args) {
		return nil
	}
	lx := r.cmd.Args[r.i]
	r.i++
	return lx
}

func (r *argReader) ints(dst ...*int) {
	for _, d := range dst {
		lx := r.next()
		if lx == nil {
			r.fail("参数不足")
			return
		}
		v, err := lx.Int()
		if err != nil {
			r.fail("%v", err)
			return
		}
		*d = v
	}
}

func (r *argReader) align(name string) layout.Align {
	lx := r.next()
	if lx == nil || lx.Type != "Ident" {
		r.fail("缺少 %s 对齐方式", name)
		return layout.AlignStart
	}
	a, ok := layout.ParseAlign(lx.Value)
	if !ok {
		r.fail("未知的 %s 对齐方式 %q", name, lx.Value)
	}
	return a
}

// flag 读取一个可选的标识符开关。
func (r *argReader) flag(name string) bool {
	if r.i < len(r.cmd.Args) {
		lx := r.cmd.Args[r.i]
		if lx.Type == "Ident" && lx.Value == name {
			r.i++
			return true
		}
	}
	return false
}

func (r *argReader) text() string {
	lx := r.next()
	if lx == nil || !lx.IsString() {
		r.fail("缺少文本")
		return ""
	}
	return lx.Value
}

func (r *argReader) end() {
	if r.i < len(r.cmd.Args) {
		r.fail("多余的参数 %s", r.cmd.Args[r.i].Raw)
	}
}

// Draw 在给定 tick 下绘制所有元素，返回产生的排版结果。
func (s *Scene) Draw(p *elements.Painter, scope binding.Scope) []*layout.Block {
	blocks := make([]*layout.Block, 0, len(s.Elements))
	for _, el := range s.Elements {
		text := binding.Interpolate(el.Text, scope)
		var block *layout.Block
		switch el.Kind {
		case KindTextBox:
			block = p.TextBox(el.X, el.Y, el.Width, el.Height, el.Horizontal, el.Vertical, text, el.Dots)
		case KindMultiline:
			block = p.Multiline(el.X, el.Y, text)
		case KindAligned:
			block = p.MultilineAligned(el.X, el.Y, el.Horizontal, el.Vertical, text)
		case KindFramed:
			block = p.MultilineFramed(el.X, el.Y, text)
		case KindScroll:
			block = p.ScrollableTextLineCentered(el.X, el.Y, el.Width, text, scope.Tick, el.Ellipsis, el.Centered)
		case KindFit:
			block = p.Multiline(el.X, el.Y, p.FitWidth(markup.Strip(text), el.Width))
		}
		blocks = append(blocks, block)
	}
	return blocks
}
