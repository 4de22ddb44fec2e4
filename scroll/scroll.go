// Package scroll 把调用方持有的 tick 计数映射为单行文本的水平滚动偏移。
//
// 控制器本身不保存任何状态：同样的 (内容宽度, 视口宽度, tick) 总是得到同样的结果，
// tick 由调用方逐帧递增并自行保存。
package scroll

// DefaultPauseTicks 是滚动到两端时停留的 tick 数。
const DefaultPauseTicks = 10

// State 是滚动字段当前所处的阶段。
type State uint8

const (
	// Idle：内容放得下，或 tick 为 0 请求静态显示。
	Idle State = iota
	// Scrolling：起点停留后每个 tick 左移 1px。
	Scrolling
	// Wrapping：到达最大偏移后停留，随后回到 0。
	Wrapping
)

func (s State) String() string {
	switch s {
	case Scrolling:
		return "scrolling"
	case Wrapping:
		return "wrapping"
	default:
		return "idle"
	}
}

// Frame 是某个 tick 下的滚动结果。
type Frame struct {
	State    State
	Offset   int
	Ellipsis bool
}

// Controller 携带停留时长；零值使用 DefaultPauseTicks。
type Controller struct {
	PauseTicks int
}

func (c Controller) pause() int {
	if c.PauseTicks <= 0 {
		return DefaultPauseTicks
	}
	return c.PauseTicks
}

// Period 返回一个完整滚动周期的 tick 数：2×停留 + (内容宽度 − 视口宽度)。
// 内容放得下时返回 0。
func (c Controller) Period(contentWidth, viewportWidth int) int {
	span := contentWidth - viewportWidth
	if span <= 0 {
		return 0
	}
	return 2*c.pause() + span
}

// Compute 计算 tick 对应的偏移。tick<=0 表示不滚动：偏移为 0，
// 内容溢出且 ellipsis 为 true 时要求调用方以省略号截断。
func (c Controller) Compute(contentWidth, viewportWidth, tick int, ellipsis bool) Frame {
	span := contentWidth - viewportWidth
	if span <= 0 {
		return Frame{State: Idle}
	}
	if tick <= 0 {
		return Frame{State: Idle, Ellipsis: ellipsis}
	}
	pause := c.pause()
	phase := tick % c.Period(contentWidth, viewportWidth)
	switch {
	case phase < pause:
		return Frame{State: Scrolling}
	case phase < pause+span:
		return Frame{State: Scrolling, Offset: phase - pause}
	default:
		return Frame{State: Wrapping, Offset: span}
	}
}

// Compute 使用默认停留时长计算滚动偏移。
func Compute(contentWidth, viewportWidth, tick int, ellipsis bool) Frame {
	return Controller{}.Compute(contentWidth, viewportWidth, tick, ellipsis)
}

// Period 使用默认停留时长计算周期。
func Period(contentWidth, viewportWidth int) int {
	return Controller{}.Period(contentWidth, viewportWidth)
}
