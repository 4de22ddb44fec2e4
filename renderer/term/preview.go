package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
)

// DrawFunc 在给定 tick 下绘制一帧。
type DrawFunc func(c *Canvas, tick int)

// Animate 以 interval 为周期递增 tick 并重绘，直到 ctx 结束或用户按下 Esc、q、Ctrl-C。
// tick 从 1 开始，0 保留给静态渲染。屏幕的 Init/Fini 由调用方负责。
func Animate(ctx context.Context, screen tcell.Screen, interval time.Duration, draw DrawFunc) error {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	canvas := New(screen)
	events := make(chan tcell.Event, 8)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	tick := 1
	render := func() {
		canvas.Clear()
		draw(canvas, tick)
		screen.Show()
	}
	render()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
				render()
			}
		case <-ticker.C:
			tick++
			render()
		}
	}
}
