package renderer

import "image"

// Frame 是某个 tick 下屏幕内容的快照，点亮像素为黑色。
type Frame struct {
	Tick  int
	Image *image.Gray
}

// Renderer 将帧序列输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(frames []Frame) ([]byte, error)
}
