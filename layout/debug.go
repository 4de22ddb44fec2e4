package layout

import (
	"encoding/json"
	"os"
)

// DebugFrame 记录某个 tick 绘制时产生的全部 block。
type DebugFrame struct {
	Tick   int      `json:"tick"`
	Blocks []*Block `json:"blocks"`
}

// WriteDebugJSON 将排版结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(frames []DebugFrame, path string) error {
	if len(frames) == 0 {
		return nil
	}
	data, err := json.MarshalIndent(frames, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
