package fonts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-fonts/latin-modern/lmmono10regular"
	"github.com/go-fonts/latin-modern/lmroman10bold"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// 屏幕字体使用 Go 字体族；PDF 标注使用 Latin Modern。
const (
	Regular   = "regular"
	Bold      = "bold"
	Mono      = "mono"
	Serif     = "serif"
	SerifBold = "serif-bold"
	SerifMono = "serif-mono"
)

var builtin = map[string][]byte{
	Regular:   goregular.TTF,
	Bold:      gobold.TTF,
	Mono:      gomono.TTF,
	Serif:     lmroman10regular.TTF,
	SerifBold: lmroman10bold.TTF,
	SerifMono: lmmono10regular.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:bold" 或直接 "bold"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "embed:")))
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("未知的内置字体 %q（可选: %s）", name, strings.Join(Names(), ", "))
	}
	return data, nil
}

// Names 按字母序返回所有内置字体名。
func Names() []string {
	names := make([]string, 0, len(builtin))
	for k := range builtin {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
