package binding

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// TickVar 是每帧解析为当前 tick 的保留变量名。
const TickVar = "tick"

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Scope 是一次插值可见的数据：JSON 文档与当前 tick。
type Scope struct {
	Data any
	Tick int
}

// LoadJSON 读取 JSON 数据文件，作为 Scope.Data 使用。
func LoadJSON(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取数据文件失败: %w", err)
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("解析数据文件 %s 失败: %w", path, err)
	}
	return data, nil
}

// Interpolate 将文本中的 ${path.to[0].value} 替换为 scope 中的值，${tick} 替换为当前 tick。
// 路径不存在时保留原占位符。
func Interpolate(text string, scope Scope) string {
	if !strings.Contains(text, "${") {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		if path == TickVar {
			return strconv.Itoa(scope.Tick)
		}
		if scope.Data == nil {
			return match
		}
		if val, ok := resolvePath(scope.Data, path); ok {
			return format(val)
		}
		return match
	})
}

// DependsOnTick 报告文本是否引用了 ${tick}，即每帧内容都可能不同。
func DependsOnTick(text string) bool {
	for _, m := range exprPattern.FindAllStringSubmatch(text, -1) {
		if strings.TrimSpace(m[1]) == TickVar {
			return true
		}
	}
	return false
}

func format(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]any, []any:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	default:
		return fmt.Sprint(v)
	}
}

func resolvePath(data any, path string) (any, bool) {
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes := parseSegment(segment)
		if name != "" {
			var ok bool
			if current, ok = descendMap(current, name); !ok {
				return nil, false
			}
		}
		for _, idxStr := range indexes {
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, false
			}
			var ok bool
			if current, ok = descendArray(current, idx); !ok {
				return nil, false
			}
		}
	}
	return current, true
}

func parseSegment(segment string) (string, []string) {
	name := segment
	var indexes []string
	if i := strings.Index(segment, "["); i != -1 {
		name = segment[:i]
		rest := segment[i:]
		for len(rest) > 0 && rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				break
			}
			indexes = append(indexes, rest[1:end])
			rest = rest[end+1:]
		}
	}
	return name, indexes
}

func descendMap(current any, key string) (any, bool) {
	c, ok := current.(map[string]any)
	if !ok {
		return nil, false
	}
	val, ok := c[key]
	return val, ok
}

func descendArray(current any, idx int) (any, bool) {
	c, ok := current.([]any)
	if !ok || idx < 0 || idx >= len(c) {
		return nil, false
	}
	return c[idx], true
}
