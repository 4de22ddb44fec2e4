package logger

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Entry 暴露底层类型，调用方无需直接依赖 logrus。
type Entry = logrus.Entry

// rootLogger 在进程内唯一，包级 Named 入口持有它的指针，只能原地修改。
var rootLogger = newRoot()

func newRoot() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(PlainFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Configure 原地设置全局日志级别与输出；level 为空时保持当前级别。
func Configure(level string, out io.Writer) error {
	if out != nil {
		rootLogger.SetOutput(out)
	}
	if strings.TrimSpace(level) == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("无效的日志级别 %q: %w", level, err)
	}
	rootLogger.SetLevel(lvl)
	return nil
}

// Named 为指定组件创建入口，统一 component 字段。
func Named(component string) *Entry {
	entry := logrus.NewEntry(rootLogger)
	if component != "" {
		entry = entry.WithField("component", component)
	}
	return entry
}

// PlainFormatter 输出格式：[timestamp] [LEVEL] [component] message k=v...
type PlainFormatter struct{}

// Format 实现 logrus Formatter。
func (PlainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry == nil {
		return []byte{}, nil
	}
	parts := []string{
		fmt.Sprintf("[%s]", entry.Time.UTC().Format(time.RFC3339)),
		fmt.Sprintf("[%s]", strings.ToUpper(entry.Level.String())),
	}
	if component, ok := entry.Data["component"].(string); ok && component != "" {
		parts = append(parts, fmt.Sprintf("[%s]", component))
	}
	parts = append(parts, entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k != "component" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, entry.Data[k]))
	}
	return []byte(strings.Join(parts, " ") + "\n"), nil
}
