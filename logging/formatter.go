package logging

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/tour/tui/theme"
)

const timestampLayout = "2006-01-02 15:04:05"

// TextFormatter renders one line per entry:
//
//	2026-03-01 07:00:00 [INFO] [tour] Tour transition from=pending to=active
//
// Fields are sorted, values containing spaces are quoted and the error field
// comes last.
type TextFormatter struct {
	Config FormatConfig
}

// Format implements logrus.Formatter.
func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder

	if !f.Config.DisableTimestamp {
		b.WriteString(entry.Time.Format(timestampLayout))
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "[%s]", levelLabel(entry.Level))

	if component, ok := entry.Data["component"]; ok && !f.Config.DisableComponent {
		fmt.Fprintf(&b, " [%s]", theme.DefaultTheme.Accent.Render(fmt.Sprint(component)))
	}
	if entry.HasCaller() {
		fmt.Fprintf(&b, " [%s:%d %s]",
			filepath.Base(entry.Caller.File), entry.Caller.Line, filepath.Base(entry.Caller.Function))
	}

	b.WriteByte(' ')
	b.WriteString(entry.Message)

	for _, k := range fieldOrder(entry.Data) {
		fmt.Fprintf(&b, " %s=%s", k, fieldValue(entry.Data[k]))
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

func levelLabel(l logrus.Level) string {
	if l == logrus.WarnLevel {
		return "WARN"
	}
	return strings.ToUpper(l.String())
}

func fieldOrder(data logrus.Fields) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		if k != "component" && k != logrus.ErrorKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if _, ok := data[logrus.ErrorKey]; ok {
		keys = append(keys, logrus.ErrorKey)
	}
	return keys
}

func fieldValue(v interface{}) string {
	s := fmt.Sprint(v)
	if strings.ContainsAny(s, " \t\n\"") {
		return strconv.Quote(s)
	}
	return s
}
