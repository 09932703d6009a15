package logger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

type compactFormatter struct{}

// Format renders "[02.01.2006 15:04:05] - [level] - message {k:v; k:v}".
func (f *compactFormatter) Format(e *logrus.Entry) ([]byte, error) {
	timeTag := e.Time.Format("02.01.2006 15:04:05")

	data := ""
	if len(e.Data) != 0 {
		keys := make([]string, 0, len(e.Data))
		for k := range e.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb := strings.Builder{}
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("%s:%v; ", k, e.Data[k]))
		}
		s := sb.String()
		data = fmt.Sprintf(" {%s}", s[:len(s)-2])
	}

	return []byte(fmt.Sprintf("[%s] - [%s] - %s%s\n", timeTag, e.Level, e.Message, data)), nil
}
