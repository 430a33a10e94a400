package server

import (
	"html/template"
	"strconv"
	"time"
)

var templateFuncs = template.FuncMap{
	"cm":   func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) },
	"inc":  func(i int) int { return i + 1 },
	"when": formatWhen,
}

func formatWhen(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04")
}
