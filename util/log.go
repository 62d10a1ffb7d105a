package util

import (
	"fmt"
	"os"
	"sync"
	"time"
)

/*
 * a small leveled logger. Writes to stderr and, when a filename is
 * configured, appends to that file as well.
 */

const (
	Error   = 1
	Warning = 2
	Info    = 4

	RedColor    = "\033[31m"
	YellowColor = "\033[33m"
	CyanColor   = "\033[36m"
	ResetColor  = "\033[0m"
)

type LoggerInfo struct {
	Filename  string `yaml:"filename"`
	IsColored bool   `yaml:"is_colored"`
	SaveTime  bool   `yaml:"save_time"`
	Mode      uint8  `yaml:"mode"`
}

type Logger struct {
	li  *LoggerInfo
	mtx sync.Mutex
}

func NewLogger(li *LoggerInfo) *Logger {
	return &Logger{li: li}
}

func (l *Logger) colorize(line string, color string) string {
	if l.li.IsColored {
		return color + line + ResetColor
	}
	return line
}

func (l *Logger) prepareString(str string, clr string) string {
	toWrite := l.colorize(str, clr) + " "
	if l.li.SaveTime {
		toWrite += time.Now().Format(time.RFC3339) + " "
	}
	return toWrite
}

func (l *Logger) LogString(s string) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	fmt.Fprintln(os.Stderr, s)
	if l.li.Filename != "" {
		f, err := os.OpenFile(l.li.Filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err == nil {
			defer f.Close()
			f.WriteString(s + "\n")
		}
	}
}

func (l *Logger) LogError(err error) {
	if l.li.Mode&Error == Error {
		l.LogString(l.prepareString("[ERROR]", RedColor) + err.Error())
	}
}

func (l *Logger) LogWarning(warning string) {
	if l.li.Mode&Warning == Warning {
		l.LogString(l.prepareString("[WARNING]", YellowColor) + warning)
	}
}

func (l *Logger) LogInfo(info string) {
	if l.li.Mode&Info == Info {
		l.LogString(l.prepareString("[INFO]", CyanColor) + info)
	}
}
