package shared

import (
	"log"
	"os"
	"os/exec"
	"regexp"
)

const Prefix = "[svbench]"

type Logger struct {
	*log.Logger
}

// Write lets the logger stand in as Stderr for external programs.
func (l *Logger) Write(b []byte) (int, error) {
	l.Logger.Print(string(b))
	return len(b), nil
}

var Slogger *Logger

func init() {
	l := log.New(os.Stderr, Prefix+" ", log.Ldate|log.Ltime)
	Slogger = &Logger{Logger: l}
}

// HasProg returns "Y" if p is on the $PATH and " " otherwise.
func HasProg(p string) string {
	if _, err := exec.LookPath(p); err == nil {
		return "Y"
	}
	return " "
}

// Contains reports whether needle is in haystack. Entries that start with
// '~' are treated as regular expressions.
func Contains(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == "" {
			continue
		}
		if h[0] != '~' && h == needle {
			return true
		}
		if h[0] == '~' {
			if match, _ := regexp.MatchString(h[1:], needle); match {
				return true
			}
		}
	}
	return false
}
