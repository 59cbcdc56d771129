package utilities

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	debugLog *log.Logger
	infoLog  *log.Logger
	warnLog  *log.Logger
	errorLog *log.Logger
	logMutex sync.Mutex
	debugOn  bool
)

func init() {
	// Until SetupLogging runs everything goes to stderr.
	debugLog = log.New(os.Stderr, "DEBUG: ", log.Ldate|log.Ltime)
	infoLog = log.New(os.Stderr, "INFO: ", log.Ldate|log.Ltime)
	warnLog = log.New(os.Stderr, "WARNING: ", log.Ldate|log.Ltime)
	errorLog = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime)
}

// LogOptions configures the rotating log files.
type LogOptions struct {
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Debug      bool
}

// SetupLogging routes the leveled loggers to rotating files under opts.Dir.
// Output is mirrored to the console only when stdout is a terminal.
func SetupLogging(opts LogOptions) error {
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	console := term.IsTerminal(int(os.Stdout.Fd()))

	infoWriter := writerFor(opts, "info.log", os.Stdout, console)
	warnWriter := writerFor(opts, "warn.log", os.Stdout, console)
	errorWriter := writerFor(opts, "error.log", os.Stderr, console)

	logMutex.Lock()
	defer logMutex.Unlock()

	debugLog = log.New(infoWriter, "DEBUG: ", log.Ldate|log.Ltime)
	infoLog = log.New(infoWriter, "INFO: ", log.Ldate|log.Ltime)
	warnLog = log.New(warnWriter, "WARNING: ", log.Ldate|log.Ltime)
	errorLog = log.New(errorWriter, "ERROR: ", log.Ldate|log.Ltime)
	debugOn = opts.Debug

	// Override Go's default log
	log.SetOutput(infoWriter)
	return nil
}

func writerFor(opts LogOptions, name string, std *os.File, console bool) io.Writer {
	file := &lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, name),
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}
	if console {
		return io.MultiWriter(std, file)
	}
	return file
}

func getCallerInfo() string {
	pc, _, _, ok := runtime.Caller(3)
	if !ok {
		return "unknown"
	}
	name := runtime.FuncForPC(pc).Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func Log(level string, format string, v ...interface{}) {
	logMutex.Lock()
	defer logMutex.Unlock()

	message := fmt.Sprintf(format, v...)
	logEntry := fmt.Sprintf("[%s] %s", getCallerInfo(), message)

	switch level {
	case "DEBUG":
		if debugOn {
			debugLog.Println(logEntry)
		}
	case "WARNING":
		warnLog.Println(logEntry)
	case "ERROR":
		errorLog.Println(logEntry)
	default:
		infoLog.Println(logEntry)
	}
}

func Debug(format string, v ...interface{}) {
	Log("DEBUG", format, v...)
}
func Info(format string, v ...interface{}) {
	Log("INFO", format, v...)
}
func Warn(format string, v ...interface{}) {
	Log("WARNING", format, v...)
}
func Error(format string, v ...interface{}) {
	Log("ERROR", format, v...)
}
