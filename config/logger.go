package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"lbe/misc"
)

type LoggerConfig struct {
	Level       string `yaml:"level" validate:"required,oneof=none debug normal"`
	Destination string `yaml:"destination,omitempty" sanitize:"path_clean,assure_dir_exists_for_file" validate:"omitempty,filepath"`
	Mode        string `yaml:"mode,omitempty" validate:"omitempty,oneof=append overwrite"`
	// Format of file log, import and edit runs could be processed by tools
	// when it is json.
	Format string `yaml:"format,omitempty" validate:"omitempty,oneof=console json"`
}

type LoggingConfig struct {
	FileLogger    LoggerConfig `yaml:"file"`
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// minLevel maps configured level name to the lowest enabled zap level.
func minLevel(name string) (zapcore.Level, bool) {
	switch name {
	case "debug":
		return zapcore.DebugLevel, true
	case "normal":
		return zapcore.InfoLevel, true
	}
	return zapcore.InvalidLevel, false
}

func consoleEncoderConfig(stream *os.File) zapcore.EncoderConfig {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if EnableColorOutput(stream) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return ec
}

// consoleCores splits console output: errors go to stderr with short error
// messages, everything else enabled goes to stdout.
func consoleCores(level string) (zapcore.Core, zapcore.Core) {
	lowest, ok := minLevel(level)
	if !ok {
		return zapcore.NewNopCore(), zapcore.NewNopCore()
	}
	lp := zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig(os.Stdout)), zapcore.Lock(os.Stdout),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lowest <= lvl && lvl < zapcore.ErrorLevel
		}))
	hp := zapcore.NewCore(newShortErrorEncoder(consoleEncoderConfig(os.Stderr)), zapcore.Lock(os.Stderr),
		zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.ErrorLevel
		}))
	return hp, lp
}

func fileEncoder(format string) zapcore.Encoder {
	if format == "json" {
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
}

func openLog(fname, mode string) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if mode == "append" {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(fname, flags, 0644)
}

// Prepare returns our standard logger - configured zap logger for use by the program.
func (conf *LoggingConfig) Prepare(rpt *Report) (*zap.Logger, error) {
	consoleCoreHP, consoleCoreLP := consoleCores(conf.ConsoleLogger.Level)

	levelRequested, modeRequested := conf.FileLogger.Level, conf.FileLogger.Mode
	if rpt != nil {
		// report always gets everything
		levelRequested, modeRequested = "debug", "overwrite"
	}

	var (
		fileCore = zapcore.NewNopCore()
		newName  string
	)
	if lowest, ok := minLevel(levelRequested); ok {
		enc, level := fileEncoder(conf.FileLogger.Format), zap.NewAtomicLevelAt(lowest)

		// capture panic log if possible, quietly ignore failures
		ef, err := openLog(filepath.Join(filepath.Dir(conf.FileLogger.Destination), misc.GetAppName()+"-panic.log"), modeRequested)
		if err != nil {
			ef, err = os.CreateTemp("", misc.GetAppName()+"-panic.*.log")
		}
		if err == nil {
			debug.SetCrashOutput(ef, debug.CrashOptions{})
			rpt.Store("panic.log", ef.Name())
			ef.Close()
		}

		f, err := openLog(conf.FileLogger.Destination, modeRequested)
		if err != nil {
			if f, err = os.CreateTemp("", misc.GetAppName()+".*.log"); err != nil {
				return nil, fmt.Errorf("unable to access file log destination (%s): %w", conf.FileLogger.Destination, err)
			}
			newName = f.Name()
		}
		fileCore = zapcore.NewCore(enc, zapcore.Lock(f), level)
		rpt.Store("final.log", f.Name())
	}

	core := zap.New(zapcore.NewTee(consoleCoreHP, consoleCoreLP, fileCore), zap.AddCaller())
	if len(newName) != 0 {
		core.Warn("Log file was redirected to new location", zap.String("location", newName))
	}
	return core.Named(misc.GetAppName()), nil
}

// shortErrorEncoder drops verbose error details (stacks from wrapped
// errors) from console output, file log keeps them.
type shortErrorEncoder struct {
	zapcore.Encoder
}

func newShortErrorEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return shortErrorEncoder{zapcore.NewConsoleEncoder(cfg)}
}

func (c shortErrorEncoder) Clone() zapcore.Encoder {
	return shortErrorEncoder{c.Encoder.Clone()}
}

func (c shortErrorEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	newFields := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			if e, ok := f.Interface.(error); ok {
				f.Interface = errors.New(e.Error())
			}
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}
