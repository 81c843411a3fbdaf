package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Messages carries encoded log entries to whoever presents them,
// usually the plain stdout consumer in cmd/tiltmidi.
var Messages = make(chan []byte, 128)

const (
	ErrorLvl   = 0
	WarningLvl = 1
	InfoLvl    = 2
	ActionLvl  = 3
	EventsLvl  = 4
	SamplesLvl = 5

	DebugLvl = 378
)

var (
	Error   = zap.Int("level", ErrorLvl)
	Warning = zap.Int("level", WarningLvl)
	Info    = zap.Int("level", InfoLvl)
	Action  = zap.Int("level", ActionLvl)
	Events  = zap.Int("level", EventsLvl)
	Samples = zap.Int("level", SamplesLvl)

	Debug = zap.Int("level", DebugLvl)
)

type chanWriter struct {
	sync.Mutex
}

func (w *chanWriter) Write(p []byte) (n int, err error) {
	w.Lock()
	var newSlice = make([]byte, len(p))
	copy(newSlice, p)
	Messages <- newSlice
	w.Unlock()
	return len(p), nil
}

func (w *chanWriter) Sync() error {
	return nil
}

func GetLogger() *zap.Logger {
	writer := &chanWriter{}
	cfg := zap.NewProductionEncoderConfig()
	cfg.SkipLineEnding = true
	cfg.EncodeTime = zapcore.EpochNanosTimeEncoder
	cfg.LevelKey = ""
	encoder := zapcore.NewJSONEncoder(cfg)

	return zap.New(
		zapcore.NewCore(encoder, zapcore.Lock(writer), zap.DebugLevel),
		zap.AddCaller(),
	)
}
