package log

import (
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestReplaceRoutesAndRestores(t *testing.T) {
	original := logger.Load()

	core, logs := observer.New(zapcore.DebugLevel)
	restore := Replace(zap.New(core))

	Info("lookup done", zap.String("city", "Kyiv"))
	Debug("stale response dropped")
	Warn("lookup cancelled")
	Error("boom", zap.Error(errors.New("refused")))

	if logs.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", logs.Len())
	}
	if got := logs.All()[0].ContextMap()["city"]; got != "Kyiv" {
		t.Errorf("city field: %v", got)
	}
	if got := logs.FilterLevelExact(zapcore.ErrorLevel).Len(); got != 1 {
		t.Errorf("error entries: %d", got)
	}

	restore()
	if logger.Load() != original {
		t.Fatal("restore did not bring back the previous logger")
	}
}

func TestReplaceWhileLogging(t *testing.T) {
	core, _ := observer.New(zapcore.DebugLevel)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					Debug("background lookup")
				}
			}
		}()
	}

	for i := 0; i < 100; i++ {
		restore := Replace(zap.New(core))
		restore()
	}
	close(stop)
	wg.Wait()
}
