package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestLogstashHookShipsEntries(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	lines := make(chan string, 2)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	logger, closer, err := New(Options{Service: "tokyo-api", LogstashAddr: ln.Addr().String()})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer.Close()
	logger.SetOutput(io.Discard)

	logger.WithField("booking_id", "b-1").Info("booking created")
	logger.Info("second entry")

	for _, want := range []string{"booking created", "second entry"} {
		select {
		case got := <-lines:
			var entry map[string]any
			if err := json.Unmarshal([]byte(got), &entry); err != nil {
				t.Fatalf("decode shipped entry %q: %v", got, err)
			}
			if entry["message"] != want || entry["service"] != "tokyo-api" {
				t.Fatalf("unexpected shipped entry %v", entry)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}
}

func TestLogstashHookDropsWhileUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	hook, err := NewLogstashHook(addr, WithDialTimeout(100*time.Millisecond), WithRetryInterval(time.Minute))
	if err != nil {
		t.Fatalf("NewLogstashHook returned error: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(hook)
	for i := 0; i < 3; i++ {
		logger.Info("dropped entry")
	}

	if err := hook.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if got := hook.Dropped(); got != 3 {
		t.Fatalf("expected 3 dropped entries, got %d", got)
	}

	logger.Info("after close")
	if got := hook.Dropped(); got != 3 {
		t.Fatalf("entries after close should be ignored, dropped=%d", got)
	}
}

func TestFatalFlushesLogstashHookBeforeExit(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	lines := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	hook, err := NewLogstashHook(ln.Addr().String())
	if err != nil {
		t.Fatalf("NewLogstashHook returned error: %v", err)
	}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(hook)

	exitCode := -1
	queued := -1
	logger.ExitFunc = func(code int) {
		exitCode = code
		queued = len(hook.queue)
	}
	closeOnExit(logger, hook)

	logger.WithField("stage", "migrate").Fatal("migrate database")

	if exitCode != 1 {
		t.Fatalf("expected exit code 1, got %d", exitCode)
	}
	if queued != 0 {
		t.Fatalf("expected queue drained before exit, %d entries left", queued)
	}
	select {
	case got := <-lines:
		var entry map[string]any
		if err := json.Unmarshal([]byte(got), &entry); err != nil {
			t.Fatalf("decode shipped entry %q: %v", got, err)
		}
		if entry["msg"] != "migrate database" || entry["level"] != "fatal" {
			t.Fatalf("unexpected shipped entry %v", entry)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("fatal entry was not shipped")
	}
}

func TestNewLogstashHookRejectsEmptyAddress(t *testing.T) {
	if _, err := NewLogstashHook("  "); err == nil {
		t.Fatalf("expected error for empty address")
	}
}

func TestNewLoggerAddsServiceField(t *testing.T) {
	logger, closer, err := New(Options{Service: "tokyo-api", Level: "debug"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer.Close()

	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.WithField("attraction_id", "2").Debug("rating recomputed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry["service"] != "tokyo-api" || entry["message"] != "rating recomputed" || entry["attraction_id"] != "2" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", logger.GetLevel())
	}
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	if got := parseLevel("chatty"); got != logrus.InfoLevel {
		t.Fatalf("expected info, got %s", got)
	}
}
