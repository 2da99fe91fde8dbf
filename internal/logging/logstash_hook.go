package logging

import (
	"errors"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// LogstashHook ships formatted entries to a Logstash TCP input from a
// background goroutine. Logging never waits on the network: entries that do
// not fit the queue, or that arrive while Logstash is unreachable, are
// dropped and counted.
type LogstashHook struct {
	addr          string
	dialTimeout   time.Duration
	writeTimeout  time.Duration
	retryInterval time.Duration
	formatter     logrus.Formatter

	queue     chan []byte
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	dropped   atomic.Uint64

	// owned by the sender goroutine
	conn      net.Conn
	nextRetry time.Time
}

type Option func(*LogstashHook)

// WithDialTimeout overrides the TCP dial timeout. Defaults to 2 seconds.
func WithDialTimeout(d time.Duration) Option {
	return func(h *LogstashHook) { h.dialTimeout = d }
}

// WithWriteTimeout overrides the per-entry write timeout. Defaults to 1 second.
func WithWriteTimeout(d time.Duration) Option {
	return func(h *LogstashHook) { h.writeTimeout = d }
}

// WithRetryInterval sets how long to wait after a failed connect or write
// before dialing again. Defaults to 5 seconds.
func WithRetryInterval(d time.Duration) Option {
	return func(h *LogstashHook) { h.retryInterval = d }
}

// WithQueueSize bounds the number of entries waiting to be sent. Defaults to 1024.
func WithQueueSize(n int) Option {
	return func(h *LogstashHook) {
		if n > 0 {
			h.queue = make(chan []byte, n)
		}
	}
}

// WithFormatter sets the entry encoding. Defaults to logrus JSON.
func WithFormatter(f logrus.Formatter) Option {
	return func(h *LogstashHook) { h.formatter = f }
}

func NewLogstashHook(addr string, opts ...Option) (*LogstashHook, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logstash: empty address")
	}

	h := &LogstashHook{
		addr:          addr,
		dialTimeout:   2 * time.Second,
		writeTimeout:  time.Second,
		retryInterval: 5 * time.Second,
		formatter:     &logrus.JSONFormatter{},
		queue:         make(chan []byte, 1024),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.wg.Add(1)
	go h.run()
	return h, nil
}

func (h *LogstashHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *LogstashHook) Fire(entry *logrus.Entry) error {
	select {
	case <-h.done:
		return nil
	default:
	}

	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	if len(line) == 0 || line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}

	select {
	case h.queue <- line:
	default:
		h.dropped.Add(1)
	}
	return nil
}

// Dropped reports how many entries never reached Logstash.
func (h *LogstashHook) Dropped() uint64 {
	return h.dropped.Load()
}

// Close flushes what is already queued, best effort, and closes the
// connection. Entries fired afterwards are ignored.
func (h *LogstashHook) Close() error {
	h.closeOnce.Do(func() {
		close(h.done)
		h.wg.Wait()
	})
	return nil
}

func (h *LogstashHook) run() {
	defer h.wg.Done()
	defer h.closeConn()

	for {
		select {
		case line := <-h.queue:
			h.send(line)
		case <-h.done:
			for {
				select {
				case line := <-h.queue:
					h.send(line)
				default:
					return
				}
			}
		}
	}
}

func (h *LogstashHook) send(line []byte) {
	if err := h.ensureConn(); err != nil {
		h.dropped.Add(1)
		return
	}
	if h.writeTimeout > 0 {
		_ = h.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
	}
	if _, err := h.conn.Write(line); err != nil {
		h.closeConn()
		h.scheduleRetry()
		h.dropped.Add(1)
	}
}

func (h *LogstashHook) ensureConn() error {
	if h.conn != nil {
		return nil
	}
	if !h.nextRetry.IsZero() && time.Now().Before(h.nextRetry) {
		return errRetryCooldown
	}

	conn, err := net.DialTimeout("tcp", h.addr, h.dialTimeout)
	if err != nil {
		h.scheduleRetry()
		return err
	}
	h.conn = conn
	h.nextRetry = time.Time{}
	return nil
}

func (h *LogstashHook) closeConn() {
	if h.conn != nil {
		_ = h.conn.Close()
		h.conn = nil
	}
}

func (h *LogstashHook) scheduleRetry() {
	if h.retryInterval <= 0 {
		h.nextRetry = time.Time{}
		return
	}
	h.nextRetry = time.Now().Add(h.retryInterval)
}

var errRetryCooldown = errors.New("logstash: retry cooldown in effect")
