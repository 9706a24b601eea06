package netutil

import (
	"net"
	"sync"
	"time"

	"gitlab.com/gitlab-org/pages-gateway/metrics"
)

// keepAlivePeriod is applied to every accepted TCP connection
const keepAlivePeriod = 3 * time.Minute

// Limiter is a pool of connection slots shared by several listeners. Use
// NewLimiter to create an instance.
type Limiter struct {
	sem chan struct{}
}

// NewLimiter creates a Limiter allowing n simultaneous connections
func NewLimiter(n int) *Limiter {
	metrics.LimitListenerMaxConns.Set(float64(n))

	return &Limiter{sem: make(chan struct{}, n)}
}

// SharedLimitListener returns a Listener that accepts connections from
// listener only while limiter has a free slot. A slot is given back when
// the connection is closed. Based on https://godoc.org/golang.org/x/net/netutil
func SharedLimitListener(listener net.Listener, limiter *Limiter) net.Listener {
	return &sharedLimitListener{
		Listener: listener,
		limiter:  limiter,
		done:     make(chan struct{}),
	}
}

type sharedLimitListener struct {
	net.Listener
	closeOnce sync.Once     // ensures the done chan is only closed once
	limiter   *Limiter      // A pool of connection slots shared with other listeners
	done      chan struct{} // no values sent; closed when Close is called
}

// acquire reports false when the listener was closed while waiting
func (l *sharedLimitListener) acquire() bool {
	metrics.LimitListenerWaitingConns.Inc()
	defer metrics.LimitListenerWaitingConns.Dec()

	select {
	case <-l.done:
		return false
	case l.limiter.sem <- struct{}{}:
		metrics.LimitListenerConcurrentConns.Inc()
		return true
	}
}

func (l *sharedLimitListener) release() {
	<-l.limiter.sem
	metrics.LimitListenerConcurrentConns.Dec()
}

func (l *sharedLimitListener) Accept() (net.Conn, error) {
	acquired := l.acquire()
	// If the semaphore isn't acquired because the listener was closed, expect
	// that this call to accept won't block, but immediately return an error.
	c, err := l.Listener.Accept()
	if err != nil {
		if acquired {
			l.release()
		}
		return nil, err
	}

	if tcpConn, ok := c.(*net.TCPConn); ok {
		tcpConn.SetKeepAlive(true)
		tcpConn.SetKeepAlivePeriod(keepAlivePeriod)
	}

	if !acquired {
		return c, nil
	}

	return &sharedLimitListenerConn{Conn: c, release: l.release}, nil
}

func (l *sharedLimitListener) Close() error {
	err := l.Listener.Close()
	l.closeOnce.Do(func() { close(l.done) })
	return err
}

type sharedLimitListenerConn struct {
	net.Conn
	releaseOnce sync.Once
	release     func()
}

func (c *sharedLimitListenerConn) Close() error {
	err := c.Conn.Close()
	c.releaseOnce.Do(c.release)
	return err
}
