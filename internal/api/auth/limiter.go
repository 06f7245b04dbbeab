package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleAfter is how long a client's bucket is kept after its last attempt.
// A full bucket refills well within it.
const idleAfter = 10 * time.Minute

type clientLimiter struct {
	lim  *rate.Limiter
	seen time.Time
}

// loginLimiter throttles login attempts per client address.
type loginLimiter struct {
	every rate.Limit
	burst int

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

func newLoginLimiter(every rate.Limit, burst int) *loginLimiter {
	return &loginLimiter{every: every, burst: burst, clients: make(map[string]*clientLimiter)}
}

func (l *loginLimiter) Allow(client string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, cl := range l.clients {
		if now.Sub(cl.seen) > idleAfter {
			delete(l.clients, key)
		}
	}
	cl, ok := l.clients[client]
	if !ok {
		cl = &clientLimiter{lim: rate.NewLimiter(l.every, l.burst)}
		l.clients[client] = cl
	}
	cl.seen = now
	return cl.lim.AllowN(now, 1)
}
