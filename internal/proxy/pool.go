package proxy

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// cooldown is how long a failed proxy is skipped
const cooldown = 5 * time.Minute

// ProxyPool rotates through proxies, skipping ones that failed recently
type ProxyPool struct {
	proxies []string
	index   int
	last    string
	mu      sync.Mutex
	failed  map[string]time.Time
}

// NewProxyPool creates a new ProxyPool
func NewProxyPool(proxies []string) *ProxyPool {
	return &ProxyPool{
		proxies: proxies,
		failed:  make(map[string]time.Time),
	}
}

// ParseList splits a comma separated proxy list and validates every entry
func ParseList(list string) ([]string, error) {
	var proxies []string
	for _, p := range strings.Split(list, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		u, err := url.Parse(p)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("invalid proxy %q", p)
		}
		switch u.Scheme {
		case "http", "https", "socks5":
		default:
			return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
		}
		proxies = append(proxies, p)
	}
	return proxies, nil
}

// Len returns the number of configured proxies
func (p *ProxyPool) Len() int {
	return len(p.proxies)
}

// GetNext returns the next healthy proxy from the pool
func (p *ProxyPool) GetNext() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.proxies) == 0 {
		return ""
	}

	start := p.index
	for {
		proxy := p.proxies[p.index]
		p.index = (p.index + 1) % len(p.proxies)

		if failTime, ok := p.failed[proxy]; ok {
			if time.Since(failTime) < cooldown {
				if p.index == start {
					// Every proxy is cooling down; use this one anyway
					p.last = proxy
					return proxy
				}
				continue
			}
			delete(p.failed, proxy)
		}

		p.last = proxy
		return proxy
	}
}

// Last returns the proxy handed out most recently
func (p *ProxyPool) Last() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// MarkFailed marks a proxy as failed so it will be skipped for a while
func (p *ProxyPool) MarkFailed(proxy string) {
	if proxy == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed[proxy] = time.Now()
}

// MarkHealthy clears the failure status of a proxy
func (p *ProxyPool) MarkHealthy(proxy string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.failed, proxy)
}

// ProxyFunc plugs the pool into http.Transport.Proxy. An empty pool connects directly.
func (p *ProxyPool) ProxyFunc() func(*http.Request) (*url.URL, error) {
	return func(*http.Request) (*url.URL, error) {
		next := p.GetNext()
		if next == "" {
			return nil, nil
		}
		return url.Parse(next)
	}
}
