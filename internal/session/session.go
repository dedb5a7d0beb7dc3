// Package session tracks which user is active on this device and lets other
// components observe changes to it.
package session

import (
	"sync"
)

// Listener receives the active user ID after every change. An empty string
// means nobody is signed in.
type Listener func(userID string)

// Provider holds the current user identifier and notifies subscribers when it
// changes. It does not authenticate anyone; callers sign in an identity they
// have already verified.
type Provider struct {
	mu        sync.Mutex
	userID    string
	nextID    int
	listeners map[int]Listener

	// notifyMu serialises deliveries so listeners observe changes in order.
	notifyMu sync.Mutex
}

// NewProvider returns a Provider with no active user.
func NewProvider() *Provider {
	return &Provider{listeners: make(map[int]Listener)}
}

// Current returns the active user ID and whether anyone is signed in.
func (p *Provider) Current() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.userID, p.userID != ""
}

// SignIn makes userID the active user. Signing in the already active user is a no-op.
func (p *Provider) SignIn(userID string) {
	p.set(userID)
}

// SignOut clears the active user.
func (p *Provider) SignOut() {
	p.set("")
}

// Subscribe registers fn and calls it straight away with the current value.
// The returned function removes the subscription.
func (p *Provider) Subscribe(fn Listener) func() {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	current := p.userID
	p.mu.Unlock()

	fn(current)

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

func (p *Provider) set(userID string) {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	if p.userID == userID {
		p.mu.Unlock()
		return
	}
	p.userID = userID
	listeners := make([]Listener, 0, len(p.listeners))
	for _, l := range p.listeners {
		listeners = append(listeners, l)
	}
	p.mu.Unlock()

	for _, l := range listeners {
		l(userID)
	}
}
