package app

import (
	"sync"

	"github.com/abhisek/prepsmart/internal/player"
)

// bridge collects player notifications and navigation requests so the app
// model can turn them into messages after each update.
type bridge struct {
	mu    sync.Mutex
	notes []player.Notification
	paths []string
}

func (b *bridge) Notify(n player.Notification) {
	b.mu.Lock()
	b.notes = append(b.notes, n)
	b.mu.Unlock()
}

func (b *bridge) NavigateTo(path string) {
	b.mu.Lock()
	b.paths = append(b.paths, path)
	b.mu.Unlock()
}

func (b *bridge) take() ([]player.Notification, []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	notes, paths := b.notes, b.paths
	b.notes, b.paths = nil, nil
	return notes, paths
}
