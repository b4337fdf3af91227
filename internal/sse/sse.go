package sse

import "sync"

// Hub — pub/sub для SSE-событий по runID.
// Канал подписчика закрывается при Close(id); буфер при этом дочитывается.
type Hub struct {
	mu   sync.Mutex
	subs map[string][]chan string
}

func NewHub() *Hub {
	return &Hub{subs: map[string][]chan string{}}
}

// Subscribe подписывает клиента на id, возвращает канал и функцию-unsubscribe
func (h *Hub) Subscribe(id string) (<-chan string, func()) {
	ch := make(chan string, 16)

	h.mu.Lock()
	h.subs[id] = append(h.subs[id], ch)
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		list := h.subs[id]
		for i, c := range list {
			if c == ch {
				h.subs[id] = append(list[:i], list[i+1:]...)
				break
			}
		}
	}

	return ch, cancel
}

// Publish отсылает сообщение всем подписчикам id
func (h *Hub) Publish(id, msg string) {
	h.mu.Lock()
	list := append([]chan string(nil), h.subs[id]...)
	h.mu.Unlock()

	for _, ch := range list {
		select {
		case ch <- msg:
		default:
			// канал забит — подписчик не успевает, сообщение теряется
		}
	}
}

// Close завершает стрим: закрывает каналы подписчиков и убирает id
func (h *Hub) Close(id string) {
	h.mu.Lock()
	list := h.subs[id]
	delete(h.subs, id)
	h.mu.Unlock()

	for _, ch := range list {
		close(ch)
	}
}
