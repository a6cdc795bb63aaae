package sse

import (
	"encoding/json"
	"sync"
)

// Event — одно сообщение потока запуска
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Hub — рассылка событий подписчикам по id запуска.
// Хранит историю, чтобы подписчик, пришедший после старта, получил все события.
type Hub struct {
	mu      sync.Mutex
	buffer  int
	conns   map[string][]chan string
	history map[string][]string
	closed  map[string]bool
}

func NewHub(buffer int) *Hub {
	if buffer < 1 {
		buffer = 16
	}
	return &Hub{
		buffer:  buffer,
		conns:   map[string][]chan string{},
		history: map[string][]string{},
		closed:  map[string]bool{},
	}
}

// Subscribe подписывает клиента на id: возвращает уже накопленные сообщения,
// канал новых и функцию отписки. Канал закрывается после Close(id).
func (h *Hub) Subscribe(id string) ([]string, <-chan string, func()) {
	ch := make(chan string, h.buffer)

	h.mu.Lock()
	backlog := append([]string(nil), h.history[id]...)
	if h.closed[id] {
		close(ch)
	} else {
		h.conns[id] = append(h.conns[id], ch)
	}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		list := h.conns[id]
		for i, c := range list {
			if c == ch {
				h.conns[id] = append(list[:i], list[i+1:]...)
				close(ch)
				break
			}
		}
	}

	return backlog, ch, cancel
}

// Publish кодирует событие и отсылает его всем подписчикам id
func (h *Hub) Publish(id string, ev Event) error {
	msg, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed[id] {
		return nil
	}
	h.history[id] = append(h.history[id], string(msg))
	for _, ch := range h.conns[id] {
		select {
		case ch <- string(msg):
		default:
			// медленный подписчик пропускает сообщение, оно остаётся в истории
		}
	}
	return nil
}

// Close завершает поток id: каналы подписчиков закрываются, история сохраняется
func (h *Hub) Close(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed[id] {
		return
	}
	h.closed[id] = true
	for _, ch := range h.conns[id] {
		close(ch)
	}
	delete(h.conns, id)
}

// Forget удаляет историю id
func (h *Hub) Forget(id string) {
	h.Close(id)
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.history, id)
	delete(h.closed, id)
}
