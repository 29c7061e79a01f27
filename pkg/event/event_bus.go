package event

import (
	"sync"

	"github.com/go-compass/compass/pkg/log"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/11/2 17:25
 * @file: event_bus.go
 * @description: event bus
 */

type Handler func(e Event)

// Bus 进程内事件总线，handler 同步执行
type Bus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
	// 订阅所有事件的 handler
	anyHandlers []Handler
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe 订阅指定类型的事件
func (b *Bus) Subscribe(t Type, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// SubscribeAll 订阅所有事件
func (b *Bus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.anyHandlers = append(b.anyHandlers, h)
}

// Publish 发布事件，handler panic 不影响调用方
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	hs := make([]Handler, 0, len(b.handlers[e.Type])+len(b.anyHandlers))
	hs = append(hs, b.handlers[e.Type]...)
	hs = append(hs, b.anyHandlers...)
	b.mu.RUnlock()

	for _, h := range hs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Errorw("event handler panic", "type", e.Type, "panic", r)
				}
			}()
			h(e)
		}()
	}
}
