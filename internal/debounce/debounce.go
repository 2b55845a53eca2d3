// Package debounce реализует отменяемую отложенную задачу: каждый вызов
// Trigger откладывает выполнение на delay и отменяет ещё не сработавшую задачу
package debounce

import (
	"sync"
	"time"
)

// Debouncer одна отложенная задача
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	stopped bool
}

// New создаёт debouncer с фиксированной задержкой
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger планирует fn через delay, отменяя предыдущую задачу.
// После Stop вызовы игнорируются
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.cancelLocked()
	seq := d.seq
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// Таймер мог сработать одновременно с отменой
		current := seq == d.seq && !d.stopped
		if current {
			d.timer = nil
		}
		d.mu.Unlock()

		if current {
			fn()
		}
	})
}

// Cancel отменяет запланированную задачу, если она ещё не сработала
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Stop отменяет задачу и запрещает новые
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
	d.stopped = true
}

// Pending true если задача запланирована и ещё не сработала
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) cancelLocked() {
	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Group набор независимых debouncer'ов по ключу (например, по пользователю)
type Group struct {
	delay time.Duration

	mu      sync.Mutex
	items   map[int64]*Debouncer
	stopped bool
}

// NewGroup создаёт группу с общей задержкой
func NewGroup(delay time.Duration) *Group {
	return &Group{
		delay: delay,
		items: make(map[int64]*Debouncer),
	}
}

// Trigger планирует fn для ключа, отменяя предыдущую задачу этого ключа.
// Сработавший ключ удаляется из группы
func (g *Group) Trigger(key int64, fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stopped {
		return
	}
	d, ok := g.items[key]
	if !ok {
		d = New(g.delay)
		g.items[key] = d
	}

	d.Trigger(func() {
		g.release(key, d)
		fn()
	})
}

// Cancel отменяет задачу ключа и забывает его
func (g *Group) Cancel(key int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if d, ok := g.items[key]; ok {
		d.Cancel()
		delete(g.items, key)
	}
}

// release удаляет debouncer ключа, если его не перезапустили
func (g *Group) release(key int64, d *Debouncer) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.items[key] == d && !d.Pending() {
		delete(g.items, key)
	}
}

// Stop останавливает все задачи группы
func (g *Group) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, d := range g.items {
		d.Stop()
	}
	g.stopped = true
}
