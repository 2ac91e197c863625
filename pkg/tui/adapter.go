// Package tui предоставляет reusable helpers для подключения Bubble Tea TUI
// к фоновым событиям консоли.
//
// Это НЕ готовый TUI (он остаётся в internal/ui/), а reusable адаптеры
// и конвертеры для работы с событиями из pkg/events.
//
// Port & Adapter паттерн:
//   - pkg/events.* — Port (интерфейсы)
//   - pkg/tui.* — Adapter helpers (переиспользуемые утилиты)
//   - internal/ui.* — Конкретная реализация TUI (app-specific)
//
// # Basic Usage
//
//	emitter := events.NewChanEmitter(100)
//	sub := emitter.Subscribe()
//
//	// Конвертируем события консоли в Bubble Tea сообщения
//	cmd := tui.ReceiveEventCmd(sub, func(event events.Event) tea.Msg {
//	    return EventMsg(event)
//	})
//
// Rule 6: только reusable код, без app-specific логики.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ilkoid/partsdesk/pkg/events"
)

// EventMsg конвертирует events.Event в Bubble Tea сообщение.
//
// Используется в Bubble Tea Update() для обработки фоновых событий.
type EventMsg events.Event

// ReceiveEventCmd возвращает Bubble Tea Cmd для чтения событий из Subscriber.
//
// Функция-конвертер вызывается для каждого полученного события и должна
// возвращать Bubble Tea сообщение.
//
// Пример использования в Bubble Tea Model:
//
//	func (m model) Init() tea.Cmd {
//	    return tui.ReceiveEventCmd(subscriber, func(evt events.Event) tea.Msg {
//	        return EventMsg(evt)
//	    })
//	}
//
// Rule 11: чтение прерывается закрытием канала Subscriber.
func ReceiveEventCmd(sub events.Subscriber, converter func(events.Event) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-sub.Events()
		if !ok {
			return nil
		}
		return converter(event)
	}
}

// WaitForEvent возвращает Cmd который ждёт следующего события.
//
// Используется в Update() для продолжения чтения событий:
//
//	case tui.EventMsg:
//	    // ... обработка события
//	    return m, tui.WaitForEvent(sub, converter)
func WaitForEvent(sub events.Subscriber, converter func(events.Event) tea.Msg) tea.Cmd {
	return ReceiveEventCmd(sub, converter)
}
