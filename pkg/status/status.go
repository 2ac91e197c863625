// Package status отображает перечислимые статусы backend в видимые теги
// (подпись + цвета). Чистые lookup таблицы без логики.
//
// Защитное требование: неизвестное значение перечисления никогда не
// роняет клиент — рендерится нейтральный тег с самим значением в подписи.
package status

import (
	"github.com/charmbracelet/lipgloss"
)

// Tag — визуальное представление одного значения статуса.
type Tag struct {
	Label string
	Bg    string // hex фон
	Fg    string // hex текст
}

// neutral — запасной стиль для неизвестных значений.
var neutral = Tag{Bg: "#F5F5F5", Fg: "#595959"}

// fallback возвращает нейтральный тег с самим значением как подписью.
func fallback(value string) Tag {
	t := neutral
	if value == "" {
		t.Label = "—"
	} else {
		t.Label = value
	}
	return t
}

// lookup — общий поиск по таблице с нейтральным fallback.
func lookup(table map[string]Tag, value string) Tag {
	if tag, ok := table[value]; ok {
		return tag
	}
	return fallback(value)
}

// ============================================================================
// Таблицы перечислений
// ============================================================================

var orderStatusTags = map[string]Tag{
	"CREATED":            {Label: "Created", Bg: "#E6F7D9", Fg: "#389E0D"},
	"PROCESSING":         {Label: "Processing", Bg: "#E6F4FF", Fg: "#1890FF"},
	"BACKORDER":          {Label: "Backorder", Bg: "#FFF7E6", Fg: "#FA8C16"},
	"READY_FOR_SHIPMENT": {Label: "Ready for shipment", Bg: "#F9F0FF", Fg: "#722ED1"},
	// Написание backend сохраняем как есть
	"FULLFILLED": {Label: "Fulfilled", Bg: "#E6F7D9", Fg: "#389E0D"},
	"CANCELLED":  {Label: "Cancelled", Bg: "#FFF1F0", Fg: "#F5222D"},
}

var importStatusTags = map[string]Tag{
	"PENDING":    {Label: "Pending", Bg: "#FFF7E6", Fg: "#FA8C16"},
	"PROCESSING": {Label: "Processing", Bg: "#E6F4FF", Fg: "#1890FF"},
	"COMPLETED":  {Label: "Completed", Bg: "#E6F7D9", Fg: "#389E0D"},
	"FAILED":     {Label: "Failed", Bg: "#FFF1F0", Fg: "#F5222D"},
}

var importTypeTags = map[string]Tag{
	"PARTS":        {Label: "Parts", Bg: "#E6F4FF", Fg: "#1890FF"},
	"DEALERS":      {Label: "Dealers", Bg: "#F9F0FF", Fg: "#722ED1"},
	"SUPERSEDED":   {Label: "Superseded", Bg: "#FFF7E6", Fg: "#FA8C16"},
	"BACKORDER":    {Label: "Backorders", Bg: "#FFF7E6", Fg: "#FA8C16"},
	"ORDER_STATUS": {Label: "Order status", Bg: "#E6F7D9", Fg: "#389E0D"},
}

var dealerStatusTags = map[string]Tag{
	"Active":    {Label: "Active", Bg: "#E6F7D9", Fg: "#389E0D"},
	"Inactive":  {Label: "Inactive", Bg: "#F5F5F5", Fg: "#595959"},
	"Suspended": {Label: "Suspended", Bg: "#FFF1F0", Fg: "#F5222D"},
}

var productTypeTags = map[string]Tag{
	"Genuine":     {Label: "Genuine", Bg: "#E6F7D9", Fg: "#389E0D"},
	"Aftermarket": {Label: "Aftermarket", Bg: "#E6F4FF", Fg: "#1890FF"},
	"Branded":     {Label: "Branded", Bg: "#F9F0FF", Fg: "#722ED1"},
}

// ============================================================================
// Lookup функции
// ============================================================================

// OrderStatus возвращает тег для статуса заказа.
func OrderStatus(value string) Tag { return lookup(orderStatusTags, value) }

// ImportStatus возвращает тег для статуса импорта.
func ImportStatus(value string) Tag { return lookup(importStatusTags, value) }

// ImportType возвращает тег для типа импорта.
func ImportType(value string) Tag { return lookup(importTypeTags, value) }

// DealerStatus возвращает тег для статуса дилерского аккаунта.
func DealerStatus(value string) Tag { return lookup(dealerStatusTags, value) }

// ProductType возвращает тег для типа товара.
func ProductType(value string) Tag { return lookup(productTypeTags, value) }

// Active возвращает тег для булевого признака активности.
func Active(active bool) Tag {
	if active {
		return Tag{Label: "Active", Bg: "#E6F7D9", Fg: "#389E0D"}
	}
	return Tag{Label: "Inactive", Bg: "#F5F5F5", Fg: "#595959"}
}

// ============================================================================
// Рендеринг
// ============================================================================

// Render возвращает тег в виде стилизованной строки для терминала.
func (t Tag) Render() string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Fg)).
		Background(lipgloss.Color(t.Bg)).
		Padding(0, 1)
	return style.Render(t.Label)
}
