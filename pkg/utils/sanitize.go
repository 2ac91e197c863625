// Package utils предоставляет утилиты для санитайза имён файлов.
package utils

import (
	"strings"
)

// SanitizeFilename приводит строку к безопасному имени файла.
//
// Экспорты (xlsx блобы) сохраняются на диск с именами, собранными из
// пользовательских данных (номер заказа, имя файла импорта). Убираем
// всё, что может сломать путь или приводит к path traversal.
//
// Правила:
//   - Разделители пути ("/", "\") и ".." заменяются на "_"
//   - Управляющие символы и символы, запрещённые в именах файлов, заменяются на "_"
//   - Пробелы по краям обрезаются
//   - Пустой результат превращается в "export"
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "..", "_")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			b.WriteRune('_')
		case r < 0x20:
			// Управляющие символы
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	result := strings.TrimSpace(b.String())
	if result == "" {
		return "export"
	}
	return result
}
