package query

import (
	"sync"
)

// Store — thread-safe кэш списочных и детальных ответов.
//
// Rule 5: все поля защищены мьютексом, глобального состояния нет —
// Store создается в main() и передается через DI.
//
// Два механизма консистентности:
//
//  1. Поколения (generation) per-resource. Мутация ресурса инвалидирует
//     все его кэшированные ответы простым инкрементом поколения — записи
//     со старым поколением перестают находиться и вытесняются лениво.
//
//  2. Подавление устаревших ответов (last-request-wins). Каждый
//     запущенный запрос получает Ticket с порядковым номером; Commit
//     принимает результат только если с момента старта не начался более
//     новый запрос того же ресурса и не было инвалидации. Быстрый ответ
//     на старые параметры не перезатрет результат более нового запроса.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	gens    map[string]uint64
	seqs    map[string]uint64
}

type entry struct {
	data interface{}
	gen  uint64
}

// Ticket идентифицирует один in-flight запрос списка.
type Ticket struct {
	resource string
	seq      uint64
	gen      uint64
}

// NewStore создает пустой кэш.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]entry),
		gens:    make(map[string]uint64),
		seqs:    make(map[string]uint64),
	}
}

// Begin регистрирует старт запроса и возвращает Ticket для Commit.
func (s *Store) Begin(resource string) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seqs[resource]++
	return Ticket{
		resource: resource,
		seq:      s.seqs[resource],
		gen:      s.gens[resource],
	}
}

// Commit сохраняет результат запроса, если он всё ещё актуален.
//
// Возвращает false если результат устарел: после старта этого запроса
// был запущен более новый запрос того же ресурса, либо ресурс был
// инвалидирован мутацией. Устаревший результат не кэшируется, и
// вызывающий не должен показывать его пользователю.
func (s *Store) Commit(t Ticket, key string, data interface{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.seq != s.seqs[t.resource] || t.gen != s.gens[t.resource] {
		return false
	}

	s.entries[t.resource+"|"+key] = entry{data: data, gen: t.gen}
	return true
}

// Lookup возвращает кэшированный результат для ключа запроса.
// Записи устаревших поколений не возвращаются.
func (s *Store) Lookup(resource string, key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[resource+"|"+key]
	if !ok || e.gen != s.gens[resource] {
		return nil, false
	}
	return e.data, true
}

// Invalidate сбрасывает весь кэш ресурса.
//
// Вызывается после каждой успешной мутации (create/update/delete),
// чтобы следующий показ списка пошел за свежими данными.
func (s *Store) Invalidate(resource string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gens[resource]++

	// Ленивая уборка записей устаревшего поколения
	prefix := resource + "|"
	for k, e := range s.entries {
		if e.gen != s.gens[resource] && len(k) > len(prefix) && k[:len(prefix)] == prefix {
			delete(s.entries, k)
		}
	}
}

// InvalidateAll сбрасывает кэш всех ресурсов (logout, смена сессии).
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for resource := range s.gens {
		s.gens[resource]++
	}
	s.entries = make(map[string]entry)
}
