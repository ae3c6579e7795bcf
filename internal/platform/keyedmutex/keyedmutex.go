// Package keyedmutex serializa secciones críticas por clave arbitraria.
// Lo usan los flujos check-then-create por par de usuarios (confirmación
// de match, creación de solicitud), donde el check de existencia y el
// insert deben ejecutarse como unidad.
package keyedmutex

import "sync"

// M reparte un mutex por clave. Los locks se refcuentan y se descartan
// al soltar la última referencia, para no crecer sin límite.
type M struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func New() *M {
	return &M{locks: make(map[string]*entry)}
}

// Lock toma el lock de la clave y devuelve el release correspondiente.
func (m *M) Lock(key string) func() {
	m.mu.Lock()
	e, ok := m.locks[key]
	if !ok {
		e = &entry{}
		m.locks[key] = e
	}
	e.refs++
	m.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		m.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(m.locks, key)
		}
		m.mu.Unlock()
	}
}
