// Package memory implementa los puertos de persistencia sobre un store en
// memoria de proceso. Es el driver por defecto (STORE_DRIVER=memory): útil para
// desarrollo, demos y tests, que lo reinician con Reset en lugar de reiniciar
// el proceso.
package memory

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// Store estado global en memoria: colecciones por tipo de entidad con ids
// monotónicos. Un RWMutex único protege todo; el TxRunner toma el lock de
// escritura durante toda la transacción del motor de stock.
type Store struct {
	mu sync.RWMutex

	products     map[int64]*entity.Product
	productTypes map[int64]*entity.ProductType
	movements    map[int64]*entity.StockMovement
	users        map[int64]*entity.User

	nextProductID  int64
	nextTypeID     int64
	nextMovementID int64
	nextUserID     int64
}

// NewStore crea un store vacío.
func NewStore() *Store {
	s := &Store{}
	s.reset()
	return s
}

// Reset vacía todas las colecciones y reinicia los contadores de id.
// Pensado para tests; no se usa en operación normal.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Store) reset() {
	s.products = make(map[int64]*entity.Product)
	s.productTypes = make(map[int64]*entity.ProductType)
	s.movements = make(map[int64]*entity.StockMovement)
	s.users = make(map[int64]*entity.User)
	s.nextProductID = 0
	s.nextTypeID = 0
	s.nextMovementID = 0
	s.nextUserID = 0
}

// foldSearch normaliza para búsqueda: minúsculas y sin diacríticos, de modo que
// "eletronicos" encuentre "Eletrônicos".
func foldSearch(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(folded)
}

// matchesSearch compara por inclusión, insensible a mayúsculas y acentos.
func matchesSearch(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(foldSearch(haystack), foldSearch(needle))
}

func cloneProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	clone := *p
	if p.ExpirationDate != nil {
		exp := *p.ExpirationDate
		clone.ExpirationDate = &exp
	}
	return &clone
}

func cloneProductType(t *entity.ProductType) *entity.ProductType {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func cloneMovement(m *entity.StockMovement) *entity.StockMovement {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}
