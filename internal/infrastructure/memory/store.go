// Package memory implementa los puertos de repositorio en memoria.
// Se usa en los tests de casos de uso y de handlers; respeta las mismas
// reglas que PostgreSQL (unicidad, claves foráneas y bajas lógicas).
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/amremberto/gecom-following-preload-sub002/internal/domain/entity"
	"github.com/amremberto/gecom-following-preload-sub002/pkg/textnorm"
)

// Store datos compartidos por todos los repositorios en memoria.
type Store struct {
	mu  sync.RWMutex
	seq int64

	currencies    map[int64]*entity.Currency
	documentTypes map[int64]*entity.DocumentType
	paymentTypes  map[int64]*entity.PaymentType
	states        map[int64]*entity.State
	providers     map[int64]*entity.Provider
	societies     map[int64]*entity.Society
	assignments   map[int64]*entity.UserSocietyAssignment
	documents     map[int64]*entity.Document
	attachments   map[int64]*entity.Attachment
	notes         map[int64]*entity.Note
	orders        map[int64]*entity.PurchaseOrder
	sapAccounts   map[string]*entity.SapAccount
	sapOrders     map[string]*entity.SapPurchaseOrder // clave number/position
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		currencies:    map[int64]*entity.Currency{},
		documentTypes: map[int64]*entity.DocumentType{},
		paymentTypes:  map[int64]*entity.PaymentType{},
		states:        map[int64]*entity.State{},
		providers:     map[int64]*entity.Provider{},
		societies:     map[int64]*entity.Society{},
		assignments:   map[int64]*entity.UserSocietyAssignment{},
		documents:     map[int64]*entity.Document{},
		attachments:   map[int64]*entity.Attachment{},
		notes:         map[int64]*entity.Note{},
		orders:        map[int64]*entity.PurchaseOrder{},
		sapAccounts:   map[string]*entity.SapAccount{},
		sapOrders:     map[string]*entity.SapPurchaseOrder{},
	}
}

// nextID debe llamarse con mu tomado.
func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// PutSapAccount carga una cuenta en el espejo SAP (los datos SAP son de solo lectura para la API).
func (s *Store) PutSapAccount(a entity.SapAccount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sapAccounts[a.Code] = &a
}

// PutSapPurchaseOrder carga una posición de OC en el espejo SAP.
func (s *Store) PutSapPurchaseOrder(po entity.SapPurchaseOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sapOrders[po.Number+"/"+po.Position] = &po
}

// snapshot copia de las tablas que escribe UnitOfWork, para el rollback.
type snapshot struct {
	seq         int64
	documents   map[int64]*entity.Document
	attachments map[int64]*entity.Attachment
	notes       map[int64]*entity.Note
	orders      map[int64]*entity.PurchaseOrder
}

func (s *Store) takeSnapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		seq:         s.seq,
		documents:   cloneMap(s.documents),
		attachments: cloneMap(s.attachments),
		notes:       cloneMap(s.notes),
		orders:      cloneMap(s.orders),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = snap.seq
	s.documents = snap.documents
	s.attachments = snap.attachments
	s.notes = snap.notes
	s.orders = snap.orders
}

// cloneMap copia el mapa y cada valor apuntado.
func cloneMap[K comparable, V any](m map[K]*V) map[K]*V {
	out := make(map[K]*V, len(m))
	for k, v := range m {
		c := *v
		out[k] = &c
	}
	return out
}

func ptrCopy[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// page aplica limit/offset a una lista ya ordenada.
func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func sortByID[T any](list []*T, id func(*T) int64) {
	sort.Slice(list, func(i, j int) bool { return id(list[i]) < id(list[j]) })
}

// matches informa si term (ya plegado) aparece en algún campo.
func matches(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(textnorm.Fold(f), term) {
			return true
		}
	}
	return false
}
