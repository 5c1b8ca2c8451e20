package memory

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones del motor de stock tomando el lock de
// escritura del store durante todo el callback. No hay rollback: los casos de
// uso validan antes de mutar, y las escrituras en memoria no fallan a medias.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos que reutilizan el lock ya tomado.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return fn(
		&ProductRepo{store: r.store, locked: true},
		&MovementRepo{store: r.store, locked: true},
	)
}
