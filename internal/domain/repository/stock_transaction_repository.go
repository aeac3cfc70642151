package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// StockTransactionRepository define el puerto de persistencia para
// comprobantes de inventario y sus líneas (DIP). Los detalles se eliminan en
// cascada con su comprobante.
type StockTransactionRepository interface {
	CreateTransaction(t *entity.StockTransaction) (int64, error)
	AddDetail(d *entity.TransactionDetail) (int64, error)
	// GetByID devuelve el comprobante con sus detalles en orden de línea.
	GetByID(id int64) (*entity.StockTransaction, error)
	List(limit, offset int) ([]*entity.StockTransaction, error)
	ListByType(txType string, limit, offset int) ([]*entity.StockTransaction, error)
	ListByDateRange(from, to time.Time, limit, offset int) ([]*entity.StockTransaction, error)
	// UpdateTotalValue recalcula el total del comprobante desde sus líneas.
	UpdateTotalValue(transactionID int64) error
	GetDetailByID(detailID int64) (*entity.TransactionDetail, error)
	UpdateDetail(d *entity.TransactionDetail) error
	RemoveDetail(detailID int64) error
	// HasDetailsForProduct indica si el producto aparece en alguna línea
	// existente (las líneas viven mientras viva su comprobante).
	HasDetailsForProduct(productID int64) (bool, error)
}
