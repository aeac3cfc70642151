package inventory

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la garantía de atomicidad del motor:
// cabecera, líneas, ajustes de stock y auditoría se confirman o se
// revierten como una sola unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		txRepo repository.StockTransactionRepository,
		logRepo repository.ActionLogRepository,
	) error) error
}
