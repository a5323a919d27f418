package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Unidades válidas para el tiempo de entrega.
const (
	DeliveryUnitMinutes = "minutes"
	DeliveryUnitHours   = "hours"
	DeliveryUnitDays    = "days"
)

// DeliveryUnits lista las unidades aceptadas, en orden de presentación.
var DeliveryUnits = []string{DeliveryUnitMinutes, DeliveryUnitHours, DeliveryUnitDays}

// DeliveryTime tiempo estimado de entrega (ej. 30 minutes).
type DeliveryTime struct {
	Value int
	Unit  string
}

// IsDeliveryUnit indica si u es una unidad aceptada (se espera en minúsculas).
func IsDeliveryUnit(u string) bool {
	for _, v := range DeliveryUnits {
		if v == u {
			return true
		}
	}
	return false
}

// String formato de presentación, ej. "30 minutes".
func (d DeliveryTime) String() string {
	return fmt.Sprintf("%d %s", d.Value, d.Unit)
}

// Product representa un plato o producto del catálogo.
// CategoryIDs es el lado "producto" de la relación con Category.
type Product struct {
	ID            string
	Name          string
	Description   string
	Price         decimal.Decimal
	SalePrice     *decimal.Decimal // nil si no hay oferta
	Rating        decimal.Decimal  // 0..5
	DeliveryTime  DeliveryTime
	ImageURL      string
	ImagePublicID string
	CategoryIDs   []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
