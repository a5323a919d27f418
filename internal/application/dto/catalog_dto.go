package dto

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryResponse salida pública de una categoría.
type CategoryResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ImageURL   string    `json:"imageUrl"`
	ProductIDs []string  `json:"productIds"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// DeliveryTimeDTO tiempo de entrega.
type DeliveryTimeDTO struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
}

// ProductResponse salida pública de un producto, con precios ya formateados en INR.
type ProductResponse struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	Price              decimal.Decimal  `json:"price"`
	FormattedPrice     string           `json:"formattedPrice"`
	SalePrice          *decimal.Decimal `json:"salePrice"`
	FormattedSalePrice string           `json:"formattedSalePrice,omitempty"`
	Rating             decimal.Decimal  `json:"rating"`
	DeliveryTime       DeliveryTimeDTO  `json:"deliveryTime"`
	ImageURL           string           `json:"imageUrl"`
	CategoryIDs        []string         `json:"categoryIds"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// CategoryListResponse listado de categorías.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ProductListResponse listado de productos.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

// CategoryEnvelope respuesta con una categoría.
type CategoryEnvelope struct {
	Category CategoryResponse `json:"category"`
}

// ProductEnvelope respuesta con un producto.
type ProductEnvelope struct {
	Product ProductResponse `json:"product"`
}

// CategoryProductsResponse categoría con sus productos vinculados.
type CategoryProductsResponse struct {
	Category CategoryResponse  `json:"category"`
	Products []ProductResponse `json:"products"`
}

// ImageFile imagen recibida en un formulario multipart. El handler cierra el reader.
type ImageFile struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// CategoryInput campos del formulario de categoría (productIds repetido).
type CategoryInput struct {
	Name       string
	ProductIDs []string
	Image      *ImageFile
}

// ProductInput campos del formulario de producto tal como llegan (texto); el caso de uso valida y convierte.
type ProductInput struct {
	Name          string
	Description   string
	Price         string
	SalePrice     string
	Rating        string
	DeliveryValue string
	DeliveryUnit  string
	CategoryIDs   []string
	Image         *ImageFile
}

// SuccessResponse confirmación simple (ej. borrado).
type SuccessResponse struct {
	Success bool `json:"success"`
}

// MenuDTO carta imprimible: categorías en orden con sus productos.
type MenuDTO struct {
	Title         string
	StorefrontURL string // opcional; se imprime como QR
	GeneratedAt   time.Time
	Sections      []MenuSectionDTO
}

// MenuSectionDTO una categoría de la carta.
type MenuSectionDTO struct {
	Category string
	Items    []MenuItemDTO
}

// MenuItemDTO un producto de la carta.
type MenuItemDTO struct {
	Name           string
	Description    string
	DeliveryTime   string
	FormattedPrice string
	FormattedSale  string
	Rating         string
}
