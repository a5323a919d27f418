package entity

import "time"

// Category representa una categoría del menú. ProductIDs es el lado "categoría" de la relación
// muchos-a-muchos con Product (se guarda en el propio documento, no hay tabla intermedia).
type Category struct {
	ID            string
	Name          string
	ImageURL      string
	ImagePublicID string   // public_id en el host de imágenes, para poder borrarla
	ProductIDs    []string // ids de productos, sin duplicados ni vacíos
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
