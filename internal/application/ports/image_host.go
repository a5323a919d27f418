package ports

import (
	"context"
	"io"
)

// UploadedImage resultado de subir una imagen al host.
type UploadedImage struct {
	URL      string // URL pública (https)
	PublicID string // identificador para borrarla después
}

// ImageHost puerto de salida hacia el host de imágenes (Cloudinary en producción).
type ImageHost interface {
	// Upload sube la imagen dentro de folder (ej. "foodzo/categories").
	Upload(ctx context.Context, r io.Reader, filename, folder string) (*UploadedImage, error)
	// Destroy elimina una imagen por su public id. Un id vacío no hace nada.
	Destroy(ctx context.Context, publicID string) error
}
