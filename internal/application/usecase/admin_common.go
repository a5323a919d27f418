package usecase

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/jhoicas/foodzo-api/internal/application/catalog"
	"github.com/jhoicas/foodzo-api/internal/application/dto"
	"github.com/jhoicas/foodzo-api/internal/application/ports"
	"github.com/jhoicas/foodzo-api/internal/domain"
	"github.com/jhoicas/foodzo-api/pkg/logger"
)

// CategoryLinkSyncer sincroniza el lado "productos" al guardar una categoría.
type CategoryLinkSyncer interface {
	SyncCategoryProductLinks(ctx context.Context, categoryID string, nextProductIDs, previousProductIDs []string) (*catalog.SyncReport, error)
}

// ProductLinkSyncer sincroniza el lado "categorías" al guardar un producto.
type ProductLinkSyncer interface {
	SyncProductCategoryLinks(ctx context.Context, productID string, nextCategoryIDs, previousCategoryIDs []string) (*catalog.SyncReport, error)
}

// AdminDeps dependencias comunes de los casos de uso de administración del catálogo.
type AdminDeps struct {
	Images      ports.ImageHost
	Catalog     CatalogInvalidator // puede ser nil
	ImageFolder string             // carpeta base en el host, ej. "foodzo"
	Log         *logger.Logger
}

func (d AdminDeps) withDefaults() AdminDeps {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.ImageFolder == "" {
		d.ImageFolder = "foodzo"
	}
	return d
}

func (d AdminDeps) folder(sub string) string {
	return path.Join(strings.Trim(d.ImageFolder, "/"), sub)
}

func (d AdminDeps) invalidate() {
	if d.Catalog != nil {
		d.Catalog.Invalidate()
	}
}

func hasImage(img *dto.ImageFile) bool {
	return img != nil && img.Reader != nil && img.Size > 0
}

func (d AdminDeps) upload(ctx context.Context, img *dto.ImageFile, sub string) (*ports.UploadedImage, error) {
	uploaded, err := d.Images.Upload(ctx, img.Reader, img.Filename, d.folder(sub))
	if err != nil {
		d.Log.Error().Err(err).Str("folder", d.folder(sub)).Msg("subida de imagen fallida")
		return nil, fmt.Errorf("%w: %v", domain.ErrImageUpload, err)
	}
	return uploaded, nil
}

// destroy borra una imagen sin propagar el error: la limpieza nunca hace fallar la operación.
func (d AdminDeps) destroy(ctx context.Context, publicID, reason string) {
	if publicID == "" {
		return
	}
	if err := d.Images.Destroy(ctx, publicID); err != nil {
		d.Log.Warn().Err(err).Str("public_id", publicID).Str("reason", reason).Msg("no se pudo borrar la imagen")
	}
}

// logSync registra el resultado de una sincronización. Las fallas del lado relacionado ya se
// loguean en el sincronizador; aquí solo el error del registro principal.
func (d AdminDeps) logSync(report *catalog.SyncReport, err error, entity, id string) {
	if err != nil {
		d.Log.Error().Err(err).Str(entity, id).Msg("sincronización de vínculos fallida")
		return
	}
	if report != nil && len(report.Failures) > 0 {
		d.Log.Warn().Str(entity, id).Int("failures", len(report.Failures)).Msg("sincronización de vínculos incompleta")
	}
}
