// Package cloudinary implementa ports.ImageHost sobre Cloudinary.
package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/jhoicas/foodzo-api/internal/application/ports"
	"github.com/jhoicas/foodzo-api/pkg/config"
)

var (
	_ ports.ImageHost = (*ImageHost)(nil)
	_ ports.ImageHost = Unconfigured{}
)

// ErrNotConfigured el host no tiene credenciales.
var ErrNotConfigured = errors.New("cloudinary: credenciales no configuradas")

// uploadAPI subconjunto de *uploader.API que usa el adaptador.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// ImageHost adaptador Cloudinary.
type ImageHost struct {
	api uploadAPI
}

// New crea el cliente con las credenciales de la configuración.
func New(cfg config.CloudinaryConfig) (*ImageHost, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: client: %w", err)
	}
	cld.Config.URL.Secure = true
	return &ImageHost{api: &cld.Upload}, nil
}

// Upload sube la imagen a folder y devuelve la URL segura y el public id.
func (h *ImageHost) Upload(ctx context.Context, r io.Reader, filename, folder string) (*ports.UploadedImage, error) {
	params := uploader.UploadParams{
		Folder:         strings.Trim(folder, "/"),
		ResourceType:   "image",
		UniqueFilename: api.Bool(true),
	}
	if name := strings.TrimSuffix(path.Base(filename), path.Ext(filename)); name != "" && name != "." && name != "/" {
		params.FilenameOverride = name
		params.UseFilename = api.Bool(true)
	}
	res, err := h.api.Upload(ctx, r, params)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: upload: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary: upload: %s", res.Error.Message)
	}
	if res.SecureURL == "" || res.PublicID == "" {
		return nil, errors.New("cloudinary: upload sin url o public id")
	}
	return &ports.UploadedImage{URL: res.SecureURL, PublicID: res.PublicID}, nil
}

// Destroy elimina la imagen. "not found" no es error: el objetivo ya se cumple.
func (h *ImageHost) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	res, err := h.api.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, Invalidate: api.Bool(true)})
	if err != nil {
		return fmt.Errorf("cloudinary: destroy %s: %w", publicID, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary: destroy %s: %s", publicID, res.Error.Message)
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("cloudinary: destroy %s: resultado %q", publicID, res.Result)
	}
	return nil
}

// Unconfigured host usado cuando faltan credenciales: las subidas fallan y los borrados no hacen nada.
type Unconfigured struct{}

// Upload siempre falla con ErrNotConfigured.
func (Unconfigured) Upload(context.Context, io.Reader, string, string) (*ports.UploadedImage, error) {
	return nil, ErrNotConfigured
}

// Destroy no hace nada.
func (Unconfigured) Destroy(context.Context, string) error { return nil }
