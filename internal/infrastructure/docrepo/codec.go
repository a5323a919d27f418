// Package docrepo implementa los puertos CategoryRepository, ProductRepository y UserRepository
// sobre cualquier repository.DocumentStore (memory, mongodb, firestore, postgres).
// Aquí vive la traducción entidad <-> documento; los adaptadores solo mueven documentos.
package docrepo

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/foodzo-api/internal/domain/entity"
	"github.com/jhoicas/foodzo-api/internal/domain/repository"
)

// Nombres de campo de los documentos (compatibles con los datos existentes).
const (
	fieldName            = "name"
	fieldImageURL        = "imageUrl"
	fieldImagePublicID   = "imagePublicId"
	fieldDescription     = "description"
	fieldPrice           = "price"
	fieldSalePrice       = "salePrice"
	fieldRating          = "rating"
	fieldDeliveryTime    = "deliveryTime"
	fieldDeliveryValue   = "value"
	fieldDeliveryUnit    = "unit"
	fieldUsername        = "username"
	fieldUsernameLower   = "usernameLower"
	fieldEmail           = "email"
	fieldEmailLower      = "emailLower"
	fieldPhone           = "phone"
	fieldPhoneNormalized = "phoneNormalized"
	fieldPasswordHash    = "passwordHash"
	fieldIsAdmin         = "isAdmin"
	fieldPhotoURL        = "photoUrl"
	fieldAuthUID         = "authUid"
)

func categoryToDocument(c *entity.Category) repository.Document {
	return repository.Document{
		fieldName:                  c.Name,
		fieldImageURL:              c.ImageURL,
		fieldImagePublicID:         c.ImagePublicID,
		repository.FieldProductIDs: idsOrEmpty(c.ProductIDs),
		repository.FieldCreatedAt:  c.CreatedAt.UTC(),
		repository.FieldUpdatedAt:  c.UpdatedAt.UTC(),
	}
}

func documentToCategory(d repository.Document) *entity.Category {
	return &entity.Category{
		ID:            d.String(repository.FieldID),
		Name:          d.String(fieldName),
		ImageURL:      d.String(fieldImageURL),
		ImagePublicID: d.String(fieldImagePublicID),
		ProductIDs:    nonBlank(d.Strings(repository.FieldProductIDs)),
		CreatedAt:     timeOrNow(d.Time(repository.FieldCreatedAt)),
		UpdatedAt:     timeOrNow(d.Time(repository.FieldUpdatedAt)),
	}
}

func productToDocument(p *entity.Product) repository.Document {
	var sale any
	if p.SalePrice != nil {
		sale = p.SalePrice.InexactFloat64()
	}
	return repository.Document{
		fieldName:        p.Name,
		fieldDescription: p.Description,
		fieldPrice:       p.Price.InexactFloat64(),
		fieldSalePrice:   sale,
		fieldRating:      p.Rating.InexactFloat64(),
		fieldDeliveryTime: map[string]any{
			fieldDeliveryValue: int64(p.DeliveryTime.Value),
			fieldDeliveryUnit:  p.DeliveryTime.Unit,
		},
		fieldImageURL:               p.ImageURL,
		fieldImagePublicID:          p.ImagePublicID,
		repository.FieldCategoryIDs: idsOrEmpty(p.CategoryIDs),
		repository.FieldCreatedAt:   p.CreatedAt.UTC(),
		repository.FieldUpdatedAt:   p.UpdatedAt.UTC(),
	}
}

func documentToProduct(d repository.Document) *entity.Product {
	p := &entity.Product{
		ID:            d.String(repository.FieldID),
		Name:          d.String(fieldName),
		Description:   d.String(fieldDescription),
		Price:         decimalField(d, fieldPrice),
		Rating:        decimalField(d, fieldRating),
		ImageURL:      d.String(fieldImageURL),
		ImagePublicID: d.String(fieldImagePublicID),
		CategoryIDs:   nonBlank(d.Strings(repository.FieldCategoryIDs)),
		CreatedAt:     timeOrNow(d.Time(repository.FieldCreatedAt)),
		UpdatedAt:     timeOrNow(d.Time(repository.FieldUpdatedAt)),
	}
	if f, ok := d.Float(fieldSalePrice); ok {
		sale := decimal.NewFromFloat(f)
		p.SalePrice = &sale
	}
	if dt := d.Map(fieldDeliveryTime); dt != nil {
		p.DeliveryTime = entity.DeliveryTime{Value: dt.Int(fieldDeliveryValue), Unit: dt.String(fieldDeliveryUnit)}
	}
	return p
}

func userToDocument(u *entity.User) repository.Document {
	return repository.Document{
		fieldAuthUID:              u.AuthUID,
		fieldUsername:             u.Username,
		fieldUsernameLower:        u.UsernameLower,
		fieldEmail:                u.Email,
		fieldEmailLower:           u.EmailLower,
		fieldPhone:                u.Phone,
		fieldPhoneNormalized:      u.PhoneNormalized,
		fieldPasswordHash:         u.PasswordHash,
		fieldIsAdmin:              u.IsAdmin,
		fieldPhotoURL:             u.PhotoURL,
		repository.FieldCreatedAt: u.CreatedAt.UTC(),
		repository.FieldUpdatedAt: u.UpdatedAt.UTC(),
	}
}

func documentToUser(d repository.Document) *entity.User {
	return &entity.User{
		ID:              d.String(repository.FieldID),
		AuthUID:         d.String(fieldAuthUID),
		Username:        d.String(fieldUsername),
		UsernameLower:   d.String(fieldUsernameLower),
		Email:           d.String(fieldEmail),
		EmailLower:      d.String(fieldEmailLower),
		Phone:           d.String(fieldPhone),
		PhoneNormalized: d.String(fieldPhoneNormalized),
		PasswordHash:    d.String(fieldPasswordHash),
		IsAdmin:         d.Bool(fieldIsAdmin),
		PhotoURL:        d.String(fieldPhotoURL),
		CreatedAt:       timeOrNow(d.Time(repository.FieldCreatedAt)),
		UpdatedAt:       timeOrNow(d.Time(repository.FieldUpdatedAt)),
	}
}

func decimalField(d repository.Document, field string) decimal.Decimal {
	f, ok := d.Float(field)
	if !ok {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// timeOrNow: documentos antiguos pueden traer fechas inválidas; se sirven con la hora actual.
func timeOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

func idsOrEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// nonBlank descarta ids vacíos que puedan venir de datos históricos.
func nonBlank(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) != "" {
			out = append(out, id)
		}
	}
	return out
}
