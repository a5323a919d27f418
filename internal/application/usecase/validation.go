package usecase

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/foodzo-api/internal/application/catalog"
	"github.com/jhoicas/foodzo-api/internal/application/dto"
	"github.com/jhoicas/foodzo-api/internal/domain"
	"github.com/jhoicas/foodzo-api/internal/domain/entity"
)

// Límites de los formularios de administración.
const (
	MinCategoryNameLength = 2
	MaxCategoryNameLength = 40

	MinProductNameLength = 3
	MaxProductNameLength = 80
	MinDescriptionLength = 10
	MaxDescriptionLength = 500
	MaxPrice             = 100000
	MinRating            = 0
	MaxRating            = 5
	MinDeliveryValue     = 1
	MaxDeliveryValue     = 1000
)

type categoryFields struct {
	name       string
	productIDs []string
}

type productFields struct {
	name         string
	description  string
	price        decimal.Decimal
	salePrice    *decimal.Decimal
	rating       decimal.Decimal
	deliveryTime entity.DeliveryTime
	categoryIDs  []string
}

func validateCategoryInput(in dto.CategoryInput) (*categoryFields, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("Category name is required.")
	}
	if n := utf8.RuneCountInString(name); n < MinCategoryNameLength || n > MaxCategoryNameLength {
		return nil, domain.NewValidationError(fmt.Sprintf(
			"Category name must be between %d and %d characters.", MinCategoryNameLength, MaxCategoryNameLength))
	}
	return &categoryFields{name: name, productIDs: catalog.NormalizeIDs(in.ProductIDs)}, nil
}

func validateProductInput(in dto.ProductInput) (*productFields, error) {
	name := strings.TrimSpace(in.Name)
	if n := utf8.RuneCountInString(name); n < MinProductNameLength || n > MaxProductNameLength {
		return nil, domain.NewValidationError(fmt.Sprintf(
			"Product name must be between %d and %d characters.", MinProductNameLength, MaxProductNameLength))
	}

	description := strings.TrimSpace(in.Description)
	if n := utf8.RuneCountInString(description); n < MinDescriptionLength || n > MaxDescriptionLength {
		return nil, domain.NewValidationError(fmt.Sprintf(
			"Description must be between %d and %d characters.", MinDescriptionLength, MaxDescriptionLength))
	}

	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil || !price.IsPositive() || price.GreaterThan(decimal.NewFromInt(MaxPrice)) {
		return nil, domain.NewValidationError(fmt.Sprintf(
			"Price must be greater than 0 and below %d.", MaxPrice))
	}

	var salePrice *decimal.Decimal
	if raw := strings.TrimSpace(in.SalePrice); raw != "" {
		sale, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, domain.NewValidationError("Sale price must be a valid number.")
		}
		if sale.IsNegative() || sale.GreaterThan(price) {
			return nil, domain.NewValidationError("Sale price must be positive and cannot exceed the price.")
		}
		salePrice = &sale
	}

	rating, err := decimal.NewFromString(strings.TrimSpace(in.Rating))
	if err != nil || rating.LessThan(decimal.NewFromInt(MinRating)) || rating.GreaterThan(decimal.NewFromInt(MaxRating)) {
		return nil, domain.NewValidationError(fmt.Sprintf(
			"Rating must be between %d and %d.", MinRating, MaxRating))
	}

	deliveryValue, err := strconv.ParseFloat(strings.TrimSpace(in.DeliveryValue), 64)
	if err != nil || math.IsNaN(deliveryValue) || deliveryValue < MinDeliveryValue || deliveryValue > MaxDeliveryValue {
		return nil, domain.NewValidationError(fmt.Sprintf(
			"Delivery time must be between %d and %d.", MinDeliveryValue, MaxDeliveryValue))
	}
	if deliveryValue != math.Trunc(deliveryValue) {
		return nil, domain.NewValidationError("Delivery time must be a whole number.")
	}

	unit := strings.ToLower(strings.TrimSpace(in.DeliveryUnit))
	if !entity.IsDeliveryUnit(unit) {
		return nil, domain.NewValidationError("Invalid delivery time unit.")
	}

	return &productFields{
		name:         name,
		description:  description,
		price:        price,
		salePrice:    salePrice,
		rating:       rating,
		deliveryTime: entity.DeliveryTime{Value: int(deliveryValue), Unit: unit},
		categoryIDs:  catalog.NormalizeIDs(in.CategoryIDs),
	}, nil
}
