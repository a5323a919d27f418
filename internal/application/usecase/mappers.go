package usecase

import (
	"github.com/jhoicas/foodzo-api/internal/application/dto"
	"github.com/jhoicas/foodzo-api/internal/domain/entity"
	"github.com/jhoicas/foodzo-api/pkg/currency"
)

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	ids := c.ProductIDs
	if ids == nil {
		ids = []string{}
	}
	return dto.CategoryResponse{
		ID:         c.ID,
		Name:       c.Name,
		ImageURL:   c.ImageURL,
		ProductIDs: ids,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	ids := p.CategoryIDs
	if ids == nil {
		ids = []string{}
	}
	return dto.ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		Price:              p.Price,
		FormattedPrice:     currency.FormatINR(p.Price),
		SalePrice:          p.SalePrice,
		FormattedSalePrice: currency.FormatINRPtr(p.SalePrice),
		Rating:             p.Rating,
		DeliveryTime: dto.DeliveryTimeDTO{
			Value: p.DeliveryTime.Value,
			Unit:  p.DeliveryTime.Unit,
		},
		ImageURL:    p.ImageURL,
		CategoryIDs: ids,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toCategoryResponses(list []*entity.Category) []dto.CategoryResponse {
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	return out
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		IsAdmin:   u.IsAdmin,
		Role:      u.Role(),
		PhotoURL:  u.PhotoURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
