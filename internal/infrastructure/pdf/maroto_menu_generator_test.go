package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foodzo-api/internal/application/dto"
)

func TestGenerate_DevuelvePDF(t *testing.T) {
	menu := &dto.MenuDTO{
		Title:         "Foodzo",
		StorefrontURL: "https://foodzo.example",
		GeneratedAt:   time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
		Sections: []dto.MenuSectionDTO{{
			Category: "Biryani",
			Items: []dto.MenuItemDTO{{
				Name:           "Chicken Biryani",
				Description:    "Slow cooked basmati rice with chicken",
				DeliveryTime:   "30 minutes",
				FormattedPrice: "₹249.00",
				FormattedSale:  "₹199.00",
				Rating:         "4.5",
			}},
		}},
	}

	out, err := NewMarotoMenuGenerator().Generate(menu)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerate_CartaVacia(t *testing.T) {
	out, err := NewMarotoMenuGenerator().Generate(&dto.MenuDTO{Title: "Foodzo"})
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = NewMarotoMenuGenerator().Generate(nil)
	assert.Error(t, err)
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "Rs. 1,234.50", pdfMoney("₹1,234.50"))
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
