package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foodzo-api/internal/application/usecase"
	"github.com/jhoicas/foodzo-api/internal/domain"
	"github.com/jhoicas/foodzo-api/internal/infrastructure/cache"
)

func TestCatalog_ListadoCacheadoHastaInvalidar(t *testing.T) {
	f := newFixture()
	uc := usecase.NewCatalogUseCase(f.categories, f.products, cache.New(time.Minute))
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.seedProduct("Masala Dosa", "Crispy rice crepe with potato filling.", base)

	first, err := uc.ListProducts(f.ctx)
	require.NoError(t, err)
	require.Len(t, first.Products, 1)

	f.seedProduct("Idli Sambar", "Steamed rice cakes with lentil stew.", base.Add(time.Hour))
	cached, err := uc.ListProducts(f.ctx)
	require.NoError(t, err)
	assert.Len(t, cached.Products, 1, "la segunda lectura debe salir de la caché")

	uc.Invalidate()
	fresh, err := uc.ListProducts(f.ctx)
	require.NoError(t, err)
	require.Len(t, fresh.Products, 2)
	assert.Equal(t, "Idli Sambar", fresh.Products[0].Name, "más reciente primero")
}

func TestCatalog_BusquedaSinDistinguirMayusculas(t *testing.T) {
	f := newFixture()
	uc := usecase.NewCatalogUseCase(f.categories, f.products, nil)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.seedProduct("Butter Chicken", "Creamy tomato gravy.", base)
	f.seedProduct("Dal Makhani", "Black lentils slow cooked with BUTTER.", base.Add(time.Minute))
	f.seedProduct("Jeera Rice", "Cumin tempered basmati.", base.Add(2*time.Minute))

	out, err := uc.SearchProducts(f.ctx, "  butter ")
	require.NoError(t, err)
	names := []string{}
	for _, p := range out.Products {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"Butter Chicken", "Dal Makhani"}, names)

	none, err := uc.SearchProducts(f.ctx, "pizza")
	require.NoError(t, err)
	assert.NotNil(t, none.Products)
	assert.Empty(t, none.Products)

	all, err := uc.SearchProducts(f.ctx, "")
	require.NoError(t, err)
	assert.Len(t, all.Products, 3)
}

func TestCatalog_GetCategoryErrores(t *testing.T) {
	f := newFixture()
	uc := usecase.NewCatalogUseCase(f.categories, f.products, nil)

	_, err := uc.GetCategory(f.ctx, "  ")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Invalid category id.", ve.Message)

	_, err = uc.GetCategory(f.ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.ListCategoryProducts(f.ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalog_PreciosFormateados(t *testing.T) {
	f := newFixture()
	uc := usecase.NewCatalogUseCase(f.categories, f.products, nil)
	in := validProduct("Chole Bhature")
	in.Price = "1234.5"
	in.SalePrice = "999"
	_, err := f.adminProd.Create(f.ctx, in)
	require.NoError(t, err)

	out, err := uc.ListProducts(f.ctx)
	require.NoError(t, err)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "₹1,234.50", out.Products[0].FormattedPrice)
	assert.Equal(t, "₹999.00", out.Products[0].FormattedSalePrice)
}
