package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foodzo-api/internal/application/dto"
	"github.com/jhoicas/foodzo-api/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestAdminCategory_CreateExigeImagen(t *testing.T) {
	f := newFixture()

	_, err := f.adminCat.Create(f.ctx, dto.CategoryInput{Name: "Desserts"})
	assert.ErrorIs(t, err, domain.ErrImageRequired)
	assert.Zero(t, f.images.n, "sin imagen no se sube nada")
}

func TestAdminCategory_ValidaNombre(t *testing.T) {
	f := newFixture()
	cases := map[string]string{
		"   ":                   "Category name is required.",
		"A":                     "Category name must be between 2 and 40 characters.",
		strings.Repeat("a", 41): "Category name must be between 2 and 40 characters.",
	}
	for name, want := range cases {
		_, err := f.adminCat.Create(f.ctx, dto.CategoryInput{Name: name, Image: image()})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve, name)
		assert.Equal(t, want, ve.Message)
	}
}

func TestAdminCategory_CreateFallidoBorraImagenSubida(t *testing.T) {
	f := newFixture()
	f.categories.failCreate = true

	_, err := f.adminCat.Create(f.ctx, dto.CategoryInput{Name: "Snacks", Image: image()})
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, []string{"foodzo/categories/img-1"}, f.images.destroyed)
	assert.Zero(t, f.invalidator.n)
}

func TestAdminCategory_SubidaFallida(t *testing.T) {
	f := newFixture()
	f.images.failUpload = true

	_, err := f.adminCat.Create(f.ctx, dto.CategoryInput{Name: "Snacks", Image: image()})
	assert.ErrorIs(t, err, domain.ErrImageUpload)
}

func TestAdminCategory_CreateVinculaProductos(t *testing.T) {
	f := newFixture()
	p1, err := f.adminProd.Create(f.ctx, validProduct("Veg Biryani"))
	require.NoError(t, err)
	p2, err := f.adminProd.Create(f.ctx, validProduct("Raita Bowl"))
	require.NoError(t, err)

	created, err := f.adminCat.Create(f.ctx, dto.CategoryInput{
		Name:       "  Mains ",
		ProductIDs: []string{p1.ID, " ", p2.ID, p1.ID},
		Image:      image(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Mains", created.Name)
	assert.Equal(t, []string{p1.ID, p2.ID}, created.ProductIDs)
	assert.Contains(t, f.images.folders, "foodzo/categories")

	for _, id := range []string{p1.ID, p2.ID} {
		p, err := f.products.GetByID(f.ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{created.ID}, p.CategoryIDs)
	}
	assert.Equal(t, 3, f.invalidator.n, "cada alta invalida la caché del catálogo")
}

func TestAdminCategory_UpdateReemplazaVinculosEImagen(t *testing.T) {
	f := newFixture()
	p1, err := f.adminProd.Create(f.ctx, validProduct("Veg Biryani"))
	require.NoError(t, err)
	p2, err := f.adminProd.Create(f.ctx, validProduct("Raita Bowl"))
	require.NoError(t, err)
	created, err := f.adminCat.Create(f.ctx, dto.CategoryInput{Name: "Mains", ProductIDs: []string{p1.ID}, Image: image()})
	require.NoError(t, err)
	oldImage := "foodzo/categories/img-3"

	updated, err := f.adminCat.Update(f.ctx, created.ID, dto.CategoryInput{
		Name:       "Main Course",
		ProductIDs: []string{p2.ID},
		Image:      image(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Main Course", updated.Name)
	assert.Equal(t, "https://img.test/foodzo/categories/img-4", updated.ImageURL)
	assert.Equal(t, []string{oldImage}, f.images.destroyed, "la imagen anterior se borra al reemplazarla")

	old, err := f.products.GetByID(f.ctx, p1.ID)
	require.NoError(t, err)
	assert.Empty(t, old.CategoryIDs)
	cur, err := f.products.GetByID(f.ctx, p2.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{created.ID}, cur.CategoryIDs)
}

func TestAdminCategory_UpdateSinImagenConservaLaActual(t *testing.T) {
	f := newFixture()
	created, err := f.adminCat.Create(f.ctx, dto.CategoryInput{Name: "Mains", Image: image()})
	require.NoError(t, err)

	updated, err := f.adminCat.Update(f.ctx, created.ID, dto.CategoryInput{Name: "Mains 2"})
	require.NoError(t, err)
	assert.Equal(t, created.ImageURL, updated.ImageURL)
	assert.Empty(t, f.images.destroyed)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
}

func TestAdminCategory_UpdateFallidoBorraImagenNueva(t *testing.T) {
	f := newFixture()
	created, err := f.adminCat.Create(f.ctx, dto.CategoryInput{Name: "Mains", Image: image()})
	require.NoError(t, err)
	f.categories.failUpdate = true

	_, err = f.adminCat.Update(f.ctx, created.ID, dto.CategoryInput{Name: "Mains", Image: image()})
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, []string{"foodzo/categories/img-2"}, f.images.destroyed,
		"solo se borra la imagen recién subida, nunca la vigente")
}

func TestAdminCategory_UpdateYDeleteInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.adminCat.Update(f.ctx, "no-existe", dto.CategoryInput{Name: "Mains"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.adminCat.Delete(f.ctx, "no-existe"), domain.ErrNotFound)

	var ve *domain.ValidationError
	assert.ErrorAs(t, f.adminCat.Delete(f.ctx, " "), &ve)
}

func TestAdminCategory_DeleteDesvinculaYBorraImagen(t *testing.T) {
	f := newFixture()
	p, err := f.adminProd.Create(f.ctx, validProduct("Veg Biryani"))
	require.NoError(t, err)
	created, err := f.adminCat.Create(f.ctx, dto.CategoryInput{Name: "Mains", ProductIDs: []string{p.ID}, Image: image()})
	require.NoError(t, err)

	require.NoError(t, f.adminCat.Delete(f.ctx, created.ID))

	gone, err := f.categories.GetByID(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
	after, err := f.products.GetByID(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, after.CategoryIDs)
	assert.Equal(t, []string{"foodzo/categories/img-2"}, f.images.destroyed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestAdminProduct_Validaciones(t *testing.T) {
	f := newFixture()
	cases := []struct {
		name   string
		mutate func(*dto.ProductInput)
		want   string
	}{
		{"nombre corto", func(in *dto.ProductInput) { in.Name = "ab" }, "Product name must be between 3 and 80 characters."},
		{"descripción corta", func(in *dto.ProductInput) { in.Description = "short" }, "Description must be between 10 and 500 characters."},
		{"precio cero", func(in *dto.ProductInput) { in.Price = "0" }, "Price must be greater than 0 and below 100000."},
		{"precio no numérico", func(in *dto.ProductInput) { in.Price = "abc" }, "Price must be greater than 0 and below 100000."},
		{"oferta mayor al precio", func(in *dto.ProductInput) { in.SalePrice = "121" }, "Sale price must be positive and cannot exceed the price."},
		{"oferta inválida", func(in *dto.ProductInput) { in.SalePrice = "x" }, "Sale price must be a valid number."},
		{"rating fuera de rango", func(in *dto.ProductInput) { in.Rating = "5.1" }, "Rating must be between 0 and 5."},
		{"entrega cero", func(in *dto.ProductInput) { in.DeliveryValue = "0" }, "Delivery time must be between 1 and 1000."},
		{"entrega decimal", func(in *dto.ProductInput) { in.DeliveryValue = "1.5" }, "Delivery time must be a whole number."},
		{"unidad inválida", func(in *dto.ProductInput) { in.DeliveryUnit = "weeks" }, "Invalid delivery time unit."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validProduct("Paneer Roll")
			tc.mutate(&in)
			_, err := f.adminProd.Create(f.ctx, in)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.want, ve.Message)
		})
	}
	assert.Zero(t, f.images.n, "una entrada inválida no sube imagen")
}

func TestAdminProduct_CreateNormalizaYVincula(t *testing.T) {
	f := newFixture()
	cat, err := f.adminCat.Create(f.ctx, dto.CategoryInput{Name: "Rolls", Image: image()})
	require.NoError(t, err)

	in := validProduct("Paneer Roll", cat.ID, "categoria-fantasma")
	in.DeliveryUnit = " HOURS "
	in.SalePrice = "0"
	out, err := f.adminProd.Create(f.ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "hours", out.DeliveryTime.Unit)
	assert.Equal(t, "₹0.00", out.FormattedSalePrice)
	assert.Contains(t, f.images.folders, "foodzo/products")

	got, err := f.categories.GetByID(f.ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{out.ID}, got.ProductIDs)
}

func TestAdminProduct_UpdateQuitaCategoriaYBorraImagenAnterior(t *testing.T) {
	f := newFixture()
	c1, err := f.adminCat.Create(f.ctx, dto.CategoryInput{Name: "Rolls", Image: image()})
	require.NoError(t, err)
	c2, err := f.adminCat.Create(f.ctx, dto.CategoryInput{Name: "Wraps", Image: image()})
	require.NoError(t, err)
	p, err := f.adminProd.Create(f.ctx, validProduct("Paneer Roll", c1.ID))
	require.NoError(t, err)

	in := validProduct("Paneer Wrap", c2.ID)
	out, err := f.adminProd.Update(f.ctx, p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Paneer Wrap", out.Name)
	assert.Equal(t, []string{c2.ID}, out.CategoryIDs)
	assert.Equal(t, []string{"foodzo/products/img-3"}, f.images.destroyed)

	first, err := f.categories.GetByID(f.ctx, c1.ID)
	require.NoError(t, err)
	assert.Empty(t, first.ProductIDs)
	second, err := f.categories.GetByID(f.ctx, c2.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID}, second.ProductIDs)
}

func TestAdminProduct_DeleteDesvinculaDeCategorias(t *testing.T) {
	f := newFixture()
	cat, err := f.adminCat.Create(f.ctx, dto.CategoryInput{Name: "Rolls", Image: image()})
	require.NoError(t, err)
	p, err := f.adminProd.Create(f.ctx, validProduct("Paneer Roll", cat.ID))
	require.NoError(t, err)

	require.NoError(t, f.adminProd.Delete(f.ctx, p.ID))

	got, err := f.categories.GetByID(f.ctx, cat.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ProductIDs)
	assert.ErrorIs(t, f.adminProd.Delete(f.ctx, p.ID), domain.ErrNotFound)

	list, err := f.adminProd.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, list.Products)
}
