package main

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foodzo-api/internal/application/catalog"
	"github.com/jhoicas/foodzo-api/internal/infrastructure/docrepo"
	"github.com/jhoicas/foodzo-api/internal/infrastructure/memory"
	"github.com/jhoicas/foodzo-api/pkg/logger"
)

const sampleCatalog = `{
  "products": [
    {"name": "Paneer Tikka", "description": "Smoky cottage cheese cubes.", "price": 249.5, "salePrice": "199",
     "rating": 4.5, "deliveryTime": {"value": 30, "unit": "Minutes"}, "imageUrl": "https://img.test/p1.png"},
    {"name": "Mango Lassi", "description": "Chilled yoghurt drink.", "price": "99", "rating": 4,
     "deliveryTime": {"value": 15, "unit": "minutes"}}
  ],
  "categories": [
    {"name": "Starters", "imageUrl": "https://img.test/c1.png", "productNames": ["paneer tikka", "No Existe"]},
    {"name": "Drinks", "productNames": ["Mango Lassi", "Paneer Tikka"]}
  ]
}`

func newTestSeeder() (*seeder, *docrepo.CategoryRepo, *docrepo.ProductRepo) {
	store := memory.NewDocumentStore()
	categories := docrepo.NewCategoryRepository(store)
	products := docrepo.NewProductRepository(store)
	return &seeder{
		categories: categories,
		products:   products,
		links:      catalog.NewLinkSynchronizer(store, nil, nil, 2),
		log:        logger.Nop(),
		now:        func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}, categories, products
}

func TestDecodeSeedFile_NormalizaUnidad(t *testing.T) {
	f, err := decodeSeedFile(strings.NewReader(sampleCatalog), formatJSON)
	require.NoError(t, err)
	require.Len(t, f.Products, 2)
	assert.Equal(t, "minutes", f.Products[0].DeliveryTime.Unit)
	assert.Equal(t, "249.5", f.Products[0].Price.String())
	require.NotNil(t, f.Products[0].SalePrice)
	assert.Nil(t, f.Products[1].SalePrice)
}

func TestDecodeSeedFile_RechazaUnidadYCamposDesconocidos(t *testing.T) {
	_, err := decodeSeedFile(strings.NewReader(`{"products":[{"name":"X","deliveryTime":{"value":1,"unit":"weeks"}}]}`), formatJSON)
	assert.ErrorContains(t, err, "weeks")

	_, err = decodeSeedFile(strings.NewReader(`{"items":[]}`), formatJSON)
	assert.Error(t, err)
}

const sampleCatalogYAML = `
products:
  - name: Masala Chai
    description: Spiced milk tea.
    price: 45
    salePrice: "39.5"
    rating: 4.8
    deliveryTime: {value: 10, unit: MINUTES}
categories:
  - name: Drinks
    productNames: [masala chai]
`

func TestDecodeSeedFile_YAML(t *testing.T) {
	f, err := decodeSeedFile(strings.NewReader(sampleCatalogYAML), formatYAML)
	require.NoError(t, err)
	require.Len(t, f.Products, 1)
	p := f.Products[0]
	assert.Equal(t, "45", p.Price.String())
	require.NotNil(t, p.SalePrice)
	assert.Equal(t, "39.5", p.SalePrice.String())
	assert.Equal(t, "minutes", p.DeliveryTime.Unit)
	assert.Equal(t, []string{"masala chai"}, f.Categories[0].ProductNames)

	_, err = decodeSeedFile(strings.NewReader("products:\n  - name: X\n    colour: red\n"), formatYAML)
	assert.Error(t, err, "campo desconocido")
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, formatYAML, formatFor("seed/catalog.YAML"))
	assert.Equal(t, formatYAML, formatFor("catalog.yml"))
	assert.Equal(t, formatJSON, formatFor("catalog.json"))
	assert.Equal(t, formatJSON, formatFor("catalog"))
}

func TestRootCmd_RechazaArgumentosDeMas(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"a.json", "b.json"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	assert.Error(t, cmd.Execute())

	f := newRootCmd().Flags()
	assert.NotNil(t, f.Lookup("dry-run"))
	assert.NotNil(t, f.Lookup("timeout"))
}

func TestSeeder_CreaYVinculaAmbosLados(t *testing.T) {
	s, categories, products := newTestSeeder()
	f, err := decodeSeedFile(strings.NewReader(sampleCatalog), formatJSON)
	require.NoError(t, err)
	ctx := context.Background()

	summary, err := s.run(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.ProductsCreated)
	assert.Equal(t, 2, summary.CategoriesCreated)
	assert.Zero(t, summary.LinkFailures)

	cats, err := categories.List(ctx, 10)
	require.NoError(t, err)
	byName := map[string][]string{}
	catIDs := map[string]string{}
	for _, c := range cats {
		byName[c.Name] = c.ProductIDs
		catIDs[c.Name] = c.ID
	}
	assert.Len(t, byName["Starters"], 1)
	assert.Len(t, byName["Drinks"], 2)

	prods, err := products.List(ctx, 10)
	require.NoError(t, err)
	for _, p := range prods {
		switch p.Name {
		case "Paneer Tikka":
			assert.ElementsMatch(t, []string{catIDs["Starters"], catIDs["Drinks"]}, p.CategoryIDs)
		case "Mango Lassi":
			assert.Equal(t, []string{catIDs["Drinks"]}, p.CategoryIDs)
		}
	}
}

func TestSeeder_SegundaCorridaActualizaSinDuplicar(t *testing.T) {
	s, categories, products := newTestSeeder()
	ctx := context.Background()
	f, err := decodeSeedFile(strings.NewReader(sampleCatalog), formatJSON)
	require.NoError(t, err)
	_, err = s.run(ctx, f)
	require.NoError(t, err)

	// Drinks deja de incluir Paneer Tikka: el producto debe perder ese vínculo.
	f.Categories[1].ProductNames = []string{"Mango Lassi"}
	summary, err := s.run(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.ProductsUpdated)
	assert.Equal(t, 2, summary.CategoriesUpdated)
	assert.Zero(t, summary.ProductsCreated+summary.CategoriesCreated)

	cats, err := categories.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	var starters string
	for _, c := range cats {
		if c.Name == "Starters" {
			starters = c.ID
		}
	}

	prods, err := products.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, prods, 2)
	for _, p := range prods {
		if p.Name == "Paneer Tikka" {
			assert.Equal(t, []string{starters}, p.CategoryIDs)
		}
	}
}
