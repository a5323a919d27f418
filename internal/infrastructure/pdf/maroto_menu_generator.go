// Package pdf genera la carta imprimible del catálogo con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título de la carta     │  Fecha de generación      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CATEGORÍA                                                  │
//	│  TABLA: Plato / descripción | Entrega | Rating | Precio     │
//	│  ... una sección por categoría con productos vinculados ... │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR a la tienda online + leyenda                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/foodzo-api/internal/application/dto"
	"github.com/jhoicas/foodzo-api/internal/application/ports"
)

var _ ports.MenuPDFGenerator = (*MarotoMenuGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 214, Green: 69, Blue: 40}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoMenuGenerator implementa ports.MenuPDFGenerator usando Maroto v2.
type MarotoMenuGenerator struct{}

// NewMarotoMenuGenerator construye el generador.
func NewMarotoMenuGenerator() *MarotoMenuGenerator { return &MarotoMenuGenerator{} }

// Generate renderiza la carta y devuelve los bytes del PDF.
func (g *MarotoMenuGenerator) Generate(menu *dto.MenuDTO) ([]byte, error) {
	if menu == nil {
		return nil, fmt.Errorf("pdf: carta vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(menu.Title+" - Menu", true).
		WithAuthor(menu.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(menu))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(menu.Sections) == 0 {
		m.AddRows(row.New(12).Add(col.New(12).Add(
			text.New("No dishes available yet.", props.Text{Size: 10, Align: align.Center, Top: 4, Color: colorGray}),
		)))
	}
	for _, s := range menu.Sections {
		m.AddRows(sectionRows(s)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(menu)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(menu *dto.MenuDTO) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(menu.Title, props.Text{
				Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 1,
			}),
			text.New("Our menu", props.Text{Size: 9, Top: 10, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generated "+menu.GeneratedAt.Format("02 Jan 2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// sectionRows: banda con el nombre de la categoría, cabecera y una fila por producto.
func sectionRows(s dto.MenuSectionDTO) []core.Row {
	rows := []core.Row{
		row.New(4),
		row.New(9).Add(col.New(12).Add(
			text.New(strings.ToUpper(s.Category), props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2,
			}),
		)),
		tableHeaderRow(),
	}
	for _, it := range s.Items {
		rows = append(rows, itemRow(it))
	}
	return rows
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Dish", 6, align.Left),
		h("Delivery", 2, align.Center),
		h("Rating", 1, align.Center),
		h("Price", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func itemRow(it dto.MenuItemDTO) core.Row {
	price := pdfMoney(it.FormattedPrice)
	if it.FormattedSale != "" {
		price = pdfMoney(it.FormattedSale) + " (was " + pdfMoney(it.FormattedPrice) + ")"
	}
	return row.New(12).Add(
		col.New(6).Add(
			text.New(it.Name, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1, Left: 1}),
			text.New(truncate(it.Description, 90), props.Text{Size: 7, Top: 6, Left: 1, Color: colorGray}),
		),
		col.New(2).Add(text.New(it.DeliveryTime, props.Text{Size: 8, Align: align.Center, Top: 2})),
		col.New(1).Add(text.New(it.Rating, props.Text{Size: 8, Align: align.Center, Top: 2})),
		col.New(3).Add(text.New(price, props.Text{Size: 8, Align: align.Right, Top: 2, Right: 1})),
	)
}

// footerRows: QR a la tienda online (si hay URL) + leyenda.
func footerRows(menu *dto.MenuDTO) []core.Row {
	legend := "Prices include applicable taxes. Availability may vary."
	if menu.StorefrontURL == "" {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New(legend, props.Text{Size: 7, Color: colorGray, Top: 2, Align: align.Center}),
		))}
	}
	return []core.Row{row.New(36).Add(
		col.New(3).Add(code.NewQr(menu.StorefrontURL, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Scan to order online", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 8, Left: 3, Color: colorPrimary,
			}),
			text.New(menu.StorefrontURL, props.Text{Size: 8, Top: 15, Left: 3, Color: colorGray}),
			text.New(legend, props.Text{Size: 7, Top: 22, Left: 3, Color: colorGray}),
		),
	)}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// pdfMoney reemplaza el símbolo de la rupia: las fuentes core del PDF no tienen ese glifo.
func pdfMoney(s string) string {
	return strings.Replace(s, "₹", "Rs. ", 1)
}

// truncate corta s a n runas agregando "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
