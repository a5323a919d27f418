package ports

import "github.com/jhoicas/foodzo-api/internal/application/dto"

// MenuPDFGenerator genera la carta imprimible del catálogo.
type MenuPDFGenerator interface {
	Generate(menu *dto.MenuDTO) ([]byte, error)
}
