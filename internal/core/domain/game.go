package domain

// Category groups games on the public catalog pages.
type Category string

const (
	CategoryTerror       Category = "terror"
	CategoryAccion       Category = "accion"
	CategoryCarreras     Category = "carreras"
	CategoryMundoAbierto Category = "mundoabierto"
	CategorySuspenso     Category = "suspenso"
)

// Categories lists every catalog category in display order.
var Categories = []Category{
	CategoryTerror,
	CategoryAccion,
	CategoryCarreras,
	CategoryMundoAbierto,
	CategorySuspenso,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Game is a catalog entry.
type Game struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    Category `json:"category"`
	Image       string   `json:"image"`
	Stock       int      `json:"stock"`
	Active      bool     `json:"active"`
}
