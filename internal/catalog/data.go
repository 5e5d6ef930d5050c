package catalog

import "pixibai/internal/domain"

// Default returns the built-in Pixibai catalog.
func Default() *Catalog {
	cat, err := New(defaultProducts())
	if err != nil {
		// The built-in data is validated by tests; reaching this is a bug.
		panic(err)
	}
	return cat
}

func defaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID:      "fotolibro",
			Type:    domain.TypeAlbum,
			Name:    "Fotolibros",
			Tagline: "Tus mejores recuerdos en un álbum impreso.",
			Details: []domain.DetailSection{
				{
					Title: "Tipos de fotolibros",
					Points: []string{
						"Precio: 89 - 220 PEN",
						"Tamaño: 16x16 cm / 21x21 cm",
						"Pastas: Duro / Blando",
						"Interiores: papel couché 150g",
						"Páginas: 60 / 80 / 100",
						"Envío: 7 a 10 días hábiles",
					},
				},
			},
			PriceText:      "Desde S/ 89.00",
			BasePriceCents: 8900,
			Options: &domain.ProductOptions{
				Sizes: []domain.ProductOption{
					{Name: "16x16 cm", PriceCents: 0},
					{Name: "21x21 cm", PriceCents: 4000},
				},
				Covers: []domain.ProductOption{
					{Name: "Blando", PriceCents: 0},
					{Name: "Duro", PriceCents: 2500},
				},
				Pages: []domain.ProductOption{
					{Name: "60", PriceCents: 0},
					{Name: "80", PriceCents: 3000},
					{Name: "100", PriceCents: 5000},
				},
			},
		},
		{
			ID:      "imanes",
			Type:    domain.TypeMagnets,
			Name:    "Imanes",
			Tagline: "Tus recuerdos en todo lugar.",
			Details: []domain.DetailSection{
				{
					Title:  "Detalles",
					Points: []string{"El detalle perfecto para tu refri u oficina o después de un viaje o evento."},
				},
				{
					Title:  "Especificaciones",
					Points: []string{"Paquete de 15 imanes", "Medidas: 7 x 7 cm", "Imán flexible de alta calidad"},
				},
			},
			PriceText:      "S/ 49.00",
			BasePriceCents: 4900,
		},
		{
			ID:      "cuadros",
			Type:    domain.TypeFrame,
			Name:    "PixyCuadros",
			Tagline: "Transforma tus recuerdos en arte para tu pared.",
			Details: []domain.DetailSection{
				{
					Title: "Características",
					Points: []string{
						"Impresión en papel fotográfico mate",
						"Montado sobre foamboard ligero",
						"Tamaño 21x21 cm",
						"Incluye cinta adhesiva doble contacto",
						"Se pega y despega sin dañar la pared.",
					},
				},
				{
					Title: "Costo",
					Points: []string{
						"1 cuadro 45 PEN",
						"3 cuadros 120 PEN",
						"6 cuadros 220 PEN",
						"Marco adicional: +20 PEN por cuadro.",
					},
				},
			},
			PriceText:      "Desde S/ 45.00",
			BasePriceCents: 4500,
			Options: &domain.ProductOptions{
				Frame: &domain.FrameAddOn{PriceCents: 2000},
				Tiers: []domain.Tier{
					{Qty: 1, PriceCents: 4500},
					{Qty: 3, PriceCents: 12000},
					{Qty: 6, PriceCents: 22000},
				},
			},
		},
		{
			ID:      "esferas",
			Type:    domain.TypeOrnaments,
			Name:    "Esferas Navideñas",
			Tagline: "Tus fotos favoritas para decorar el árbol.",
			Details: []domain.DetailSection{
				{
					Title:  "Detalles",
					Points: []string{"Fotos encapsuladas en acrílico transparente."},
				},
				{
					Title:  "Especificaciones",
					Points: []string{"Paquete con 6 piezas", "Dimensiones: 7 cm diámetro", "Incluye cinta decorativa"},
				},
			},
			PriceText:      "S/ 59.00",
			BasePriceCents: 5900,
		},
		{
			ID:      "tarjeta-regalo",
			Type:    domain.TypeGiftCard,
			Name:    "Tarjeta de Regalo",
			Tagline: "Regala a alguien especial crédito para cualquier producto.",
			Details: []domain.DetailSection{
				{
					Title: "Cómo funciona",
					Points: []string{
						"Elige un monto.",
						"Se enviará una tarjeta digital por correo electrónico.",
						"Válido por 12 meses.",
					},
				},
			},
			PriceText: "Elige un monto",
		},
	}
}
