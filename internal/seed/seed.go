// Package seed заполняет пустой каталог демонстрационными данными.
package seed

import (
	"CurtainSamples/internal/service"
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"
)

// FeatureSeparator разделитель особенностей в поле features.
const FeatureSeparator = "、"

type categorySeed struct {
	name        string
	description string
}

var defaultCategories = []categorySeed{
	{"Modern Minimal", "Clean, understated curtains for contemporary interiors"},
	{"European Luxury", "Rich, ornate curtains with a classic European look"},
	{"Country Garden", "Fresh, natural curtains for a warm and cosy room"},
	{"Nordic", "Simple Scandinavian designs that balance modern and natural"},
	{"Chinese Classic", "Traditional patterns rooted in Eastern aesthetics"},
}

var (
	namePrefixes = []string{"Elegant", "Noble", "Graceful", "Stylish", "Simple", "Luxury", "Fresh", "Romantic", "Cosy", "Comfort"}
	nameSuffixes = []string{"Blackout Curtain", "Sheer Voile", "Fabric Curtain", "Roller Blind", "Venetian Blind", "Roman Shade", "Lace Curtain", "Velvet Curtain", "Jacquard Curtain", "Printed Curtain"}
	materials    = []string{"Cotton-linen blend", "Pure cotton", "Polyester", "Velvet", "Linen", "Silk", "Rayon", "Polyester fibre", "Nylon", "Wool blend"}
	widths       = []string{"1.5 m", "2.0 m", "2.2 m", "2.5 m", "2.8 m", "3.0 m", "3.5 m", "4.0 m", "Custom width"}
	patterns     = []string{"Solid", "Striped", "Checked", "Floral", "Abstract", "Geometric", "Animal", "Landscape", "Ink wash", "Ethnic"}
	styles       = []string{"Modern minimal", "European classic", "American country", "Nordic", "Chinese traditional", "Mediterranean", "Japanese", "Industrial", "Bohemian", "Light luxury"}
	features     = []string{
		"waterproof", "mould resistant", "thermal", "soundproof", "UV protection", "easy to clean", "eco material", "wrinkle resistant", "flame retardant", "anti-static",
		"high blackout", "breathable", "soft touch", "colourfast", "fade resistant", "stain resistant", "dustproof", "antibacterial", "hypoallergenic", "machine washable",
	}
	descriptionTemplates = []string{
		"This {style} {name} is made of {material}, {width} wide with a {pattern} pattern. It is {features}, an ideal choice for your home.",
		"The {name} stands out with its {pattern} pattern and {style} look. {material} keeps it durable and comfortable, and the {width} width fits most windows. Great for homes that value being {features}.",
		"Crafted from selected {material}, the {name} shows the charm of {style} design. The {pattern} pattern feels fresh, the {width} size suits many needs, and being {features} makes it a popular pick.",
		"A {style} {name} in high quality {material}. Flexible {width} sizing, a distinctive {pattern} pattern and {features} features cover everyday needs.",
		"This {name} blends {style} elements with soft {material}. The {pattern} pattern is refined, {width} width options are available and it is {features}.",
	}
)

// Summary итог прогона.
type Summary struct {
	CategoriesCreated int
	ExistingCurtains  int64
	CurtainsCreated   int
}

// Run создаёт пять категорий, если их нет, и добавляет шторы, пока их не станет target.
// Повторный запуск при count >= target ничего не меняет.
func Run(ctx context.Context, catalog *service.CatalogService, target int, rng *rand.Rand, logger *zap.SugaredLogger) (Summary, error) {
	var sum Summary

	cats, err := catalog.ListCategories(ctx)
	if err != nil {
		return sum, err
	}
	if len(cats) == 0 {
		logger.Infow("creating curtain categories", "count", len(defaultCategories))
		for _, c := range defaultCategories {
			name, desc := c.name, c.description
			if _, err := catalog.CreateCategory(ctx, service.CategoryFields{Name: &name, Description: &desc}); err != nil {
				return sum, fmt.Errorf("seed category %q: %w", c.name, err)
			}
			sum.CategoriesCreated++
		}
		if cats, err = catalog.ListCategories(ctx); err != nil {
			return sum, err
		}
	}

	count, err := catalog.CountCurtains(ctx)
	if err != nil {
		return sum, err
	}
	sum.ExistingCurtains = count
	if count >= int64(target) {
		logger.Infow("catalog already populated, nothing to add", "curtains", count, "target", target)
		return sum, nil
	}

	toAdd := target - int(count)
	logger.Infow("generating curtain samples", "count", toAdd)
	for i := 0; i < toAdd; i++ {
		cat := cats[rng.IntN(len(cats))]
		in := randomCurtain(rng, cat.ID)
		d, err := catalog.CreateCurtain(ctx, in)
		if err != nil {
			return sum, fmt.Errorf("seed curtain %d: %w", i+1, err)
		}
		sum.CurtainsCreated++
		logger.Infow("curtain added",
			"n", i+1,
			"name", d.Name,
			"category", d.CategoryName,
			"price", *d.Price,
			"in_stock", d.InStock,
			"is_new", d.IsNew,
		)
	}
	return sum, nil
}

func randomCurtain(rng *rand.Rand, categoryID int64) service.CurtainFields {
	name := pick(rng, namePrefixes) + " " + pick(rng, nameSuffixes)
	material := pick(rng, materials)
	width := pick(rng, widths)
	pattern := pick(rng, patterns)
	style := pick(rng, styles)
	feats := pickFeatures(rng, 2+rng.IntN(3))

	description := strings.NewReplacer(
		"{name}", name,
		"{style}", style,
		"{material}", material,
		"{width}", width,
		"{pattern}", pattern,
		"{features}", strings.Join(feats, ", "),
	).Replace(pick(rng, descriptionTemplates))

	featureList := strings.Join(feats, FeatureSeparator)
	price := math.Round((100+rng.Float64()*1900)*100) / 100
	inStock := rng.Float64() < 0.8
	isNew := rng.Float64() < 0.2

	return service.CurtainFields{
		Name:        &name,
		Description: &description,
		Price:       &price,
		Material:    &material,
		Width:       &width,
		Pattern:     &pattern,
		Style:       &style,
		Features:    &featureList,
		InStock:     &inStock,
		IsNew:       &isNew,
		CategoryID:  &categoryID,
	}
}

func pick(rng *rand.Rand, from []string) string {
	return from[rng.IntN(len(from))]
}

// pickFeatures n различных особенностей.
func pickFeatures(rng *rand.Rand, n int) []string {
	idx := rng.Perm(len(features))[:n]
	res := make([]string, 0, n)
	for _, i := range idx {
		res = append(res, features[i])
	}
	return res
}
