// Package seed loads sample catalog data into a running service.
package seed

import (
	"context"
	"fmt"
	"os"

	"catalog/internal/app"
	"catalog/internal/models"
	"catalog/internal/validation"
	"catalog/pkg/apperror"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Data is the content of a seed file.
type Data struct {
	Categories      []string      `yaml:"categories"`
	GroupCategories []GroupSeed   `yaml:"groupCategories"`
	Products        []ProductSeed `yaml:"products"`
}

// GroupSeed is a group category whose members are given by category name.
type GroupSeed struct {
	Name       string   `yaml:"name"`
	Categories []string `yaml:"categories"`
}

// ProductSeed is a product entry of a seed file.
type ProductSeed struct {
	Name     string  `yaml:"name"`
	Category string  `yaml:"category"`
	Price    float64 `yaml:"price"`
	Image    string  `yaml:"image"`
}

// Result counts what a run created and skipped.
type Result struct {
	Created int
	Skipped int
}

// Default returns the built-in sample catalog.
func Default() Data {
	return Data{
		Categories: []string{"Headphones", "Speakers", "Microphones"},
		GroupCategories: []GroupSeed{
			{Name: "Audio", Categories: []string{"Headphones", "Speakers", "Microphones"}},
		},
		Products: []ProductSeed{
			{Name: "Delta Sound Pro X1", Category: "Headphones", Price: 199.99, Image: "/window.svg"},
			{Name: "Mobi Mini Speaker", Category: "Speakers", Price: 49.99, Image: "/file.svg"},
			{Name: "Delta Studio Mic", Category: "Microphones", Price: 129.99, Image: "/globe.svg"},
			{Name: "Wireless Earbuds Pro", Category: "Headphones", Price: 89.99, Image: "/next.svg"},
			{Name: "Studio Monitor Speakers", Category: "Speakers", Price: 299.99, Image: "/vercel.svg"},
			{Name: "Professional Condenser Mic", Category: "Microphones", Price: 199.99, Image: "/window.svg"},
		},
	}
}

// Load reads a YAML seed file.
func Load(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return data, nil
}

// Run creates every entry of data through the catalog services. Entries whose
// name already exists are skipped, so a run can be repeated.
func Run(ctx context.Context, svc app.Services, data Data, log zerolog.Logger) (Result, error) {
	var res Result
	ids := map[string]string{}

	for _, name := range data.Categories {
		category, err := svc.Categories.Create(ctx, validation.Record{"name": name})
		switch {
		case err == nil:
			res.Created++
			ids[models.NameKey(category.Name)] = category.ID
			log.Info().Str("category", category.Name).Msg("created")
		case apperror.HasCode(err, apperror.CodeCategoryNameDuplicate):
			res.Skipped++
			log.Info().Str("category", name).Msg("already exists")
		default:
			return res, fmt.Errorf("category %q: %w", name, err)
		}
	}

	for _, g := range data.GroupCategories {
		members := make([]string, 0, len(g.Categories))
		for _, name := range g.Categories {
			id, err := categoryID(ctx, svc, ids, name)
			if err != nil {
				return res, fmt.Errorf("group category %q: %w", g.Name, err)
			}
			members = append(members, id)
		}
		_, err := svc.GroupCategories.Create(ctx, validation.Record{"name": g.Name, "categories": members})
		switch {
		case err == nil:
			res.Created++
			log.Info().Str("group_category", g.Name).Int("categories", len(members)).Msg("created")
		case apperror.HasCode(err, apperror.CodeGroupCategoryNameDuplicate):
			res.Skipped++
			log.Info().Str("group_category", g.Name).Msg("already exists")
		default:
			return res, fmt.Errorf("group category %q: %w", g.Name, err)
		}
	}

	for _, p := range data.Products {
		_, err := svc.Products.Create(ctx, validation.Record{
			"name":     p.Name,
			"category": p.Category,
			"price":    p.Price,
			"image":    p.Image,
		})
		switch {
		case err == nil:
			res.Created++
			log.Info().Str("product", p.Name).Msg("created")
		case apperror.HasCode(err, apperror.CodeProductNameDuplicate):
			res.Skipped++
			log.Info().Str("product", p.Name).Msg("already exists")
		default:
			return res, fmt.Errorf("product %q: %w", p.Name, err)
		}
	}
	return res, nil
}

// categoryID resolves a category name to its id, looking it up in storage
// when this run did not create it.
func categoryID(ctx context.Context, svc app.Services, known map[string]string, name string) (string, error) {
	key := models.NameKey(name)
	if id, ok := known[key]; ok {
		return id, nil
	}
	c, err := svc.Categories.FindByName(ctx, name)
	if err != nil {
		return "", fmt.Errorf("unknown category %q: %w", name, err)
	}
	known[key] = c.ID
	return c.ID, nil
}
