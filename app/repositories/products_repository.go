package repositories

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/printcraft/storefront/app/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

type ProductRepositoryImpl interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Filter(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetFeaturedProducts(ctx context.Context, limit int) ([]models.Product, error)
}

type catalogFile struct {
	Products []models.Product `yaml:"products"`
}

type productRepository struct {
	products []models.Product
	byID     map[string]int
}

// NewProductRepository loads the catalog from path, or from the embedded catalog when path is empty.
func NewProductRepository(path string) (ProductRepositoryImpl, error) {
	data := embeddedCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		data = b
	}
	return NewProductRepositoryFromYAML(data)
}

func NewProductRepositoryFromYAML(data []byte) (ProductRepositoryImpl, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	repo := &productRepository{
		products: make([]models.Product, 0, len(file.Products)),
		byID:     make(map[string]int, len(file.Products)),
	}
	for _, p := range file.Products {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, fmt.Errorf("parse catalog: product %q has no id", p.Name)
		}
		if _, dup := repo.byID[p.ID]; dup {
			return nil, fmt.Errorf("parse catalog: duplicate product id %q", p.ID)
		}
		if !p.Type.Valid() {
			return nil, fmt.Errorf("parse catalog: product %q has unknown type %q", p.ID, p.Type)
		}
		if !p.Price.IsPositive() {
			return nil, fmt.Errorf("parse catalog: product %q has non-positive price", p.ID)
		}
		repo.byID[p.ID] = len(repo.products)
		repo.products = append(repo.products, p)
	}
	return repo, nil
}

func (p *productRepository) GetProducts(ctx context.Context) ([]models.Product, error) {
	return p.Filter(ctx, models.ProductFilter{})
}

func (p *productRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	idx, ok := p.byID[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	product := cloneProduct(p.products[idx])
	return &product, nil
}

func (p *productRepository) Filter(_ context.Context, filter models.ProductFilter) ([]models.Product, error) {
	products := make([]models.Product, 0, len(p.products))
	for _, product := range p.products {
		if filter.Match(product) {
			products = append(products, cloneProduct(product))
		}
	}
	return products, nil
}

func (p *productRepository) GetFeaturedProducts(_ context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 || limit > len(p.products) {
		limit = len(p.products)
	}
	products := make([]models.Product, 0, limit)
	for _, product := range p.products[:limit] {
		products = append(products, cloneProduct(product))
	}
	return products, nil
}

// cloneProduct keeps callers from mutating the shared colour slices.
func cloneProduct(p models.Product) models.Product {
	p.Colors = append([]string(nil), p.Colors...)
	return p
}
