package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"sportshop/internal/apperror"
	"sportshop/internal/models"
	"sportshop/internal/repositories"
	"sportshop/pkg/cache"
	"sportshop/pkg/filestore"

	"github.com/sirupsen/logrus"
)

const productListKey = "products:all"

// ProductInput carries the writable catalog fields. Nil fields are left
// untouched on update. OnSale is not writable; it is always derived.
type ProductInput struct {
	Name         *string
	Description  *string
	Brand        *string
	Category     *string
	Price        *float64
	SalePrice    *float64
	Discount     *float64
	CountInStock *int
	Image        *string
}

// ImageUpload is an image file sent along with a product write.
type ImageUpload struct {
	Filename string
	Body     io.Reader
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	cache    cache.Cache
	cacheTTL time.Duration
	files    filestore.FileStore
}

// NewProductService creates a new ProductService. A nil cache disables caching.
func NewProductService(repo repositories.ProductRepository, c cache.Cache, cacheTTL time.Duration, files filestore.FileStore) *ProductService {
	if c == nil {
		c = cache.Noop{}
	}
	return &ProductService{
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
		files:    files,
	}
}

// List returns the whole catalog, from the cache when possible.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	found, err := s.cache.Get(ctx, productListKey, &products)
	if err != nil {
		logrus.WithError(err).Warn("product cache read failed")
	}
	if found {
		return products, nil
	}

	products, err = s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	if err := s.cache.Set(ctx, productListKey, products, s.cacheTTL); err != nil {
		logrus.WithError(err).Warn("product cache write failed")
	}
	return products, nil
}

// ListSale returns the discounted products.
func (s *ProductService) ListSale(ctx context.Context) ([]models.Product, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	sale := []models.Product{}
	for _, p := range all {
		if p.IsDiscounted() {
			sale = append(sale, p)
		}
	}
	return sale, nil
}

// Get returns one product or apperror.ErrNotFound.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product with ID %s: %w", id, apperror.ErrNotFound)
	}
	return product, nil
}

// Create adds a product. When image is set it is uploaded and its URL wins
// over in.Image.
func (s *ProductService) Create(ctx context.Context, in ProductInput, image *ImageUpload) (*models.Product, error) {
	product := &models.Product{}
	in.applyTo(product)
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := s.attachImage(ctx, product, image); err != nil {
		return nil, err
	}

	product.RefreshOnSale()
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	logrus.WithFields(logrus.Fields{"event": "product_created", "product_id": product.ID}).Info("product created")
	return product, nil
}

// Update applies in to product id.
func (s *ProductService) Update(ctx context.Context, id string, in ProductInput, image *ImageUpload) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.applyTo(product)
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := s.attachImage(ctx, product, image); err != nil {
		return nil, err
	}

	product.RefreshOnSale()
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return product, nil
}

// Delete removes product id.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *ProductService) attachImage(ctx context.Context, product *models.Product, image *ImageUpload) error {
	if image == nil {
		return nil
	}
	if s.files == nil {
		return fmt.Errorf("image upload is not configured: %w", apperror.ErrValidation)
	}
	url, err := s.files.Upload(ctx, image.Filename, image.Body)
	if err != nil {
		return err
	}
	product.Image = url
	return nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, productListKey); err != nil {
		logrus.WithError(err).Warn("product cache invalidation failed")
	}
}

func (in ProductInput) applyTo(p *models.Product) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Brand != nil {
		p.Brand = *in.Brand
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.SalePrice != nil {
		p.SalePrice = *in.SalePrice
	}
	if in.Discount != nil {
		p.Discount = *in.Discount
	}
	if in.CountInStock != nil {
		p.CountInStock = *in.CountInStock
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
}

func validateProduct(p *models.Product) error {
	errs := apperror.FieldErrors{}
	if p.Name == "" {
		errs["name"] = "is required"
	}
	if p.Price < 0 {
		errs["price"] = "must be >= 0"
	}
	if p.SalePrice < 0 {
		errs["salePrice"] = "must be >= 0"
	}
	if p.Discount < 0 || p.Discount > 100 {
		errs["discount"] = "must be between 0 and 100"
	}
	if p.CountInStock < 0 {
		errs["countInStock"] = "must be >= 0"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
