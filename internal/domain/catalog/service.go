package catalog

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/toyshub/internal/apperr"
	"github.com/example/toyshub/internal/event"
)

var (
	ErrProductNotFound  = apperr.NotFound("product not found")
	ErrCategoryNotFound = apperr.NotFound("category not found")
	ErrDuplicateProduct = apperr.Validation("product name or SKU already exists")
	ErrInvalidRating    = apperr.Validation("rating must be between 1 and 5")
)

// ProductStore persists product documents. Insert and Update must enforce
// SKU and name uniqueness at the storage layer and return
// ErrDuplicateProduct on a violation; an application-level pre-check would
// leave a race window between concurrent writers.
type ProductStore interface {
	Insert(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Get(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, offset, limit int) ([]*Product, int, error)
	Delete(ctx context.Context, id string) error
}

type CategoryStore interface {
	Insert(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Get(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	products   ProductStore
	categories CategoryStore
	publisher  event.Publisher
}

func NewService(products ProductStore, categories CategoryStore, publisher event.Publisher) *Service {
	return &Service{
		products:   products,
		categories: categories,
		publisher:  publisher,
	}
}

type CreateProductInput struct {
	Name           string
	SKU            string
	Price          decimal.Decimal
	OriginalPrice  decimal.Decimal
	Stock          int
	CategoryID     string
	ImageURLs      []string
	Variants       []VariantInput
	Specifications []SpecEntry
}

func (s *Service) CreateProduct(ctx context.Context, in CreateProductInput) (*ProductView, error) {
	if in.Name == "" {
		return nil, apperr.Validation("product name is required")
	}
	if in.SKU == "" {
		return nil, apperr.Validation("sku is required")
	}
	if in.Price.IsNegative() {
		return nil, apperr.Validation("price must not be negative")
	}

	now := time.Now()
	images := in.ImageURLs
	if images == nil {
		images = []string{}
	}
	p := &Product{
		ID:             uuid.New().String(),
		Name:           in.Name,
		SKU:            in.SKU,
		Price:          in.Price,
		OriginalPrice:  in.OriginalPrice,
		Stock:          in.Stock,
		CategoryID:     in.CategoryID,
		Images:         images,
		Variants:       assignVariantImages(images, in.Variants),
		Specifications: EncodeSpecs(in.Specifications),
		Reviews:        []Review{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.products.Insert(ctx, p); err != nil {
		return nil, err
	}
	return s.view(ctx, p), nil
}

// UpdateProductInput carries the fields to change. Nil pointers leave the
// stored value untouched. NewImageURLs append to the flat image list and
// feed the variant partitioner when Variants is present.
type UpdateProductInput struct {
	Name           *string
	SKU            *string
	Price          *decimal.Decimal
	OriginalPrice  *decimal.Decimal
	Stock          *int
	CategoryID     *string
	NewImageURLs   []string
	Variants       []VariantInput
	Specifications []SpecEntry
	HasSpecs       bool
}

func (s *Service) UpdateProduct(ctx context.Context, id string, in UpdateProductInput) (*ProductView, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.SKU != nil {
		p.SKU = *in.SKU
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.OriginalPrice != nil {
		p.OriginalPrice = *in.OriginalPrice
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
	if len(in.NewImageURLs) > 0 {
		p.Images = append(p.Images, in.NewImageURLs...)
	}
	if in.Variants != nil {
		p.Variants = assignVariantImages(in.NewImageURLs, in.Variants)
	}
	if in.HasSpecs {
		p.Specifications = EncodeSpecs(in.Specifications)
	}
	p.UpdatedAt = time.Now()

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.view(ctx, p), nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*ProductView, error) {
	p, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, p), nil
}

// ListProducts returns one page of products, newest first, together with
// the total catalog size.
func (s *Service) ListProducts(ctx context.Context, page, limit int) ([]*ProductView, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	products, total, err := s.products.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}
	views := make([]*ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, s.view(ctx, p))
	}
	return views, total, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

type ReviewInput struct {
	Name    string
	Rating  float64
	Comment string
	Email   string
	Images  []string
	UserID  string
}

// AddReview appends a review and recomputes the running aggregate. Users
// are not deduplicated; submitting twice counts twice.
func (s *Service) AddReview(ctx context.Context, productID string, in ReviewInput) ([]Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}

	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	name := in.Name
	if name == "" {
		name = "Anonymous"
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}
	p.Reviews = append(p.Reviews, Review{
		Name:      name,
		Rating:    in.Rating,
		Comment:   in.Comment,
		Email:     in.Email,
		Images:    images,
		UserID:    in.UserID,
		CreatedAt: time.Now(),
	})

	p.NumReviews = len(p.Reviews)
	var sum float64
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	p.Rating = sum / float64(p.NumReviews)
	p.UpdatedAt = time.Now()

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}

	s.publish(ctx, productID, event.TypeProductReviewed, event.ProductReviewed{
		ProductID:   p.ID,
		ProductName: p.Name,
		Reviewer:    name,
		Rating:      in.Rating,
		ReviewedAt:  time.Now(),
	})

	return p.Reviews, nil
}

// Categories

func (s *Service) CreateCategory(ctx context.Context, name, image, description string) (*Category, error) {
	if name == "" {
		return nil, apperr.Validation("category name is required")
	}
	now := time.Now()
	c := &Category{
		ID:          uuid.New().String(),
		Name:        name,
		Image:       image,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.categories.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id, name, image, description string) (*Category, error) {
	c, err := s.categories.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		c.Name = name
	}
	if image != "" {
		c.Image = image
	}
	if description != "" {
		c.Description = description
	}
	c.UpdatedAt = time.Now()
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.categories.List(ctx)
}

// DeleteCategory removes the category record only. Products keep their
// dangling categoryId; read paths resolve it to "uncategorized".
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}

// view builds the read shape: decoded specifications, cleaned image URLs
// and the resolved category. The stored document is left untouched.
func (s *Service) view(ctx context.Context, stored *Product) *ProductView {
	p := *stored
	p.Images = cleanImageURLs(p.Images)
	variants := make([]Variant, len(p.Variants))
	for i, v := range p.Variants {
		variants[i] = Variant{Color: v.Color, Images: cleanImageURLs(v.Images)}
	}
	p.Variants = variants

	view := &ProductView{
		Product:        p,
		Specifications: DecodeSpecs(p.Specifications),
	}
	if p.CategoryID != "" {
		if c, err := s.categories.Get(ctx, p.CategoryID); err == nil {
			view.Category = c
		}
	}
	return view
}

func (s *Service) publish(ctx context.Context, key, eventType string, payload any) {
	if s.publisher == nil {
		return
	}
	env, err := event.New(eventType, payload)
	if err != nil {
		log.Printf("[Catalog] Failed to build %s event: %v", eventType, err)
		return
	}
	if err := s.publisher.Publish(ctx, key, env); err != nil {
		log.Printf("[Catalog] Failed to publish %s event: %v", eventType, err)
	}
}
