package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"sportshop/internal/apperror"
	"sportshop/internal/middleware"
	"sportshop/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers the product routes. Reads are public, writes are
// for administrators.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authn fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/sale", h.HandleGetSaleProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", authn, middleware.RequireAdmin(), h.HandleCreateProduct)
	productRoutes.Put("/:id", authn, middleware.RequireAdmin(), h.HandleUpdateProduct)
	productRoutes.Delete("/:id", authn, middleware.RequireAdmin(), h.HandleDeleteProduct)
}

func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleGetSaleProducts lists discounted products.
func (h *ProductHandler) HandleGetSaleProducts(c *fiber.Ctx) error {
	products, err := h.service.ListSale(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a product from a JSON or multipart body.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	in, image, err := parseProduct(c)
	if err != nil {
		return err
	}
	if image != nil {
		defer image.close()
	}

	product, err := h.service.Create(c.UserContext(), in, image.upload())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies the sent fields to an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	in, image, err := parseProduct(c)
	if err != nil {
		return err
	}
	if image != nil {
		defer image.close()
	}

	product, err := h.service.Update(c.UserContext(), c.Params("id"), in, image.upload())
	if err != nil {
		return err
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Product with ID %s deleted successfully", id)})
}

// ProductRequest is the JSON form of a product write. onSale is not
// accepted; it is derived from the prices.
type ProductRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string  `json:"description"`
	Brand        *string  `json:"brand"`
	Category     *string  `json:"category"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	SalePrice    *float64 `json:"salePrice" validate:"omitempty,gte=0"`
	Discount     *float64 `json:"discount" validate:"omitempty,gte=0,lte=100"`
	CountInStock *int     `json:"countInStock" validate:"omitempty,gte=0"`
	Image        *string  `json:"image"`
}

func (r ProductRequest) input() services.ProductInput {
	return services.ProductInput{
		Name:         r.Name,
		Description:  r.Description,
		Brand:        r.Brand,
		Category:     r.Category,
		Price:        r.Price,
		SalePrice:    r.SalePrice,
		Discount:     r.Discount,
		CountInStock: r.CountInStock,
		Image:        r.Image,
	}
}

type multipartImage struct {
	services.ImageUpload
	close func() error
}

func (m *multipartImage) upload() *services.ImageUpload {
	if m == nil {
		return nil
	}
	return &m.ImageUpload
}

func parseProduct(c *fiber.Ctx) (services.ProductInput, *multipartImage, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		var req ProductRequest
		if err := parseAndValidate(c, &req); err != nil {
			return services.ProductInput{}, nil, err
		}
		return req.input(), nil, nil
	}

	req, err := productFromForm(c)
	if err != nil {
		return services.ProductInput{}, nil, err
	}
	if err := validateStruct(&req); err != nil {
		return services.ProductInput{}, nil, err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No file part: the image field, if any, is a plain URL.
		return req.input(), nil, nil
	}
	f, err := fileHeader.Open()
	if err != nil {
		return services.ProductInput{}, nil, fmt.Errorf("failed to read uploaded image: %w", err)
	}
	return req.input(), &multipartImage{
		ImageUpload: services.ImageUpload{Filename: fileHeader.Filename, Body: f},
		close:       f.Close,
	}, nil
}

func productFromForm(c *fiber.Ctx) (ProductRequest, error) {
	var req ProductRequest
	fields := apperror.FieldErrors{}

	req.Name = formString(c, "name")
	req.Description = formString(c, "description")
	req.Brand = formString(c, "brand")
	req.Category = formString(c, "category")
	req.Image = formString(c, "image")
	req.Price = formFloat(c, "price", fields)
	req.SalePrice = formFloat(c, "salePrice", fields)
	req.Discount = formFloat(c, "discount", fields)
	if s := formString(c, "countInStock"); s != nil {
		n, err := strconv.Atoi(*s)
		if err != nil {
			fields["countInStock"] = "must be an integer"
		} else {
			req.CountInStock = &n
		}
	}

	if len(fields) > 0 {
		return req, fields
	}
	return req, nil
}

func formString(c *fiber.Ctx, key string) *string {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}

func formFloat(c *fiber.Ctx, key string, fields apperror.FieldErrors) *float64 {
	s := formString(c, key)
	if s == nil {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil {
		fields[key] = "must be a number"
		return nil
	}
	return &f
}
