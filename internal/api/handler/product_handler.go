package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/api/store"
	"github.com/99minutos/storefront/internal/core/domain"
)

const maxUploadBytes = 8 << 20

// ProductHandler serves the catalog and its uploaded images.
type ProductHandler struct {
	products *store.Products
	images   *store.Images
	logger   zerolog.Logger
}

func NewProductHandler(products *store.Products, images *store.Images, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{products: products, images: images, logger: logger}
}

// List returns every product in insertion order.
func (h *ProductHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.products.List(c.Request().Context()))
}

// Create reads a multipart product form. Name, price and category are
// required; size is a JSON array of strings.
func (h *ProductHandler) Create(c echo.Context) error {
	form, err := parseForm(c)
	if err != nil {
		return err
	}

	p := domain.Product{
		Name:        form.value("name"),
		Description: form.value("description"),
		Category:    form.value("category"),
	}
	if p.Name == "" || p.Category == "" || !form.has("price") {
		return echo.NewHTTPError(http.StatusBadRequest, "Name, price and category are required")
	}

	if p.Price, err = form.price(); err != nil {
		return err
	}
	if form.has("stock") {
		if p.Stock, err = form.stock(); err != nil {
			return err
		}
	}
	if raw := form.value("size"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &p.Sizes); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Size must be a JSON array")
		}
	}

	ref, err := h.storeImage(c)
	if err != nil {
		return err
	}
	p.ImageRef = ref

	created := h.products.Create(c.Request().Context(), p)
	h.logger.Info().Str("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return c.JSON(http.StatusCreated, created)
}

// Update replaces the fields present in the multipart form.
func (h *ProductHandler) Update(c echo.Context) error {
	form, err := parseForm(c)
	if err != nil {
		return err
	}

	var ch store.ProductChanges
	if form.has("name") {
		name := form.value("name")
		ch.Name = &name
	}
	if form.has("category") {
		category := form.value("category")
		ch.Category = &category
	}
	if form.has("price") {
		price, err := form.price()
		if err != nil {
			return err
		}
		ch.Price = &price
	}
	if form.has("stock") {
		stock, err := form.stock()
		if err != nil {
			return err
		}
		ch.Stock = &stock
	}

	ref, err := h.storeImage(c)
	if err != nil {
		return err
	}
	if ref != "" {
		ch.ImageRef = &ref
	}

	updated, err := h.products.Update(c.Request().Context(), c.Param("id"), ch)
	if err != nil {
		return err
	}
	h.logger.Info().Str("product_id", updated.ID).Msg("product updated")
	return c.JSON(http.StatusOK, updated)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.products.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	h.logger.Info().Str("product_id", id).Msg("product deleted")
	return c.JSON(http.StatusOK, map[string]string{"message": "Product deleted"})
}

// Image serves an uploaded image by name.
func (h *ProductHandler) Image(c echo.Context) error {
	img, ok := h.images.Get(c.Param("name"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Image not found")
	}
	return c.Blob(http.StatusOK, img.ContentType, img.Data)
}

func (h *ProductHandler) storeImage(c echo.Context) (string, error) {
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Invalid image upload")
	}

	data, err := readUpload(fh)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Invalid image upload")
	}

	ct := fh.Header.Get(echo.HeaderContentType)
	if ct == "" || ct == echo.MIMEOctetStream {
		ct = http.DetectContentType(data)
	}
	return h.images.Put(fh.Filename, store.Image{ContentType: ct, Data: data}), nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxUploadBytes))
}

// productForm gives presence-aware access to submitted form values.
type productForm struct {
	values map[string][]string
}

func parseForm(c echo.Context) (productForm, error) {
	r := c.Request()
	err := r.ParseMultipartForm(maxUploadBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		return productForm{}, echo.NewHTTPError(http.StatusBadRequest, "Invalid form data")
	}
	return productForm{values: r.PostForm}, nil
}

func (f productForm) has(key string) bool {
	_, ok := f.values[key]
	return ok
}

func (f productForm) value(key string) string {
	if v := f.values[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

func (f productForm) price() (float64, error) {
	price, err := strconv.ParseFloat(f.value("price"), 64)
	if err != nil || price < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Price must be a non-negative number")
	}
	return price, nil
}

func (f productForm) stock() (int, error) {
	stock, err := strconv.Atoi(f.value("stock"))
	if err != nil || stock < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Stock must be a non-negative integer")
	}
	return stock, nil
}
