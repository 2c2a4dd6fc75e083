package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/api/store"
	"github.com/99minutos/storefront/internal/core/domain"
)

type formFile struct {
	name string
	data []byte
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, file *formFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if file != nil {
		part, err := w.CreateFormFile("image", file.name)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		_, _ = part.Write(file.data)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func serve(e *echo.Echo, h echo.HandlerFunc, req *http.Request, params ...string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) == 2 {
		c.SetParamNames(params[0])
		c.SetParamValues(params[1])
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func newProductHandler() (*ProductHandler, *store.Products, *store.Images) {
	products := store.NewProducts()
	images := store.NewImages()
	return NewProductHandler(products, images, zerolog.Nop()), products, images
}

func TestProductHandler_Create(t *testing.T) {
	e := newTestEcho()
	h, products, images := newProductHandler()

	req := multipartRequest(t, http.MethodPost, "/api/products", map[string]string{
		"name":        "Trail Runner",
		"description": "grippy",
		"price":       "120.5",
		"category":    "Footwear",
		"stock":       "3",
		"size":        `["M","L"]`,
	}, &formFile{name: "shoe.png", data: []byte("\x89PNG\r\n\x1a\n")})

	rec := serve(e, h.Create, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if created.ID == "" || created.Price != 120.5 || created.Stock != 3 || len(created.Sizes) != 2 {
		t.Fatalf("unexpected product %+v", created)
	}
	if !strings.HasPrefix(created.ImageRef, store.UploadPrefix) {
		t.Fatalf("expected uploaded image ref, got %q", created.ImageRef)
	}
	if _, ok := images.Get(strings.TrimPrefix(created.ImageRef, store.UploadPrefix)); !ok {
		t.Fatalf("image was not stored")
	}
	if len(products.List(context.Background())) != 1 {
		t.Fatalf("product was not stored")
	}
}

func TestProductHandler_Create_RequiredFields(t *testing.T) {
	e := newTestEcho()
	h, _, _ := newProductHandler()

	cases := []map[string]string{
		{"price": "10", "category": "Bags"},
		{"name": "Tote", "category": "Bags"},
		{"name": "Tote", "price": "10"},
		{"name": "Tote", "price": "abc", "category": "Bags"},
		{"name": "Tote", "price": "10", "category": "Bags", "size": "M,L"},
	}
	for _, fields := range cases {
		rec := serve(e, h.Create, multipartRequest(t, http.MethodPost, "/api/products", fields, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("fields %v: expected 400, got %d", fields, rec.Code)
		}
	}
}

func TestProductHandler_UpdateOnlyGivenFields(t *testing.T) {
	e := newTestEcho()
	h, products, _ := newProductHandler()
	p := products.Create(context.Background(), domain.Product{Name: "Tote", Price: 25, Category: "Bags", Stock: 1})

	req := multipartRequest(t, http.MethodPut, "/api/products/"+p.ID, map[string]string{"stock": "8"}, nil)
	rec := serve(e, h.Update, req, "id", p.ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	got := products.List(context.Background())[0]
	if got.Stock != 8 || got.Name != "Tote" || got.Price != 25 {
		t.Fatalf("unexpected product after update %+v", got)
	}
}

func TestProductHandler_UpdateMissing(t *testing.T) {
	e := newTestEcho()
	h, _, _ := newProductHandler()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if err != store.ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		_ = c.NoContent(http.StatusNotFound)
	}

	req := multipartRequest(t, http.MethodPut, "/api/products/nope", map[string]string{"stock": "1"}, nil)
	if rec := serve(e, h.Update, req, "id", "nope"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestProductHandler_ListAndImage(t *testing.T) {
	e := newTestEcho()
	h, products, images := newProductHandler()
	products.Create(context.Background(), domain.Product{Name: "A"})
	products.Create(context.Background(), domain.Product{Name: "B"})

	rec := serve(e, h.List, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	var list []domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(list) != 2 || list[0].Name != "A" || list[1].Name != "B" {
		t.Fatalf("unexpected list %+v", list)
	}

	ref := images.Put("a.txt", store.Image{ContentType: "text/plain", Data: []byte("hello")})
	name := strings.TrimPrefix(ref, store.UploadPrefix)
	rec = serve(e, h.Image, httptest.NewRequest(http.MethodGet, ref, nil), "name", name)
	if rec.Code != http.StatusOK || rec.Body.String() != "hello" {
		t.Fatalf("unexpected image response %d %q", rec.Code, rec.Body.String())
	}

	rec = serve(e, h.Image, httptest.NewRequest(http.MethodGet, "/uploads/missing", nil), "name", "missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
