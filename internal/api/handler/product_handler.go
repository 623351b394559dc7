package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/storefront/shop-api/internal/api/metrics"
	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

const defaultFeaturedLimit = 5

type ProductHandler struct {
	products ports.ProductService
}

func NewProductHandler(products ports.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// --- Public catalog ---

// List returns the active catalog.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {object}  Response{data=[]domain.Product}
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.products.GetAllProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "products retrieved", products)
}

// Get returns one active product.
//
// @Summary      Get product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  Response{data=domain.Product}
// @Failure      404  {object}  Response
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	p, err := h.products.GetProductByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if p == nil {
		return fail(c, http.StatusNotFound, "product not found")
	}
	return ok(c, http.StatusOK, "product retrieved", p)
}

// Search matches name or description. The query comes from the path or ?q=.
//
// @Summary      Search products
// @Tags         products
// @Produce      json
// @Param        query  path      string  false  "Search text"
// @Param        q      query     string  false  "Search text"
// @Success      200    {object}  Response{data=[]domain.Product}
// @Router       /api/products/search/{query} [get]
func (h *ProductHandler) Search(c echo.Context) error {
	query := c.Param("query")
	if query == "" {
		query = c.QueryParam("q")
	}
	products, err := h.products.SearchProducts(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "search completed", products)
}

// ByCategory lists active products of one category, case-insensitively.
//
// @Summary      Products by category
// @Tags         products
// @Produce      json
// @Param        category  path      string  true  "Category"
// @Success      200       {object}  Response{data=[]domain.Product}
// @Router       /api/products/category/{category} [get]
func (h *ProductHandler) ByCategory(c echo.Context) error {
	products, err := h.products.GetProductsByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "products retrieved", products)
}

// Categories lists the distinct categories of active products.
//
// @Summary      List categories
// @Tags         products
// @Produce      json
// @Success      200  {object}  Response{data=[]string}
// @Router       /api/categories [get]
func (h *ProductHandler) Categories(c echo.Context) error {
	categories, err := h.products.GetAllCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "categories retrieved", categories)
}

// Featured returns the best rated products.
//
// @Summary      Featured products
// @Tags         products
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of products"  default(5)
// @Success      200    {object}  Response{data=[]domain.Product}
// @Failure      400    {object}  Response
// @Router       /api/products/featured [get]
func (h *ProductHandler) Featured(c echo.Context) error {
	limit := defaultFeaturedLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fail(c, http.StatusBadRequest, "limit must be an integer")
		}
		limit = n
	}
	products, err := h.products.GetFeaturedProducts(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "featured products retrieved", products)
}

// Review adds a rating to an active product.
//
// @Summary      Review product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Product ID"
// @Param        body  body      reviewRequest  true  "Rating between 0 and 5"
// @Success      201   {object}  Response
// @Failure      400   {object}  Response
// @Failure      404   {object}  Response
// @Router       /api/products/{id}/reviews [post]
func (h *ProductHandler) Review(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	added, err := h.products.AddProductReview(c.Request().Context(), c.Param("id"), *req.Rating)
	metrics.ReviewsTotal.WithLabelValues(metrics.Result(added, err)).Inc()
	if err != nil {
		return err
	}
	if !added {
		return fail(c, http.StatusNotFound, "product not found")
	}
	return ok(c, http.StatusCreated, "review added", nil)
}

// --- Administration ---

// ListAll returns every product including deactivated ones.
//
// @Summary      List all products
// @Tags         admin
// @Produce      json
// @Security     AdminJWT
// @Success      200  {object}  Response{data=[]domain.Product}
// @Router       /api/admin/products [get]
func (h *ProductHandler) ListAll(c echo.Context) error {
	products, err := h.products.GetAllProductsIncludingInactive(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, "products retrieved", products)
}

// Create adds a product to the catalog.
//
// @Summary      Create product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     AdminJWT
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  Response{data=domain.Product}
// @Failure      400   {object}  Response
// @Router       /api/admin/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	req, err := bindProduct(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	p, err := domain.NewProduct(req.Name, req.Description, req.Price, req.Stock, req.Category)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	if p.Name == "" {
		return fail(c, http.StatusBadRequest, domain.ErrEmptyName.Error())
	}
	p.SetImageURL(req.ImageURL)

	stored, err := h.products.AddProduct(c.Request().Context(), p)
	if err != nil {
		return err
	}
	metrics.ProductChangesTotal.WithLabelValues("create").Inc()
	return ok(c, http.StatusCreated, "product created", stored)
}

// Update replaces the editable fields of a product.
//
// @Summary      Update product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     AdminJWT
// @Param        id    path      string          true  "Product ID"
// @Param        body  body      productRequest  true  "Product"
// @Success      200   {object}  Response{data=domain.Product}
// @Failure      400   {object}  Response
// @Failure      404   {object}  Response
// @Router       /api/admin/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	req, err := bindProduct(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	updated, err := h.products.UpdateProduct(c.Request().Context(), c.Param("id"), ports.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return err
	}
	if updated == nil {
		return fail(c, http.StatusNotFound, "product not found")
	}
	metrics.ProductChangesTotal.WithLabelValues("update").Inc()
	return ok(c, http.StatusOK, "product updated", updated)
}

func bindProduct(c echo.Context) (*productRequest, error) {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	sanitizeProduct(&req)
	if err := c.Validate(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// SetStock overwrites the stock level.
//
// @Summary      Set stock
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     AdminJWT
// @Param        id    path      string        true  "Product ID"
// @Param        body  body      stockRequest  true  "New stock level"
// @Success      200   {object}  Response{data=stockResponse}
// @Failure      404   {object}  Response
// @Router       /api/admin/products/{id}/stock [put]
func (h *ProductHandler) SetStock(c echo.Context) error {
	var req stockRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	id := c.Param("id")
	updated, err := h.products.UpdateProductStock(c.Request().Context(), id, *req.Stock)
	metrics.StockMovementsTotal.WithLabelValues("set", metrics.Result(updated, err)).Inc()
	if err != nil {
		return err
	}
	if !updated {
		return fail(c, http.StatusNotFound, "product not found")
	}
	return ok(c, http.StatusOK, "stock updated", stockResponse{ID: id, Stock: *req.Stock})
}

// AddStock increases the stock level.
//
// @Summary      Add stock
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     AdminJWT
// @Param        id    path      string           true  "Product ID"
// @Param        body  body      quantityRequest  true  "Units to add"
// @Success      200   {object}  Response{data=stockResponse}
// @Failure      400   {object}  Response
// @Failure      404   {object}  Response
// @Router       /api/admin/products/{id}/stock/add [post]
func (h *ProductHandler) AddStock(c echo.Context) error {
	return h.moveStock(c, "add", h.products.AddStock)
}

// RemoveStock decreases the stock level.
//
// @Summary      Remove stock
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     AdminJWT
// @Param        id    path      string           true  "Product ID"
// @Param        body  body      quantityRequest  true  "Units to remove"
// @Success      200   {object}  Response{data=stockResponse}
// @Failure      404   {object}  Response
// @Failure      409   {object}  Response
// @Router       /api/admin/products/{id}/stock/remove [post]
func (h *ProductHandler) RemoveStock(c echo.Context) error {
	return h.moveStock(c, "remove", h.products.RemoveStock)
}

type stockFunc func(ctx context.Context, id string, quantity int) (int, error)

func (h *ProductHandler) moveStock(c echo.Context, direction string, move stockFunc) error {
	var req quantityRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	id := c.Param("id")
	level, err := move(ctx, id, req.Quantity)
	moved := level != ports.StockFailed
	metrics.StockMovementsTotal.WithLabelValues(direction, metrics.Result(moved, err)).Inc()
	if err != nil {
		return err
	}
	if !moved {
		p, err := h.products.GetProductByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fail(c, http.StatusNotFound, "product not found")
		}
		if direction == "add" {
			return fail(c, http.StatusBadRequest, "quantity exceeds the stock limit")
		}
		return fail(c, http.StatusConflict, domain.ErrInsufficientStock.Error())
	}
	metrics.StockUnitsTotal.WithLabelValues(direction).Add(float64(req.Quantity))
	return ok(c, http.StatusOK, "stock updated", stockResponse{ID: id, Stock: level})
}

// Deactivate hides a product from the public catalog.
//
// @Summary      Deactivate product
// @Tags         admin
// @Produce      json
// @Security     AdminJWT
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  Response
// @Router       /api/admin/products/{id}/deactivate [post]
func (h *ProductHandler) Deactivate(c echo.Context) error {
	return h.toggle(c, "deactivate", "product deactivated", h.products.DeactivateProduct)
}

// Reactivate restores a deactivated product.
//
// @Summary      Reactivate product
// @Tags         admin
// @Produce      json
// @Security     AdminJWT
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  Response
// @Router       /api/admin/products/{id}/reactivate [post]
func (h *ProductHandler) Reactivate(c echo.Context) error {
	return h.toggle(c, "reactivate", "product reactivated", h.products.ReactivateProduct)
}

// Delete removes a product permanently.
//
// @Summary      Delete product
// @Tags         admin
// @Produce      json
// @Security     AdminJWT
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  Response
// @Router       /api/admin/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	return h.toggle(c, "delete", "product deleted", h.products.DeleteProduct)
}

func (h *ProductHandler) toggle(c echo.Context, op, message string, fn func(context.Context, string) (bool, error)) error {
	done, err := fn(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !done {
		return fail(c, http.StatusNotFound, "product not found")
	}
	metrics.ProductChangesTotal.WithLabelValues(op).Inc()
	return ok(c, http.StatusOK, message, nil)
}
