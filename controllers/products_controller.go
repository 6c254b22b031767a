package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/karimelhadi/atelierbackend/dto"
	"github.com/karimelhadi/atelierbackend/models"
	"github.com/karimelhadi/atelierbackend/response"
	"github.com/karimelhadi/atelierbackend/store"
	"github.com/karimelhadi/atelierbackend/utils"
)

func buildProductQuery(c *gin.Context) store.ProductQuery {
	maxLimit, defaultLimit := utils.GetDefaultQueryLimits()

	page := utils.ParseIntDefault(c.Query("page"), 1)
	limit := utils.ParseIntDefault(c.Query("limit"), defaultLimit)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}

	return store.ProductQuery{
		Category:  strings.TrimSpace(c.Query("category")),
		MinPrice:  utils.ParseFloatQuery(c.Query("minPrice")),
		MaxPrice:  utils.ParseFloatQuery(c.Query("maxPrice")),
		OnSale:    utils.ParseBoolQuery(c.Query("onSale")),
		HasOffers: utils.ParseBoolQuery(c.Query("hasOffers")),
		Page:      page,
		Limit:     limit,
	}
}

func publicProducts(products []models.Product) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		out = append(out, p.WithoutHiddenFields())
	}
	return out
}

func GetProducts(s *store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := buildProductQuery(c)

		products, total, err := s.List(c.Request.Context(), q)
		if err != nil {
			response.FromError(c, err)
			return
		}

		response.Paged(c, "Products retrieved", publicProducts(products), q.Page, q.Limit, total)
	}
}

func SearchProducts(s *store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := buildProductQuery(c)
		q.Text = strings.TrimSpace(c.Query("q"))
		if q.Text == "" {
			response.Fail(c, http.StatusBadRequest, "Search query is required", "VALIDATION_ERROR")
			return
		}

		products, total, err := s.List(c.Request.Context(), q)
		if err != nil {
			response.FromError(c, err)
			return
		}

		response.Paged(c, "Search results", publicProducts(products), q.Page, q.Limit, total)
	}
}

func GetProduct(s *store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := s.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			response.FromError(c, err)
			return
		}

		response.OK(c, http.StatusOK, "Product retrieved", product.WithoutHiddenFields())
	}
}

// GetProductAdmin returns the product including hidden tracking fields.
func GetProductAdmin(s *store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := s.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			response.FromError(c, err)
			return
		}

		response.OK(c, http.StatusOK, "Product retrieved", product)
	}
}

func AddProduct(s *store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "Invalid auth context", "UNAUTHORIZED")
			return
		}

		var body dto.CreateProductDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			response.Fail(c, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
			return
		}

		product, err := s.Create(c.Request.Context(), actor, body)
		if err != nil {
			response.FromError(c, err)
			return
		}

		response.OK(c, http.StatusCreated, "Product created", product)
	}
}

func UpdateProduct(s *store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "Invalid auth context", "UNAUTHORIZED")
			return
		}

		var body dto.UpdateProductDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			response.Fail(c, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
			return
		}

		product, err := s.Update(c.Request.Context(), actor, c.Param("id"), body)
		if err != nil {
			response.FromError(c, err)
			return
		}

		response.OK(c, http.StatusOK, "Product updated", product)
	}
}

func DeleteProduct(s *store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "Invalid auth context", "UNAUTHORIZED")
			return
		}

		if err := s.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
			response.FromError(c, err)
			return
		}

		response.OK(c, http.StatusOK, "Product deleted", nil)
	}
}

func CloneProduct(s *store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "Invalid auth context", "UNAUTHORIZED")
			return
		}

		var body dto.CloneProductDTO
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&body); err != nil {
				response.Fail(c, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
				return
			}
		}

		product, err := s.Clone(c.Request.Context(), actor, c.Param("id"), body.Reference)
		if err != nil {
			response.FromError(c, err)
			return
		}

		response.OK(c, http.StatusCreated, "Product cloned", product)
	}
}

func BulkUpdateProducts(s *store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "Invalid auth context", "UNAUTHORIZED")
			return
		}

		var body dto.BulkUpdateProductsDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			response.Fail(c, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
			return
		}

		matched, modified, err := s.BulkUpdate(c.Request.Context(), actor, body.IDs, body.Patch)
		if err != nil {
			response.FromError(c, err)
			return
		}

		response.OK(c, http.StatusOK, "Bulk update applied", gin.H{
			"matchedCount":  matched,
			"modifiedCount": modified,
		})
	}
}

func GetProductStats(s *store.CatalogStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := s.Stats(c.Request.Context())
		if err != nil {
			response.FromError(c, err)
			return
		}

		response.OK(c, http.StatusOK, "Product statistics", stats)
	}
}
