package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/karimelhadi/atelierbackend/dto"
	"github.com/karimelhadi/atelierbackend/response"
	"github.com/karimelhadi/atelierbackend/store"
	"github.com/karimelhadi/atelierbackend/utils"
)

func CreateInquiry(s *store.InquiryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateInquiryDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			response.Fail(c, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
			return
		}

		inquiry, err := s.Create(c.Request.Context(), body)
		if err != nil {
			response.FromError(c, err)
			return
		}

		response.OK(c, http.StatusCreated, "Inquiry submitted", inquiry)
	}
}

func GetInquiries(s *store.InquiryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		maxLimit, defaultLimit := utils.GetDefaultQueryLimits()

		page := utils.ParseIntDefault(c.Query("page"), 1)
		limit := utils.ParseIntDefault(c.Query("limit"), defaultLimit)
		if page < 1 {
			page = 1
		}
		if limit < 1 || limit > maxLimit {
			limit = defaultLimit
		}

		q := store.InquiryQuery{
			Status:    strings.TrimSpace(c.Query("status")),
			ProductID: strings.TrimSpace(c.Query("productId")),
			Phone:     strings.TrimSpace(c.Query("phone")),
			Name:      strings.TrimSpace(c.Query("name")),
			StartDate: utils.ParseTimeQuery(c.Query("startDate"), false),
			EndDate:   utils.ParseTimeQuery(c.Query("endDate"), true),
			Page:      page,
			Limit:     limit,
		}

		inquiries, total, err := s.List(c.Request.Context(), q)
		if err != nil {
			response.FromError(c, err)
			return
		}

		response.Paged(c, "Inquiries retrieved", inquiries, page, limit, total)
	}
}

func GetInquiry(s *store.InquiryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		inquiry, err := s.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			response.FromError(c, err)
			return
		}

		response.OK(c, http.StatusOK, "Inquiry retrieved", inquiry)
	}
}

func UpdateInquiry(s *store.InquiryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateInquiryDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			response.Fail(c, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
			return
		}

		inquiry, err := s.Update(c.Request.Context(), c.Param("id"), body)
		if err != nil {
			response.FromError(c, err)
			return
		}

		response.OK(c, http.StatusOK, "Inquiry updated", inquiry)
	}
}

func UpdateInquiryStatus(s *store.InquiryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.UpdateInquiryStatusDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			response.Fail(c, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
			return
		}

		inquiry, err := s.UpdateStatus(c.Request.Context(), c.Param("id"), body.Status, body.Notes)
		if err != nil {
			response.FromError(c, err)
			return
		}

		response.OK(c, http.StatusOK, "Inquiry status updated", inquiry)
	}
}

func DeleteInquiry(s *store.InquiryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := s.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			response.FromError(c, err)
			return
		}

		response.OK(c, http.StatusOK, "Inquiry deleted", deleted)
	}
}

func GetInquiryStats(s *store.InquiryStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := s.Stats(c.Request.Context())
		if err != nil {
			response.FromError(c, err)
			return
		}

		response.OK(c, http.StatusOK, "Inquiry statistics", stats)
	}
}
