package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/karimelhadi/atelierbackend/controllers"
	"github.com/karimelhadi/atelierbackend/database"
	"github.com/karimelhadi/atelierbackend/middleware"
	"github.com/karimelhadi/atelierbackend/models"
	"github.com/karimelhadi/atelierbackend/store"
	"github.com/karimelhadi/atelierbackend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}

	productsCol := database.Collection(client, "products")
	inquiriesCol := database.Collection(client, "order_inquiries")
	usersCol := database.Collection(client, "users")
	refreshCol := database.Collection(client, "refresh_tokens")

	if err := database.EnsureIndexes(ctx, productsCol, inquiriesCol); err != nil {
		log.Fatal(err)
	}
	if err := utils.SeedAdminUser(ctx, usersCol); err != nil {
		log.Fatal(err)
	}

	catalog := store.NewCatalogStore(productsCol, models.DefaultFacetCatalog())
	inquiries := store.NewInquiryStore(inquiriesCol, catalog)

	r := gin.New()

	origins := os.Getenv("ALLOWED_ORIGINS")
	allowedOrigins := map[string]bool{}
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestID())
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.POST("/auth/login", controllers.Login(usersCol, refreshCol))
	r.POST("/auth/refresh", controllers.Refresh(usersCol, refreshCol))
	r.POST("/auth/logout", controllers.Logout(refreshCol))

	r.GET("/products", controllers.GetProducts(catalog))
	r.GET("/products/search", controllers.SearchProducts(catalog))
	r.GET("/products/:id", controllers.GetProduct(catalog))
	r.POST("/inquiries", controllers.CreateInquiry(inquiries))

	authed := r.Group("/admin")
	authed.Use(middleware.AuthMiddleware())
	{
		// ownership is enforced in the store: owners may touch their own
		// products, admins may touch all
		authed.PATCH("/products/:id", controllers.UpdateProduct(catalog))
		authed.DELETE("/products/:id", controllers.DeleteProduct(catalog))
		authed.POST("/products/bulk-update", controllers.BulkUpdateProducts(catalog))
		authed.POST("/users/me/password", controllers.ChangeMyPassword(usersCol))
	}

	adminOnly := authed.Group("")
	adminOnly.Use(middleware.RequireAdmin())
	{
		adminOnly.POST("/products", controllers.AddProduct(catalog))
		adminOnly.GET("/products/:id", controllers.GetProductAdmin(catalog))
		adminOnly.POST("/products/:id/clone", controllers.CloneProduct(catalog))
		adminOnly.GET("/products/stats", controllers.GetProductStats(catalog))

		adminOnly.GET("/inquiries", controllers.GetInquiries(inquiries))
		adminOnly.GET("/inquiries/stats", controllers.GetInquiryStats(inquiries))
		adminOnly.GET("/inquiries/:id", controllers.GetInquiry(inquiries))
		adminOnly.PATCH("/inquiries/:id", controllers.UpdateInquiry(inquiries))
		adminOnly.PATCH("/inquiries/:id/status", controllers.UpdateInquiryStatus(inquiries))
		adminOnly.DELETE("/inquiries/:id", controllers.DeleteInquiry(inquiries))

		adminOnly.POST("/users", controllers.CreateUser(usersCol))
	}

	r.Run()
}
