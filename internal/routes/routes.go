package routes

import (
	"net/http"

	"github.com/01moynul/bales-storefront/internal/handlers"
	"github.com/01moynul/bales-storefront/internal/middleware"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware lets the storefront (served from any origin) call the API.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Any origin may call us
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")

		// 2. The headers the browser client sends
		c.Writer.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")

		// 3. The methods we use
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		// 4. Answer the preflight
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers, jwtSecret []byte, roles middleware.RoleChecker) *gin.Engine {
	router := gin.Default()

	// --- APPLY THE CORS GUARD ---
	// This must be the very first thing the router uses
	router.Use(CORSMiddleware())

	// Uploaded product and bale images
	if h.UploadDir != "" {
		router.Static("/uploads", h.UploadDir)
	}

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Verification Routes ---
		v1.POST("/send-verification-pin", h.SendVerificationPin)
		v1.POST("/verify-pin", h.VerifyPin)

		// --- Checkout & Payment Routes ---
		v1.POST("/place-order", h.PlaceOrder)
		v1.POST("/initialize-payment", h.InitializePayment)
		v1.POST("/verify-payment", h.VerifyPayment)

		// --- Order Tracking ---
		v1.POST("/track-orders", h.TrackOrders)

		// --- Metrics & Contact ---
		v1.POST("/track-bale-metric", h.TrackBaleMetric)
		v1.POST("/contact", h.SendContactEnquiry)

		// --- Public Catalog Routes ---
		v1.GET("/categories", h.GetAllCategories)
		v1.GET("/products", h.GetProducts)
		v1.GET("/products/:id", h.GetProduct)
		v1.GET("/bales", h.GetBales)
		v1.GET("/bales/:id", h.GetBale)

		// --- Admin-Only Routes ---
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(jwtSecret))
		admin.Use(middleware.AdminMiddleware(roles))
		{
			// Dashboard
			admin.GET("/dashboard-stats", h.GetDashboardStats)

			// Metrics
			admin.POST("/reset-bale-metrics", h.ResetMetrics)
			admin.GET("/bale-metrics", h.ListMetrics)
			admin.GET("/bale-metrics/:bale_id", h.GetMetric)

			// Payments
			admin.POST("/fix-payment", h.FixPayment)

			// Orders
			admin.GET("/orders/:order_number", h.GetOrder)
			admin.POST("/orders/:order_number/notes", h.SendOrderNote)
			admin.PATCH("/orders/:order_number/status", h.UpdateOrderStatus)

			// Categories
			admin.POST("/categories", h.CreateCategory)
			admin.PUT("/categories/:id", h.UpdateCategory)
			admin.DELETE("/categories/:id", h.DeleteCategory)

			// Products & images
			admin.GET("/products", h.GetAllProducts)
			admin.POST("/products", h.CreateProduct)
			admin.PUT("/products/:id", h.UpdateProduct)
			admin.DELETE("/products/:id", h.DeleteProduct)
			admin.POST("/upload", h.UploadFile)
			admin.POST("/images", h.AddImage)
			admin.DELETE("/images/:id", h.DeleteImage)

			// Stock
			admin.GET("/stock-categories", h.GetStockCategories)
			admin.POST("/stock-categories", h.CreateStockCategory)
			admin.DELETE("/stock-categories/:id", h.DeleteStockCategory)
			admin.GET("/stock-items", h.GetStockItems)
			admin.POST("/stock-items", h.CreateStockItem)
			admin.GET("/stock-items/:id", h.GetStockItem)
			admin.PUT("/stock-items/:id", h.UpdateStockItem)
			admin.DELETE("/stock-items/:id", h.DeleteStockItem)

			// Bales
			admin.GET("/bales", h.GetAllBales)
			admin.POST("/bales", h.CreateBale)
			admin.PUT("/bales/:id", h.UpdateBale)
			admin.DELETE("/bales/:id", h.DeleteBale)
			admin.PUT("/bales/:id/items", h.SetBaleItems)
			admin.POST("/bales/:id/generate-description", h.GenerateBaleDescription)
		}
	}

	return router
}
