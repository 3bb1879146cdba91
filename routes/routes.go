package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"training-backend/controllers"
	"training-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controller instances into the route table.
func SetupRouter(
	bc *controllers.BookingController,
	bkc *controllers.BackupController,
	uc *controllers.UserController,
	cc *controllers.CertificateController,
	pc *controllers.PostController,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)

			// static segments before /:id
			bookings.GET("/search", bc.SearchBookings)
			bookings.GET("/statistics", bc.GetStatistics)
			bookings.POST("/maintenance/advance-expired", bc.AdvanceExpired)

			bookings.GET("/:id", bc.GetBooking)
			bookings.PUT("/:id", bc.UpdateBooking)
			bookings.DELETE("/:id", bc.DeleteBooking)
			bookings.POST("/:id/certificate", cc.IssueForBooking)
		}

		backups := api.Group("/backups")
		{
			backups.POST("", bkc.CreateBackup)
		}

		users := api.Group("/users")
		{
			users.GET("", uc.GetUsers)
			users.POST("", uc.CreateUser)
			users.GET("/:id", uc.GetUser)
			users.PUT("/:id", uc.UpdateUser)
			users.DELETE("/:id", uc.DeleteUser)
		}

		certificates := api.Group("/certificates")
		{
			certificates.GET("", cc.GetCertificates)
			certificates.POST("", cc.CreateCertificate)
			certificates.GET("/:id", cc.GetCertificate)
			certificates.DELETE("/:id", cc.DeleteCertificate)
		}

		posts := api.Group("/posts")
		{
			posts.GET("", pc.GetPosts)
			posts.POST("", pc.CreatePost)
			posts.GET("/:id", pc.GetPost)
			posts.PUT("/:id", pc.UpdatePost)
			posts.DELETE("/:id", pc.DeletePost)
		}
	}

	return r
}
