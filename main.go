package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/clinicdesk/patient-booking/cron"
	"github.com/clinicdesk/patient-booking/db"
	"github.com/clinicdesk/patient-booking/redis"
	"github.com/clinicdesk/patient-booking/routes"
	"github.com/clinicdesk/patient-booking/utils"
)

func main() {
	app := fiber.New()
	db.Init()
	redis.InitRedis()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	// Doctor profile photos
	app.Static("/uploads", utils.UploadDir())

	routes.SetupAuthRoutes(app)
	routes.SetupPatientRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupAdminRoutes(app)

	cron.StartCronJobs()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
