package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ChurchLoop/controllers"
	"github.com/ChurchLoop/initializers"
	"github.com/ChurchLoop/middlewares"
	"github.com/ChurchLoop/services"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectDB()
	services.InitEmailService()
}

func main() {
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(middlewares.SecurityHeaders)

	byClientIP := func(c *gin.Context) string {
		return c.ClientIP()
	}
	// roughly 100 requests per minute per client
	router.Use(middlewares.RateLimitMiddleware(100.0/60.0, 100, byClientIP))

	router.GET("/api/health", controllers.Health)
	router.GET("/api/uploads/:type/:filename", controllers.ServeUpload)

	router.POST("/api/auth/register", controllers.Register)
	router.POST("/api/auth/login", controllers.Login)

	api := router.Group("/api")
	api.Use(middlewares.CheckAuth)
	{
		// members
		api.GET("/members", controllers.GetMembers)
		api.GET("/members/:id", controllers.GetMember)
		api.POST("/members", controllers.CreateMember)
		api.PUT("/members/:id", controllers.UpdateMember)
		api.DELETE("/members/:id", controllers.DeleteMember)

		// events
		api.GET("/events", controllers.GetEvents)
		api.GET("/events/:id", controllers.GetEvent)
		api.POST("/events", controllers.CreateEvent)
		api.PUT("/events/:id", controllers.UpdateEvent)
		api.DELETE("/events/:id", controllers.DeleteEvent)
		api.POST("/events/:id/remind", controllers.RemindEvent)

		// donations
		api.GET("/donations", controllers.GetDonations)
		api.GET("/donations/stats", controllers.GetDonationStats)
		api.GET("/donations/:id", controllers.GetDonation)
		api.POST("/donations", controllers.CreateDonation)
		api.PUT("/donations/:id", controllers.UpdateDonation)
		api.DELETE("/donations/:id", controllers.DeleteDonation)
		api.POST("/donations/:id/receipt", controllers.SendDonationReceipt)

		// groups
		api.GET("/groups", controllers.GetGroups)
		api.GET("/groups/:id", controllers.GetGroup)
		api.POST("/groups", controllers.CreateGroup)
		api.PUT("/groups/:id", controllers.UpdateGroup)
		api.DELETE("/groups/:id", controllers.DeleteGroup)
		api.POST("/groups/:id/members", controllers.AddGroupMember)
		api.DELETE("/groups/:id/members/:memberId", controllers.RemoveGroupMember)

		// attendance
		api.GET("/attendance", controllers.GetAttendance)
		api.GET("/attendance/stats", controllers.GetAttendanceStats)
		api.POST("/attendance", controllers.CreateAttendance)
		api.POST("/attendance/bulk", controllers.BulkCreateAttendance)
		api.PUT("/attendance/:id", controllers.UpdateAttendance)
		api.DELETE("/attendance/:id", controllers.DeleteAttendance)

		// messages
		api.GET("/messages", controllers.GetMessages)
		api.GET("/messages/recipients/list", controllers.GetMessageRecipients)
		api.GET("/messages/:id", controllers.GetMessage)
		api.POST("/messages", controllers.SendMessage)
		api.PUT("/messages/:id/read", controllers.MarkMessageRead)
		api.DELETE("/messages/:id", controllers.DeleteMessage)

		// prayer requests
		api.GET("/prayer-requests", controllers.GetPrayerRequests)
		api.GET("/prayer-requests/:id", controllers.GetPrayerRequest)
		api.POST("/prayer-requests", controllers.CreatePrayerRequest)
		api.PUT("/prayer-requests/:id", controllers.UpdatePrayerRequest)
		api.DELETE("/prayer-requests/:id", controllers.DeletePrayerRequest)

		// volunteers
		api.GET("/volunteers", controllers.GetVolunteers)
		api.GET("/volunteers/:id", controllers.GetVolunteer)
		api.POST("/volunteers", controllers.CreateVolunteer)
		api.PUT("/volunteers/:id", controllers.UpdateVolunteer)
		api.DELETE("/volunteers/:id", controllers.DeleteVolunteer)

		// service planning
		api.GET("/service-planning", controllers.GetServicePlans)
		api.GET("/service-planning/:id", controllers.GetServicePlan)
		api.POST("/service-planning", controllers.CreateServicePlan)
		api.PUT("/service-planning/:id", controllers.UpdateServicePlan)
		api.DELETE("/service-planning/:id", controllers.DeleteServicePlan)

		// settings
		api.GET("/settings/church", controllers.GetChurchSettings)
		api.PUT("/settings/church", controllers.UpdateChurchSettings)
		api.GET("/settings/profile", controllers.GetProfile)
		api.PUT("/settings/profile", controllers.UpdateProfile)
		api.POST("/settings/password", controllers.ChangePassword)

		// dashboard and reports
		api.GET("/dashboard/stats", controllers.GetDashboardStats)
		api.GET("/reports/dashboard", controllers.GetReportsDashboard)
		api.GET("/reports/export/members", controllers.ExportMembersCSV)
		api.GET("/reports/export/donations", controllers.ExportDonationsCSV)
		api.GET("/reports/export/attendance", controllers.ExportAttendanceCSV)
		api.GET("/reports/giving-summary", controllers.GetGivingSummary)

		// uploads
		api.POST("/uploads/:type", controllers.UploadImage)
		api.POST("/uploads/:type/multiple", controllers.UploadImages)
		api.DELETE("/uploads/:type/:filename", controllers.DeleteUpload)
	}

	addr := ":" + os.Getenv("PORT")
	if addr == ":" {
		addr = ":5000"
	}
	if err := router.Run(addr); err != nil {
		log.Fatal(err)
	}
}
