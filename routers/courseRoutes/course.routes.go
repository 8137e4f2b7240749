package courseRoutes

import (
	"campus/chatbot/ingest"
	controllers "campus/controllers/course"
	"campus/middleware"
	validators "campus/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Course listing and enrollment
	courseGroup.Get("/list", middleware.JWTMiddleware, controllers.ListCourses)
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, middleware.RequireRole("STUDENT"), validators.EnrollCourse(), controllers.EnrollInCourse)

	// The logged-in student's own records
	myGroup := app.Group("/my", middleware.JWTMiddleware, middleware.RequireRole("STUDENT"))
	myGroup.Get("/courses", controllers.MyCourses)
	myGroup.Get("/assignments", controllers.MyAssignments)
	myGroup.Get("/grades", controllers.MyGrades)
}

// SetupTeacherRoutes sets up teacher-facing course management routes.
// The ingestion pipeline is passed in explicitly; it is nil when the
// chatbot components are not configured.
func SetupTeacherRoutes(app *fiber.App, pipeline *ingest.Pipeline) {
	teacherGroup := app.Group("/teacher", middleware.JWTMiddleware, middleware.RequireRole("TEACHER"))

	teacherGroup.Get("/courses", controllers.TeacherCourses)
	teacherGroup.Post("/course", validators.CreateCourse(), controllers.CreateCourse)
	teacherGroup.Post("/assignment", validators.CreateAssignment(), controllers.CreateAssignment)
	teacherGroup.Post("/grade", validators.RecordGrade(), controllers.RecordGrade)
	teacherGroup.Post("/upload-content", controllers.UploadCourseContent(pipeline))
}
