package controllers

import (
	"campus/chatbot/ingest"
	"campus/config"
	"campus/database"
	"campus/middleware"
	"campus/models"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"campus/utils"

	"github.com/gofiber/fiber/v2"
)

var allowedUploadExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".txt":  {},
}

// UploadCourseContent returns the handler that ingests an uploaded
// document into the vector index for a course the teacher owns. The
// pipeline is nil when the chatbot is disabled (no API key configured).
func UploadCourseContent(pipeline *ingest.Pipeline) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(models.User)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing file or course_id.", nil)
		}
		courseIDStr := c.FormValue("course_id")
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing file or course_id.", nil)
		}
		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID.", nil)
		}

		var course models.Course
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID.", nil)
		}
		if course.TeacherID != user.ID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized for this course.", nil)
		}

		extension := strings.ToLower(filepath.Ext(fileHeader.Filename))
		if _, ok := allowedUploadExtensions[extension]; !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, fmt.Sprintf("Unsupported file type: %s", extension), nil)
		}

		if pipeline == nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Chatbot components not ready. Cannot process file.", nil)
		}

		destDir := filepath.Join(config.AppConfig.UploadDir, fmt.Sprintf("course_%d", courseID))
		storedPath, err := utils.SaveUploadedFile(fileHeader, destDir)
		if err != nil {
			log.Printf("Error saving uploaded file %s: %v", fileHeader.Filename, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save uploaded file.", nil)
		}

		if err := pipeline.Ingest(c.UserContext(), storedPath, uint(courseID), fileHeader.Filename); err != nil {
			log.Printf("Ingestion failed for %s (course %d): %v", fileHeader.Filename, courseID, err)
			// Remove the stored file so failed ingestions leave no orphaned uploads
			if rmErr := utils.RemoveFileIfExists(storedPath); rmErr != nil {
				log.Printf("Error cleaning up file %s: %v", storedPath, rmErr)
			}
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to embed document.", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusCreated, true,
			fmt.Sprintf("File '%s' added for course %s.", fileHeader.Filename, course.Code), nil)
	}
}
