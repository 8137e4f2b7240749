package controllers

import (
	"campus/database"
	"campus/middleware"
	"campus/models"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CreateAssignment lets a teacher add an assignment to a course they own.
func CreateAssignment(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedAssignment").(*struct {
		CourseID    uint   `json:"course_id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		DueDate     string `json:"due_date"`
		TotalPoints uint   `json:"total_points"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.CourseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if course.TeacherID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized for this course!", nil)
	}

	var dueDate *time.Time
	if reqData.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, reqData.DueDate)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid due date format, expected RFC3339!", nil)
		}
		dueDate = &parsed
	}

	totalPoints := reqData.TotalPoints
	if totalPoints == 0 {
		totalPoints = 100
	}

	assignment := models.Assignment{
		CourseID:    reqData.CourseID,
		Title:       reqData.Title,
		Description: reqData.Description,
		DueDate:     dueDate,
		TotalPoints: totalPoints,
	}

	if err := database.Database.Db.Create(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assignment!", nil)
	}

	assignment.Course = course
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment created successfully!", assignment)
}

// MyAssignments lists assignments across the student's enrolled courses,
// ordered by due date, optionally filtered to a single course.
func MyAssignments(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrolledIDs []uint
	if err := database.Database.Db.Model(&models.Enrollment{}).
		Where("student_id = ? AND is_deleted = ?", user.ID, false).
		Pluck("course_id", &enrolledIDs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}
	if len(enrolledIDs) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", []models.Assignment{})
	}

	db := database.Database.Db.
		Where("course_id IN ? AND is_deleted = ?", enrolledIDs, false).
		Preload("Course")

	// Optional single-course filter
	if courseIDStr := c.Query("course_id"); courseIDStr != "" {
		if courseID, err := strconv.Atoi(courseIDStr); err == nil && courseID > 0 {
			db = db.Where("course_id = ?", courseID)
		}
	}

	var assignments []models.Assignment
	if err := db.Order("due_date asc").Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", assignments)
}
