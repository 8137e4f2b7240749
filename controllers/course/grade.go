package controllers

import (
	"campus/database"
	"campus/middleware"
	"campus/models"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RecordGrade lets a teacher record or update a student's grade for an
// assignment in a course they own.
func RecordGrade(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedGrade").(*struct {
		AssignmentID     uint     `json:"assignment_id"`
		StudentID        uint     `json:"student_id"`
		Score            *float64 `json:"score"`
		SubmissionStatus string   `json:"submission_status"`
		Feedback         string   `json:"feedback"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var assignment models.Assignment
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", reqData.AssignmentID, false).
		Preload("Course").
		First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}
	if assignment.Course.TeacherID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized for this course!", nil)
	}

	// The student must be enrolled in the assignment's course
	var enrollment models.Enrollment
	if err := database.Database.Db.
		Where("student_id = ? AND course_id = ? AND is_deleted = ?", reqData.StudentID, assignment.CourseID, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Student is not enrolled in this course!", nil)
	}

	status := reqData.SubmissionStatus
	if status == "" {
		status = "Graded"
	}
	now := time.Now()

	// One grade per student per assignment: update in place when present
	var grade models.Grade
	err := database.Database.Db.
		Where("assignment_id = ? AND student_id = ? AND is_deleted = ?", reqData.AssignmentID, reqData.StudentID, false).
		First(&grade).Error
	if err == nil {
		grade.Score = reqData.Score
		grade.SubmissionStatus = status
		grade.Feedback = reqData.Feedback
		grade.SubmittedAt = &now
		if err := database.Database.Db.Save(&grade).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update grade!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Grade updated successfully!", grade)
	}

	grade = models.Grade{
		AssignmentID:     reqData.AssignmentID,
		StudentID:        reqData.StudentID,
		Score:            reqData.Score,
		SubmissionStatus: status,
		Feedback:         reqData.Feedback,
		SubmittedAt:      &now,
	}
	if err := database.Database.Db.Create(&grade).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record grade!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Grade recorded successfully!", grade)
}

// MyGrades lists the authenticated student's grades, optionally filtered
// to a single course.
func MyGrades(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db.
		Model(&models.Grade{}).
		Joins("JOIN assignments ON assignments.id = grades.assignment_id").
		Where("grades.student_id = ? AND grades.is_deleted = ?", user.ID, false).
		Preload("Assignment").
		Preload("Assignment.Course")

	// Optional single-course filter
	if courseIDStr := c.Query("course_id"); courseIDStr != "" {
		if courseID, err := strconv.Atoi(courseIDStr); err == nil && courseID > 0 {
			db = db.Where("assignments.course_id = ?", courseID)
		}
	}

	var grades []models.Grade
	if err := db.Order("assignments.due_date asc").Find(&grades).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch grades!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Grades fetched successfully!", grades)
}
