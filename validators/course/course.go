package courseValidator

import (
	"campus/middleware"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var codeRegex = regexp.MustCompile(`^[A-Za-z]{2,6}[0-9]{2,4}$`)

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name string `json:"name"`
			Code string `json:"code"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Normalize and sanitize inputs
		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Code = strings.ToUpper(strings.TrimSpace(reqData.Code))

		// Validate Name
		if reqData.Name == "" {
			errors["name"] = "Name is required!"
		} else {
			if len(reqData.Name) < 3 {
				errors["name"] = "Name must be at least 3 characters long!"
			}
			if len(reqData.Name) > 200 {
				errors["name"] = "Name must not exceed 200 characters!"
			}
			// Check for invalid characters (e.g., HTML tags)
			if matched, _ := regexp.MatchString(`[<>{}]`, reqData.Name); matched {
				errors["name"] = "Name contains invalid characters (e.g., <, >, {, })!"
			}
		}

		// Validate Code, e.g. CS101
		if reqData.Code == "" {
			errors["code"] = "Code is required!"
		} else if !codeRegex.MatchString(reqData.Code) {
			errors["code"] = "Code must look like CS101 (letters then digits)!"
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)

		return c.Next()
	}
}

func EnrollCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required in the URL!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID must be a positive integer!", nil)
		}

		c.Locals("courseID", courseID)

		return c.Next()
	}
}

func CreateAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID    uint   `json:"course_id"`
			Title       string `json:"title"`
			Description string `json:"description"`
			DueDate     string `json:"due_date"`
			TotalPoints uint   `json:"total_points"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)

		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else {
			if len(reqData.Title) < 3 {
				errors["title"] = "Title must be at least 3 characters long!"
			}
			if len(reqData.Title) > 255 {
				errors["title"] = "Title must not exceed 255 characters!"
			}
		}

		if len(reqData.Description) > 2000 {
			errors["description"] = "Description must not exceed 2000 characters!"
		}

		if reqData.TotalPoints > 1000 {
			errors["total_points"] = "Total points must not exceed 1000!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssignment", reqData)

		return c.Next()
	}
}

func RecordGrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			AssignmentID     uint     `json:"assignment_id"`
			StudentID        uint     `json:"student_id"`
			Score            *float64 `json:"score"`
			SubmissionStatus string   `json:"submission_status"`
			Feedback         string   `json:"feedback"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.SubmissionStatus = strings.TrimSpace(reqData.SubmissionStatus)
		reqData.Feedback = strings.TrimSpace(reqData.Feedback)

		if reqData.AssignmentID == 0 {
			errors["assignment_id"] = "Assignment ID is required!"
		}
		if reqData.StudentID == 0 {
			errors["student_id"] = "Student ID is required!"
		}
		if reqData.Score != nil && *reqData.Score < 0 {
			errors["score"] = "Score must not be negative!"
		}
		if reqData.SubmissionStatus != "" {
			switch reqData.SubmissionStatus {
			case "Pending", "Submitted", "Graded", "Late":
			default:
				errors["submission_status"] = "Submission status must be Pending, Submitted, Graded or Late!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGrade", reqData)

		return c.Next()
	}
}
