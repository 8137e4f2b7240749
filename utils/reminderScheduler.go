package utils

import (
	"campus/database"
	"campus/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeReminderScheduler sets up the assignment due-date reminder job
func InitializeReminderScheduler() {
	log.Println("[REMINDER-SCHEDULER] Initializing assignment reminder scheduler...")

	c := cron.New()

	// Run daily at 8 AM to notify students about assignments due soon
	c.AddFunc("0 8 * * *", func() {
		log.Println("[REMINDER-SCHEDULER] Running daily assignment reminder check...")
		ProcessDueAssignments()
	})

	c.Start()
	log.Println("[REMINDER-SCHEDULER] Assignment reminder scheduler started - runs daily at 8 AM")
}

// ProcessDueAssignments emails every enrolled student whose assignments
// are due within the next two days.
func ProcessDueAssignments() {
	db := database.Database.Db
	now := time.Now()
	twoDaysFromNow := now.AddDate(0, 0, 2)

	var dueAssignments []models.Assignment
	if err := db.
		Where("is_deleted = ? AND due_date IS NOT NULL", false).
		Where("due_date BETWEEN ? AND ?", now, twoDaysFromNow).
		Preload("Course").
		Find(&dueAssignments).Error; err != nil {
		log.Printf("[REMINDER-SCHEDULER] Error fetching due assignments: %v", err)
		return
	}

	log.Printf("[REMINDER-SCHEDULER] Found %d assignments due within 2 days", len(dueAssignments))

	for _, assignment := range dueAssignments {
		var enrollments []models.Enrollment
		if err := db.
			Where("course_id = ? AND is_deleted = ?", assignment.CourseID, false).
			Find(&enrollments).Error; err != nil {
			log.Printf("[REMINDER-SCHEDULER] Error fetching enrollments for course %d: %v", assignment.CourseID, err)
			continue
		}

		for _, enrollment := range enrollments {
			var student models.User
			if err := db.Where("id = ? AND is_deleted = ?", enrollment.StudentID, false).First(&student).Error; err != nil {
				continue
			}

			body := AssignmentReminderEmail(
				student.Name,
				assignment.Course.Code,
				assignment.Title,
				assignment.DueDate.Format("2006-01-02 15:04"),
			)
			if err := SendEmail([]string{student.Email}, "Assignment due soon: "+assignment.Title, body); err != nil {
				log.Printf("[REMINDER-SCHEDULER] Error emailing %s: %v", student.Email, err)
			}
		}
	}
}
