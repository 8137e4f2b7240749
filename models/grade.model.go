package models

import (
	"time"

	"gorm.io/gorm"
)

// Grade holds one student's result for one assignment.
type Grade struct {
	gorm.Model
	AssignmentID     uint       `json:"assignment_id" gorm:"index;not null;uniqueIndex:idx_assignment_student"`
	Assignment       Assignment `json:"assignment" gorm:"foreignKey:AssignmentID"`
	StudentID        uint       `json:"student_id" gorm:"index;not null;uniqueIndex:idx_assignment_student"`
	Score            *float64   `json:"score"`
	SubmissionStatus string     `json:"submission_status" gorm:"default:'Pending'"` // Pending, Submitted, Graded, Late
	SubmittedAt      *time.Time `json:"submitted_at"`
	Feedback         string     `json:"feedback"`
	IsDeleted        bool       `gorm:"default:false"`
}
