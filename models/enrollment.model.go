package models

import "gorm.io/gorm"

// Enrollment relates a student to a course. The set of a student's
// enrollments is their content-access scope for the chatbot.
type Enrollment struct {
	gorm.Model
	StudentID uint   `json:"student_id" gorm:"index;not null;uniqueIndex:idx_student_course"`
	CourseID  uint   `json:"course_id" gorm:"index;not null;uniqueIndex:idx_student_course"`
	Course    Course `json:"course" gorm:"foreignKey:CourseID"`
	IsDeleted bool   `gorm:"default:false"`
}
