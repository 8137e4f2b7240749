package models

import (
	"time"

	"gorm.io/gorm"
)

type Assignment struct {
	gorm.Model
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	Course      Course     `json:"course" gorm:"foreignKey:CourseID"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	TotalPoints uint       `json:"total_points" gorm:"default:100"`
	IsDeleted   bool       `gorm:"default:false"`
}
