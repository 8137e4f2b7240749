package models

import "gorm.io/gorm"

// Course is the scoping unit for academic records and uploaded content.
type Course struct {
	gorm.Model
	Name      string `json:"name"`
	Code      string `json:"code" gorm:"unique;not null"`
	TeacherID uint   `json:"teacher_id" gorm:"index;not null"`
	IsDeleted bool   `gorm:"default:false"`
}
