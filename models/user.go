package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	UID    string `json:"uid" gorm:"column:uid;uniqueIndex;type:varchar(64)"`
	Name   string `json:"name" gorm:"type:varchar(191)"`
	Email  string `json:"email" gorm:"uniqueIndex;type:varchar(191)"`
	Mobile string `json:"mobile" gorm:"type:varchar(32)"`

	// bcrypt hash, never serialized
	Password string `json:"-" gorm:"type:varchar(191)"`
}
