package model

import "time"

type UserModel struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	FirstName  string    `gorm:"type:varchar(150);not null;default:''" json:"first_name"`
	LastName   string    `gorm:"type:varchar(150);not null;default:''" json:"last_name"`
	Email      string    `gorm:"type:varchar(254);not null;default:''" json:"email"`
	Password   string    `gorm:"type:varchar(128);not null" json:"-"`
	IsStaff    bool      `gorm:"not null;default:false" json:"is_staff"`
	IsActive   bool      `gorm:"not null" json:"is_active"`
	DateJoined time.Time `gorm:"autoCreateTime" json:"date_joined"`
}

func (UserModel) TableName() string {
	return "users"
}
