package models

import "time"

// Employee is a voter. UserID is nullable so employee records can exist
// before an account is attached; deleting the user cascades.
type Employee struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	EmployeeNo string    `json:"employee_no" gorm:"uniqueIndex;size:64;not null"`
	UserID     *string   `json:"user_id" gorm:"uniqueIndex;size:36"`
	User       *User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedBy  string    `json:"created_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
