package models

import "time"

// DateLayout is the calendar-day key stored alongside timestamps
const DateLayout = "2006-01-02"

// DayOf returns the calendar day of t in t's own location
func DayOf(t time.Time) string {
	return t.Format(DateLayout)
}

// Menu is one restaurant's offer for one day. The composite unique index
// keeps a second upload for the same restaurant and day out at commit time.
type Menu struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	RestaurantID uint        `json:"restaurant_id" gorm:"not null;uniqueIndex:idx_menu_restaurant_day"`
	Restaurant   *Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	File         string      `json:"file" gorm:"not null"`
	Votes        int         `json:"votes" gorm:"not null;default:0"`
	CreatedOn    string      `json:"created_on" gorm:"size:10;not null;uniqueIndex:idx_menu_restaurant_day;index"`
	UploadedBy   string      `json:"uploaded_by" gorm:"size:150"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Vote is append-only. VotedOn is derived from VotedAt, never from the menu.
type Vote struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	EmployeeID uint      `json:"employee_id" gorm:"not null;uniqueIndex:idx_vote_employee_day"`
	Employee   *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	MenuID     uint      `json:"menu_id" gorm:"not null;index"`
	Menu       *Menu     `json:"menu,omitempty" gorm:"foreignKey:MenuID"`
	VotedOn    string    `json:"voted_on" gorm:"size:10;not null;uniqueIndex:idx_vote_employee_day"`
	VotedAt    time.Time `json:"voted_at"`
}
