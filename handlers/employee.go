package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"lunch-voting-api/models"
	"lunch-voting-api/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateEmployeeRequest struct {
	EmployeeNo string `json:"employee_no" binding:"required,max=64"`
	Email      string `json:"email" binding:"required,email,max=254"`
	Username   string `json:"username" binding:"required,max=150"`
	Password   string `json:"password" binding:"required,min=6,max=72"`
	FirstName  string `json:"first_name" binding:"required,max=150"`
	LastName   string `json:"last_name" binding:"required,max=150"`
	Phone      string `json:"phone" binding:"max=32"`
}

var errEmployeeExists = errors.New("employee number taken")

// CreateEmployee creates a staff user and its employee record together
func (h *Handler) CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid employee data.", bindingErrors(err))
		return
	}
	exists := fmt.Sprintf("EMPLOYEE NO %s already exists", req.EmployeeNo)

	var count int64
	if err := h.db.WithContext(c.Request.Context()).Model(&models.Employee{}).Where("employee_no = ?", req.EmployeeNo).Count(&count).Error; err != nil {
		h.internalError(c, "check employee number", err)
		return
	}
	if count > 0 {
		fail(c, http.StatusBadRequest, exists, nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalError(c, "hash password", err)
		return
	}

	creator := c.GetString("username")
	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		FirstName:    capitalize(req.FirstName),
		LastName:     capitalize(req.LastName),
		Phone:        req.Phone,
		IsStaff:      true,
		IsActive:     true,
		CreatedBy:    creator,
	}
	var employee models.Employee

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		employee = models.Employee{
			EmployeeNo: req.EmployeeNo,
			UserID:     &user.ID,
			CreatedBy:  creator,
		}
		if err := tx.Omit("User").Create(&employee).Error; err != nil {
			if store.IsUniqueViolation(err) {
				return errEmployeeExists
			}
			return err
		}
		return nil
	})
	switch {
	case errors.Is(err, errEmployeeExists):
		fail(c, http.StatusBadRequest, exists, nil)
		return
	case store.IsUniqueViolation(err):
		fail(c, http.StatusBadRequest, "A user with that email or username already exists.", nil)
		return
	case err != nil:
		h.internalError(c, "create employee", err)
		return
	}

	ok(c, http.StatusCreated, "Employee successfully created.", gin.H{
		"id":          user.ID,
		"first_name":  user.FirstName,
		"last_name":   user.LastName,
		"email":       user.Email,
		"phone":       user.Phone,
		"username":    user.Username,
		"employee_no": employee.EmployeeNo,
	})
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
