package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lunch-voting-api/models"
	"lunch-voting-api/voting"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Store is the gorm-backed voting.Repository and voting.EmployeeResolver.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

var (
	_ voting.Repository       = (*Store)(nil)
	_ voting.EmployeeResolver = (*Store)(nil)
)

// ── Restaurants & menus ─────────────────────────────────────────────────────

func (s *Store) RestaurantExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count restaurant %d: %w", id, err)
	}
	return n > 0, nil
}

func (s *Store) FindMenuOn(ctx context.Context, restaurantID uint, day string) (*models.Menu, error) {
	var menu models.Menu
	err := s.db.WithContext(ctx).
		Where("restaurant_id = ? AND created_on = ?", restaurantID, day).
		Take(&menu).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find menu for restaurant %d on %s: %w", restaurantID, day, err)
	}
	return &menu, nil
}

func (s *Store) CreateMenu(ctx context.Context, menu *models.Menu) error {
	if err := s.db.WithContext(ctx).Create(menu).Error; err != nil {
		if IsUniqueViolation(err) {
			return voting.ErrDuplicateMenu
		}
		return fmt.Errorf("insert menu: %w", err)
	}
	return nil
}

func (s *Store) GetMenu(ctx context.Context, id uint) (*models.Menu, error) {
	var menu models.Menu
	err := s.db.WithContext(ctx).Preload("Restaurant").First(&menu, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, voting.ErrMenuNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get menu %d: %w", id, err)
	}
	return &menu, nil
}

// TopMenuOn picks the most voted menu of the day, lowest id on ties.
func (s *Store) TopMenuOn(ctx context.Context, day string) (*models.Menu, error) {
	var menu models.Menu
	err := s.db.WithContext(ctx).
		Preload("Restaurant").
		Where("created_on = ?", day).
		Order("votes DESC").
		Order("id ASC").
		Take(&menu).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, voting.ErrNoMenuToday
	}
	if err != nil {
		return nil, fmt.Errorf("top menu on %s: %w", day, err)
	}
	return &menu, nil
}

func (s *Store) MenusOn(ctx context.Context, day string) ([]models.Menu, error) {
	menus := []models.Menu{}
	err := s.db.WithContext(ctx).
		Preload("Restaurant").
		Where("created_on = ?", day).
		Order("id DESC").
		Find(&menus).Error
	if err != nil {
		return nil, fmt.Errorf("menus on %s: %w", day, err)
	}
	return menus, nil
}

// ── Votes ───────────────────────────────────────────────────────────────────

func (s *Store) FindVoteOn(ctx context.Context, employeeID uint, day string) (*models.Vote, error) {
	var vote models.Vote
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND voted_on = ?", employeeID, day).
		Take(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find vote for employee %d on %s: %w", employeeID, day, err)
	}
	return &vote, nil
}

// RecordVote inserts the vote and bumps the menu tally in one transaction.
// Every statement goes through tx; the SQLite pool has a single connection.
func (s *Store) RecordVote(ctx context.Context, vote *models.Vote) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Employee", "Menu").Create(vote).Error; err != nil {
			if IsUniqueViolation(err) {
				return voting.ErrAlreadyVoted
			}
			return fmt.Errorf("insert vote: %w", err)
		}

		res := tx.Model(&models.Menu{}).
			Where("id = ?", vote.MenuID).
			UpdateColumn("votes", gorm.Expr("votes + ?", 1))
		if res.Error != nil {
			return fmt.Errorf("increment votes for menu %d: %w", vote.MenuID, res.Error)
		}
		if res.RowsAffected != 1 {
			return voting.ErrMenuNotFound
		}

		var menu models.Menu
		if err := tx.Preload("Restaurant").First(&menu, vote.MenuID).Error; err != nil {
			return fmt.Errorf("reload menu %d: %w", vote.MenuID, err)
		}
		vote.Menu = &menu
		return nil
	})
}

// ── Employees ───────────────────────────────────────────────────────────────

// ResolveEmployee finds the employee linked to who. It prefers the user id
// and falls back to the username; nil, nil when no employee is linked.
func (s *Store) ResolveEmployee(ctx context.Context, who voting.Identity) (*models.Employee, error) {
	q := s.db.WithContext(ctx).Preload("User")
	switch {
	case who.UserID != "":
		q = q.Where("user_id = ?", who.UserID)
	case who.Username != "":
		q = q.Where("user_id IN (?)",
			s.db.WithContext(ctx).Model(&models.User{}).Select("id").Where("username = ?", who.Username))
	default:
		return nil, nil
	}

	var emp models.Employee
	err := q.Take(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve employee: %w", err)
	}
	return &emp, nil
}

// IsUniqueViolation recognises duplicate-key failures from both drivers,
// whether or not gorm translated them.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") || strings.Contains(msg, "duplicate entry")
}
