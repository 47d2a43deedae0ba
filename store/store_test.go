package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"lunch-voting-api/models"
	"lunch-voting-api/store"
	"lunch-voting-api/testutil"
	"lunch-voting-api/voting"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const today = "2024-05-01"

func TestCreateMenu_OnePerRestaurantPerDay(t *testing.T) {
	db := testutil.NewDB(t)
	s := store.New(db)
	ctx := context.Background()
	kfc := testutil.CreateRestaurant(t, db, "KFC")
	bk := testutil.CreateRestaurant(t, db, "Burger King")

	first := &models.Menu{RestaurantID: kfc.ID, File: "a.pdf", CreatedOn: today, CreatedAt: testutil.Day(t, today)}
	require.NoError(t, s.CreateMenu(ctx, first))
	assert.NotZero(t, first.ID)

	dup := &models.Menu{RestaurantID: kfc.ID, File: "b.pdf", CreatedOn: today, CreatedAt: testutil.Day(t, today)}
	assert.ErrorIs(t, s.CreateMenu(ctx, dup), voting.ErrDuplicateMenu)

	// Same restaurant next day and another restaurant today are both fine.
	require.NoError(t, s.CreateMenu(ctx, &models.Menu{RestaurantID: kfc.ID, File: "c.pdf", CreatedOn: "2024-05-02"}))
	require.NoError(t, s.CreateMenu(ctx, &models.Menu{RestaurantID: bk.ID, File: "d.pdf", CreatedOn: today}))

	got, err := s.FindMenuOn(ctx, kfc.ID, today)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a.pdf", got.File, "existing menu must be unchanged")

	none, err := s.FindMenuOn(ctx, kfc.ID, "2024-04-30")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestRestaurantExists(t *testing.T) {
	db := testutil.NewDB(t)
	s := store.New(db)
	r := testutil.CreateRestaurant(t, db, "Puzata Hata")

	ok, err := s.RestaurantExists(context.Background(), r.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.RestaurantExists(context.Background(), r.ID+100)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetMenu(t *testing.T) {
	db := testutil.NewDB(t)
	s := store.New(db)
	r := testutil.CreateRestaurant(t, db, "KFC")
	m := testutil.CreateMenu(t, db, r.ID, today, 0)

	got, err := s.GetMenu(context.Background(), m.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Restaurant)
	assert.Equal(t, "KFC", got.Restaurant.Name)

	_, err = s.GetMenu(context.Background(), m.ID+1)
	assert.ErrorIs(t, err, voting.ErrMenuNotFound)
}

func TestRecordVote(t *testing.T) {
	db := testutil.NewDB(t)
	s := store.New(db)
	ctx := context.Background()

	emp := testutil.CreateEmployee(t, db, testutil.CreateUser(t, db, "alice", false), "E-1")
	r := testutil.CreateRestaurant(t, db, "KFC")
	x := testutil.CreateMenu(t, db, r.ID, today, 0)
	y := testutil.CreateMenu(t, db, testutil.CreateRestaurant(t, db, "BK").ID, today, 0)

	vote := &models.Vote{EmployeeID: emp.ID, MenuID: x.ID, VotedOn: today, VotedAt: testutil.Day(t, today)}
	require.NoError(t, s.RecordVote(ctx, vote))
	require.NotNil(t, vote.Menu)
	assert.Equal(t, 1, vote.Menu.Votes)

	found, err := s.FindVoteOn(ctx, emp.ID, today)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, x.ID, found.MenuID)

	// Second vote the same day, for a different menu, is rejected and
	// leaves both tallies as they were.
	again := &models.Vote{EmployeeID: emp.ID, MenuID: y.ID, VotedOn: today, VotedAt: testutil.Day(t, today)}
	assert.ErrorIs(t, s.RecordVote(ctx, again), voting.ErrAlreadyVoted)

	var menus []models.Menu
	require.NoError(t, db.Order("id").Find(&menus).Error)
	assert.Equal(t, 1, menus[0].Votes)
	assert.Equal(t, 0, menus[1].Votes)

	// Next day is a fresh slot.
	next := &models.Vote{EmployeeID: emp.ID, MenuID: y.ID, VotedOn: "2024-05-02"}
	require.NoError(t, s.RecordVote(ctx, next))
}

func TestRecordVote_MissingMenuRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	s := store.New(db)
	emp := testutil.CreateEmployee(t, db, testutil.CreateUser(t, db, "bob", false), "E-2")

	err := s.RecordVote(context.Background(), &models.Vote{EmployeeID: emp.ID, MenuID: 999, VotedOn: today})
	assert.ErrorIs(t, err, voting.ErrMenuNotFound)

	var n int64
	require.NoError(t, db.Model(&models.Vote{}).Count(&n).Error)
	assert.Zero(t, n, "vote insert must roll back with the failed increment")
}

func TestTopMenuOn(t *testing.T) {
	tests := []struct {
		name   string
		votes  []int // one restaurant per entry, created in order
		wantAt int   // index into votes of the expected winner
	}{
		{name: "highest tally wins", votes: []int{3, 5}, wantAt: 1},
		{name: "tie goes to lowest id", votes: []int{4, 4, 2}, wantAt: 0},
		{name: "single menu with no votes", votes: []int{0}, wantAt: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.NewDB(t)
			s := store.New(db)

			var ids []uint
			for i, v := range tt.votes {
				r := testutil.CreateRestaurant(t, db, fmt.Sprintf("R%d", i))
				ids = append(ids, testutil.CreateMenu(t, db, r.ID, today, v).ID)
			}
			// A busier menu from another day must not leak in.
			other := testutil.CreateRestaurant(t, db, "Yesterday")
			testutil.CreateMenu(t, db, other.ID, "2024-04-30", 100)

			got, err := s.TopMenuOn(context.Background(), today)
			require.NoError(t, err)
			assert.Equal(t, ids[tt.wantAt], got.ID)
			assert.NotNil(t, got.Restaurant)
		})
	}
}

func TestTopMenuOn_NoMenus(t *testing.T) {
	db := testutil.NewDB(t)
	s := store.New(db)
	testutil.CreateMenu(t, db, testutil.CreateRestaurant(t, db, "KFC").ID, "2024-04-30", 1)

	_, err := s.TopMenuOn(context.Background(), today)
	assert.ErrorIs(t, err, voting.ErrNoMenuToday)
}

func TestMenusOn_NewestFirst(t *testing.T) {
	db := testutil.NewDB(t)
	s := store.New(db)
	a := testutil.CreateMenu(t, db, testutil.CreateRestaurant(t, db, "A").ID, today, 0)
	b := testutil.CreateMenu(t, db, testutil.CreateRestaurant(t, db, "B").ID, today, 0)
	testutil.CreateMenu(t, db, testutil.CreateRestaurant(t, db, "C").ID, "2024-04-30", 0)

	menus, err := s.MenusOn(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, menus, 2)
	assert.Equal(t, b.ID, menus[0].ID)
	assert.Equal(t, a.ID, menus[1].ID)

	empty, err := s.MenusOn(context.Background(), "2024-01-01")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestResolveEmployee(t *testing.T) {
	db := testutil.NewDB(t)
	s := store.New(db)
	ctx := context.Background()

	alice := testutil.CreateUser(t, db, "alice", false)
	emp := testutil.CreateEmployee(t, db, alice, "E-7")
	outsider := testutil.CreateUser(t, db, "outsider", false)

	byID, err := s.ResolveEmployee(ctx, voting.Identity{UserID: alice.ID})
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, emp.ID, byID.ID)
	require.NotNil(t, byID.User)
	assert.Equal(t, "alice", byID.User.Username)

	byName, err := s.ResolveEmployee(ctx, voting.Identity{Username: "alice"})
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, emp.ID, byName.ID)

	none, err := s.ResolveEmployee(ctx, voting.Identity{UserID: outsider.ID, Username: outsider.Username})
	require.NoError(t, err)
	assert.Nil(t, none)

	anon, err := s.ResolveEmployee(ctx, voting.Identity{})
	require.NoError(t, err)
	assert.Nil(t, anon)
}

func TestRecordVote_ConcurrentEmployeesKeepTallyExact(t *testing.T) {
	db := testutil.NewDB(t)
	s := store.New(db)
	menu := testutil.CreateMenu(t, db, testutil.CreateRestaurant(t, db, "KFC").ID, today, 0)

	const voters = 20
	emps := make([]*models.Employee, voters)
	for i := range emps {
		emps[i] = testutil.CreateEmployee(t, db, testutil.CreateUser(t, db, fmt.Sprintf("voter%d", i), false), fmt.Sprintf("E-%d", i))
	}

	var wg sync.WaitGroup
	var failures atomic.Int32
	for _, e := range emps {
		wg.Add(1)
		go func(empID uint) {
			defer wg.Done()
			err := s.RecordVote(context.Background(), &models.Vote{EmployeeID: empID, MenuID: menu.ID, VotedOn: today, VotedAt: time.Now()})
			if err != nil {
				failures.Add(1)
			}
		}(e.ID)
	}
	wg.Wait()

	require.Zero(t, failures.Load())
	var got models.Menu
	require.NoError(t, db.First(&got, menu.ID).Error)
	assert.Equal(t, voters, got.Votes)
	assert.Equal(t, int64(got.Votes), testutil.CountVotes(t, db, menu.ID))
}

func TestRecordVote_ConcurrentSameEmployeeExactlyOne(t *testing.T) {
	db := testutil.NewDB(t)
	s := store.New(db)
	emp := testutil.CreateEmployee(t, db, testutil.CreateUser(t, db, "eager", false), "E-1")
	menu := testutil.CreateMenu(t, db, testutil.CreateRestaurant(t, db, "KFC").ID, today, 0)

	const attempts = 10
	var wg sync.WaitGroup
	var successes, duplicates atomic.Int32
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.RecordVote(context.Background(), &models.Vote{EmployeeID: emp.ID, MenuID: menu.ID, VotedOn: today, VotedAt: time.Now()})
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, voting.ErrAlreadyVoted):
				duplicates.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(attempts-1), duplicates.Load())

	var got models.Menu
	require.NoError(t, db.First(&got, menu.ID).Error)
	assert.Equal(t, 1, got.Votes)
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"wrapped gorm", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"mysql 1062", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, true},
		{"mysql other", &mysql.MySQLError{Number: 1146, Message: "Table doesn't exist"}, false},
		{"sqlite text", errors.New("constraint failed: UNIQUE constraint failed: menus.restaurant_id, menus.created_on (2067)"), true},
		{"unrelated", errors.New("database is locked"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.IsUniqueViolation(tt.err))
		})
	}
}

func TestEnsureAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	created, err := store.EnsureAdmin(ctx, db, "admin@admin.com", "admin", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.EnsureAdmin(ctx, db, "admin@admin.com", "admin", "admin123")
	require.NoError(t, err)
	assert.False(t, created)

	var u models.User
	require.NoError(t, db.Where("email = ?", "admin@admin.com").First(&u).Error)
	assert.True(t, u.IsStaff)
	assert.True(t, u.IsActive)

	_, err = store.EnsureAdmin(ctx, db, "", "x", "y")
	assert.Error(t, err)
}
