package voting

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"lunch-voting-api/metrics"
	"lunch-voting-api/models"
	"lunch-voting-api/statemachine"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
)

// DefaultMaxUploadBytes caps a menu file when no option overrides it.
const DefaultMaxUploadBytes int64 = 10 << 20

const releaseTimeout = 2 * time.Second

// Service runs the daily menu and vote workflow. It holds no state of its
// own between calls; uniqueness per day is enforced by the repository.
type Service struct {
	repo      Repository
	employees EmployeeResolver
	files     FileStore
	clock     Clock
	guard     Guard
	logger    *slog.Logger
	validate  *validator.Validate
	maxUpload int64
}

type Option func(*Service)

// WithGuard adds a cross-instance claim in front of the database checks.
func WithGuard(g Guard) Option {
	return func(s *Service) { s.guard = g }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMaxUploadBytes(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxUpload = n
		}
	}
}

func NewService(repo Repository, employees EmployeeResolver, files FileStore, clock Clock, opts ...Option) *Service {
	if clock == nil {
		clock = SystemClock(time.UTC)
	}
	s := &Service{
		repo:      repo,
		employees: employees,
		files:     files,
		clock:     clock,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		validate:  newValidator(),
		maxUpload: DefaultMaxUploadBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxUploadBytes is the largest menu file UploadMenu accepts.
func (s *Service) MaxUploadBytes() int64 { return s.maxUpload }

// Today is the calendar day every operation is scoped to.
func (s *Service) Today() string {
	return models.DayOf(s.clock.Now())
}

// UploadMenuInput is one multipart menu upload.
type UploadMenuInput struct {
	RestaurantID uint      `form:"restaurant" validate:"required"`
	FileName     string    `form:"file" validate:"required,max=255"`
	UploadedBy   string    `form:"uploaded_by" validate:"required,max=150"`
	Size         int64     `validate:"-"`
	Content      io.Reader `validate:"-"`
}

// UploadMenu stores a restaurant's menu for today. The duplicate check
// runs before field validation so a repeat upload is reported as such
// even when the second request is malformed.
func (s *Service) UploadMenu(ctx context.Context, in UploadMenuInput) (*models.Menu, error) {
	now := s.clock.Now()
	day := models.DayOf(now)

	if in.RestaurantID != 0 {
		existing, err := s.repo.FindMenuOn(ctx, in.RestaurantID, day)
		if err != nil {
			return nil, fmt.Errorf("check existing menu: %w", err)
		}
		if existing != nil {
			metrics.MenuUploadsRejected.WithLabelValues("duplicate").Inc()
			return nil, ErrDuplicateMenu
		}
	}

	if err := s.validateUpload(ctx, in); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			metrics.MenuUploadsRejected.WithLabelValues("invalid").Inc()
		}
		return nil, err
	}

	key := menuClaimKey(in.RestaurantID, day)
	owned := s.claim(ctx, key)
	if !owned {
		existing, err := s.repo.FindMenuOn(ctx, in.RestaurantID, day)
		if err != nil {
			return nil, fmt.Errorf("recheck existing menu: %w", err)
		}
		if existing != nil {
			metrics.MenuUploadsRejected.WithLabelValues("duplicate").Inc()
			return nil, ErrDuplicateMenu
		}
		s.logger.Info("claim held without a menu, deferring to the database", slog.String("key", key))
	}

	ref, err := s.files.Save(ctx, in.FileName, in.Content)
	if err != nil {
		s.releaseIf(ctx, owned, key)
		return nil, fmt.Errorf("store menu file: %w", err)
	}

	menu := &models.Menu{
		RestaurantID: in.RestaurantID,
		File:         ref,
		Votes:        0,
		CreatedOn:    day,
		UploadedBy:   in.UploadedBy,
		CreatedAt:    now,
	}
	if err := s.repo.CreateMenu(ctx, menu); err != nil {
		s.discardFile(ctx, ref)
		if errors.Is(err, ErrDuplicateMenu) {
			metrics.MenuUploadsRejected.WithLabelValues("duplicate").Inc()
			return nil, ErrDuplicateMenu
		}
		s.releaseIf(ctx, owned, key)
		return nil, fmt.Errorf("create menu: %w", err)
	}

	metrics.MenusUploaded.Inc()
	s.logger.Info("menu uploaded",
		slog.Uint64("menu_id", uint64(menu.ID)),
		slog.Uint64("restaurant_id", uint64(menu.RestaurantID)),
		slog.String("day", day),
	)
	return menu, nil
}

// VoteResult is the outcome of a vote attempt that reached the per-day check.
type VoteResult struct {
	AlreadyVoted bool
	Menu         *models.Menu
	Vote         *models.Vote
}

// CastVote records the caller's single vote for today.
func (s *Service) CastVote(ctx context.Context, menuID uint, who Identity) (*VoteResult, error) {
	emp, err := s.employees.ResolveEmployee(ctx, who)
	if err != nil {
		return nil, fmt.Errorf("resolve employee: %w", err)
	}
	if emp == nil {
		metrics.VotesRejected.WithLabelValues("not_employee").Inc()
		return nil, ErrNotAnEmployee
	}

	menu, err := s.repo.GetMenu(ctx, menuID)
	if err != nil {
		if errors.Is(err, ErrMenuNotFound) {
			metrics.VotesRejected.WithLabelValues("menu_not_found").Inc()
			return nil, ErrMenuNotFound
		}
		return nil, fmt.Errorf("load menu %d: %w", menuID, err)
	}

	now := s.clock.Now()
	day := models.DayOf(now)

	existing, err := s.repo.FindVoteOn(ctx, emp.ID, day)
	if err != nil {
		return nil, fmt.Errorf("check existing vote: %w", err)
	}
	if err := statemachine.CanTransition(statemachine.StateFor(existing != nil), statemachine.Voted); err != nil {
		return s.alreadyVoted(menu), nil
	}

	key := voteClaimKey(emp.ID, day)
	owned := s.claim(ctx, key)
	if !owned {
		existing, err := s.repo.FindVoteOn(ctx, emp.ID, day)
		if err != nil {
			return nil, fmt.Errorf("recheck existing vote: %w", err)
		}
		if existing != nil {
			return s.alreadyVoted(menu), nil
		}
		s.logger.Info("claim held without a vote, deferring to the database", slog.String("key", key))
	}

	vote := &models.Vote{
		EmployeeID: emp.ID,
		MenuID:     menu.ID,
		VotedOn:    day,
		VotedAt:    now,
	}
	if err := s.repo.RecordVote(ctx, vote); err != nil {
		if errors.Is(err, ErrAlreadyVoted) {
			return s.alreadyVoted(menu), nil
		}
		s.releaseIf(ctx, owned, key)
		if errors.Is(err, ErrMenuNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, fmt.Errorf("record vote: %w", err)
	}
	if vote.Menu != nil {
		menu = vote.Menu
	}

	metrics.VotesCast.Inc()
	s.logger.Info("vote cast",
		slog.Uint64("employee_id", uint64(emp.ID)),
		slog.Uint64("menu_id", uint64(menu.ID)),
		slog.String("day", day),
	)
	return &VoteResult{Menu: menu, Vote: vote}, nil
}

func (s *Service) alreadyVoted(menu *models.Menu) *VoteResult {
	metrics.VotesRejected.WithLabelValues("already_voted").Inc()
	return &VoteResult{AlreadyVoted: true, Menu: menu}
}

// TodayResult returns today's winning menu. Ties go to the lowest id.
func (s *Service) TodayResult(ctx context.Context) (*models.Menu, error) {
	menu, err := s.repo.TopMenuOn(ctx, s.Today())
	if err != nil {
		if errors.Is(err, ErrNoMenuToday) {
			metrics.ResultsServed.WithLabelValues("empty").Inc()
			return nil, ErrNoMenuToday
		}
		return nil, fmt.Errorf("load today's result: %w", err)
	}
	metrics.ResultsServed.WithLabelValues("winner").Inc()
	return menu, nil
}

// TodayMenus lists today's menus, newest id first.
func (s *Service) TodayMenus(ctx context.Context) ([]models.Menu, error) {
	menus, err := s.repo.MenusOn(ctx, s.Today())
	if err != nil {
		return nil, fmt.Errorf("list today's menus: %w", err)
	}
	return menus, nil
}

func (s *Service) validateUpload(ctx context.Context, in UploadMenuInput) error {
	verr := &ValidationError{}

	if err := s.validate.StructCtx(ctx, in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate upload: %w", err)
		}
		for _, fe := range fieldErrs {
			verr.add(fe.Field(), fieldMessage(fe))
		}
	}

	if _, bad := verr.Fields["file"]; !bad {
		switch {
		case in.Content == nil:
			verr.add("file", "No file was submitted.")
		case in.Size == 0:
			verr.add("file", "The submitted file is empty.")
		case in.Size > s.maxUpload:
			verr.add("file", fmt.Sprintf("The submitted file is %s, over the %s limit.",
				humanize.IBytes(uint64(in.Size)), humanize.IBytes(uint64(s.maxUpload))))
		}
	}

	if _, bad := verr.Fields["restaurant"]; !bad {
		ok, err := s.repo.RestaurantExists(ctx, in.RestaurantID)
		if err != nil {
			return fmt.Errorf("check restaurant: %w", err)
		}
		if !ok {
			verr.add("restaurant", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", in.RestaurantID))
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	default:
		return fmt.Sprintf("Failed the %q check.", fe.Tag())
	}
}

// claim reports whether the caller now owns key. Guard failures count as
// owned so the request falls through to the database. A false result is
// only a hint; callers confirm it against the repository.
func (s *Service) claim(ctx context.Context, key string) bool {
	if s.guard == nil {
		return true
	}
	ok, err := s.guard.Claim(ctx, key)
	if err != nil {
		s.logger.Warn("guard claim failed", slog.String("key", key), slog.String("error", err.Error()))
		return true
	}
	return ok
}

// releaseIf drops a claim this request owns, on a context detached from
// ctx and bounded by releaseTimeout.
func (s *Service) releaseIf(ctx context.Context, owned bool, key string) {
	if s.guard == nil || !owned {
		return
	}
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()
	if err := s.guard.Release(rctx, key); err != nil {
		s.logger.Warn("guard release failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

func (s *Service) discardFile(ctx context.Context, ref string) {
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()
	if err := s.files.Delete(dctx, ref); err != nil {
		s.logger.Warn("orphaned menu file", slog.String("ref", ref), slog.String("error", err.Error()))
	}
}

func menuClaimKey(restaurantID uint, day string) string {
	return fmt.Sprintf("menu:%d:%s", restaurantID, day)
}

func voteClaimKey(employeeID uint, day string) string {
	return fmt.Sprintf("vote:%d:%s", employeeID, day)
}
