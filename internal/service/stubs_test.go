package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"shiftdesk/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn          func(context.Context, *models.Post) error
	getByIDFn         func(context.Context, uint) (*models.Post, error)
	listVisibleFn     func(context.Context, *models.User, int, int) ([]models.Post, error)
	deleteFn          func(context.Context, uint) error
	countSinceFn      func(context.Context, time.Time) (int64, error)
	getReactionFn     func(context.Context, uint, uint) (*models.Reaction, error)
	setReactionFn     func(context.Context, *models.Reaction) error
	clearReactionFn   func(context.Context, uint, uint) error
	reactionCountsFn  func(context.Context, []uint) (map[uint]map[string]int, error)
	reactionsByUserFn func(context.Context, []uint, uint) (map[uint]string, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) ListVisible(ctx context.Context, viewer *models.User, limit, offset int) ([]models.Post, error) {
	return s.listVisibleFn(ctx, viewer, limit, offset)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return s.countSinceFn(ctx, since)
}
func (s *postRepoStub) GetReaction(ctx context.Context, postID, userID uint) (*models.Reaction, error) {
	return s.getReactionFn(ctx, postID, userID)
}
func (s *postRepoStub) SetReaction(ctx context.Context, reaction *models.Reaction) error {
	return s.setReactionFn(ctx, reaction)
}
func (s *postRepoStub) ClearReaction(ctx context.Context, postID, userID uint) error {
	return s.clearReactionFn(ctx, postID, userID)
}
func (s *postRepoStub) ReactionCounts(ctx context.Context, postIDs []uint) (map[uint]map[string]int, error) {
	return s.reactionCountsFn(ctx, postIDs)
}
func (s *postRepoStub) ReactionsByUser(ctx context.Context, postIDs []uint, userID uint) (map[uint]string, error) {
	return s.reactionsByUserFn(ctx, postIDs, userID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:      func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn:     func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listVisibleFn: func(_ context.Context, _ *models.User, _, _ int) ([]models.Post, error) { return nil, nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
		countSinceFn:  func(_ context.Context, _ time.Time) (int64, error) { return 0, nil },
		getReactionFn: func(_ context.Context, _, _ uint) (*models.Reaction, error) { return nil, nil },
		setReactionFn: func(_ context.Context, _ *models.Reaction) error { return nil },
		clearReactionFn: func(_ context.Context, _, _ uint) error {
			return nil
		},
		reactionCountsFn: func(_ context.Context, _ []uint) (map[uint]map[string]int, error) {
			return map[uint]map[string]int{}, nil
		},
		reactionsByUserFn: func(_ context.Context, _ []uint, _ uint) (map[uint]string, error) {
			return map[uint]string{}, nil
		},
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	listByPostFn  func(context.Context, uint) ([]models.Comment, error)
	listByPostsFn func(context.Context, []uint) (map[uint][]models.Comment, error)
	deleteFn      func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) ListByPosts(ctx context.Context, postIDs []uint) (map[uint][]models.Comment, error) {
	return s.listByPostsFn(ctx, postIDs)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(_ context.Context, _ uint) ([]models.Comment, error) { return nil, nil },
		listByPostsFn: func(_ context.Context, _ []uint) (map[uint][]models.Comment, error) {
			return map[uint][]models.Comment{}, nil
		},
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context, int, int) ([]models.User, error)
	countFn         func(context.Context) (int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *userRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
		countFn:         func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// chatRepoStub is a stub for repository.ChatRepository.
type chatRepoStub struct {
	createMessageFn  func(context.Context, *models.Message) error
	getMessageFn     func(context.Context, uint) (*models.Message, error)
	getThreadFn      func(context.Context, uint, uint, uint, int) ([]models.Message, error)
	markThreadReadFn func(context.Context, uint, uint) error
	peerIDsFn        func(context.Context, uint) ([]uint, error)
	lastMessageFn    func(context.Context, uint, uint) (*models.Message, error)
	unreadCountFn    func(context.Context, uint, uint) (int64, error)
	deleteThreadFn   func(context.Context, uint, uint) error
}

func (s *chatRepoStub) CreateMessage(ctx context.Context, msg *models.Message) error {
	return s.createMessageFn(ctx, msg)
}
func (s *chatRepoStub) GetMessage(ctx context.Context, id uint) (*models.Message, error) {
	return s.getMessageFn(ctx, id)
}
func (s *chatRepoStub) GetThread(ctx context.Context, userID, otherID uint, sinceID uint, limit int) ([]models.Message, error) {
	return s.getThreadFn(ctx, userID, otherID, sinceID, limit)
}
func (s *chatRepoStub) MarkThreadRead(ctx context.Context, userID, otherID uint) error {
	return s.markThreadReadFn(ctx, userID, otherID)
}
func (s *chatRepoStub) PeerIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.peerIDsFn(ctx, userID)
}
func (s *chatRepoStub) LastMessage(ctx context.Context, userID, otherID uint) (*models.Message, error) {
	return s.lastMessageFn(ctx, userID, otherID)
}
func (s *chatRepoStub) UnreadCount(ctx context.Context, userID, otherID uint) (int64, error) {
	return s.unreadCountFn(ctx, userID, otherID)
}
func (s *chatRepoStub) DeleteThread(ctx context.Context, userID, otherID uint) error {
	return s.deleteThreadFn(ctx, userID, otherID)
}

func noopChatRepo() *chatRepoStub {
	return &chatRepoStub{
		createMessageFn: func(_ context.Context, _ *models.Message) error { return nil },
		getMessageFn: func(_ context.Context, id uint) (*models.Message, error) {
			return &models.Message{ID: id}, nil
		},
		getThreadFn: func(_ context.Context, _, _, _ uint, _ int) ([]models.Message, error) {
			return nil, nil
		},
		markThreadReadFn: func(_ context.Context, _, _ uint) error { return nil },
		peerIDsFn:        func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
		lastMessageFn:    func(_ context.Context, _, _ uint) (*models.Message, error) { return nil, nil },
		unreadCountFn:    func(_ context.Context, _, _ uint) (int64, error) { return 0, nil },
		deleteThreadFn:   func(_ context.Context, _, _ uint) error { return nil },
	}
}

// attendanceRepoStub is a stub for repository.AttendanceRepository.
type attendanceRepoStub struct {
	createFn         func(context.Context, *models.AttendanceRecord) error
	updateFn         func(context.Context, *models.AttendanceRecord) error
	getOpenFn        func(context.Context, uint) (*models.AttendanceRecord, error)
	historyFn        func(context.Context, uint, int, int) ([]models.AttendanceRecord, error)
	countClockedInFn func(context.Context) (int64, error)
	createBreakFn    func(context.Context, *models.BreakRecord) error
	updateBreakFn    func(context.Context, *models.BreakRecord) error
	getOpenBreakFn   func(context.Context, uint) (*models.BreakRecord, error)
}

func (s *attendanceRepoStub) Create(ctx context.Context, record *models.AttendanceRecord) error {
	return s.createFn(ctx, record)
}
func (s *attendanceRepoStub) Update(ctx context.Context, record *models.AttendanceRecord) error {
	return s.updateFn(ctx, record)
}
func (s *attendanceRepoStub) GetOpen(ctx context.Context, userID uint) (*models.AttendanceRecord, error) {
	return s.getOpenFn(ctx, userID)
}
func (s *attendanceRepoStub) History(ctx context.Context, userID uint, limit, offset int) ([]models.AttendanceRecord, error) {
	return s.historyFn(ctx, userID, limit, offset)
}
func (s *attendanceRepoStub) CountClockedIn(ctx context.Context) (int64, error) {
	return s.countClockedInFn(ctx)
}
func (s *attendanceRepoStub) CreateBreak(ctx context.Context, br *models.BreakRecord) error {
	return s.createBreakFn(ctx, br)
}
func (s *attendanceRepoStub) UpdateBreak(ctx context.Context, br *models.BreakRecord) error {
	return s.updateBreakFn(ctx, br)
}
func (s *attendanceRepoStub) GetOpenBreak(ctx context.Context, attendanceID uint) (*models.BreakRecord, error) {
	return s.getOpenBreakFn(ctx, attendanceID)
}

func noopAttendanceRepo() *attendanceRepoStub {
	return &attendanceRepoStub{
		createFn:         func(_ context.Context, _ *models.AttendanceRecord) error { return nil },
		updateFn:         func(_ context.Context, _ *models.AttendanceRecord) error { return nil },
		getOpenFn:        func(_ context.Context, _ uint) (*models.AttendanceRecord, error) { return nil, nil },
		historyFn:        func(_ context.Context, _ uint, _, _ int) ([]models.AttendanceRecord, error) { return nil, nil },
		countClockedInFn: func(_ context.Context) (int64, error) { return 0, nil },
		createBreakFn:    func(_ context.Context, _ *models.BreakRecord) error { return nil },
		updateBreakFn:    func(_ context.Context, _ *models.BreakRecord) error { return nil },
		getOpenBreakFn:   func(_ context.Context, _ uint) (*models.BreakRecord, error) { return nil, nil },
	}
}

// permissionRepoStub is a stub for repository.PermissionRepository.
type permissionRepoStub struct {
	createFn        func(context.Context, *models.PermissionRequest) error
	getByIDFn       func(context.Context, uint) (*models.PermissionRequest, error)
	listByUserFn    func(context.Context, uint, int, int) ([]models.PermissionRequest, error)
	listByStatusFn  func(context.Context, string, int, int) ([]models.PermissionRequest, error)
	updateFn        func(context.Context, *models.PermissionRequest) error
	deleteFn        func(context.Context, uint) error
	countByStatusFn func(context.Context, string) (int64, error)
}

func (s *permissionRepoStub) Create(ctx context.Context, req *models.PermissionRequest) error {
	return s.createFn(ctx, req)
}
func (s *permissionRepoStub) GetByID(ctx context.Context, id uint) (*models.PermissionRequest, error) {
	return s.getByIDFn(ctx, id)
}
func (s *permissionRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.PermissionRequest, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *permissionRepoStub) ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.PermissionRequest, error) {
	return s.listByStatusFn(ctx, status, limit, offset)
}
func (s *permissionRepoStub) Update(ctx context.Context, req *models.PermissionRequest) error {
	return s.updateFn(ctx, req)
}
func (s *permissionRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *permissionRepoStub) CountByStatus(ctx context.Context, status string) (int64, error) {
	return s.countByStatusFn(ctx, status)
}

func noopPermissionRepo() *permissionRepoStub {
	return &permissionRepoStub{
		createFn: func(_ context.Context, _ *models.PermissionRequest) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.PermissionRequest, error) {
			return &models.PermissionRequest{ID: id, Status: models.PermissionStatusPending}, nil
		},
		listByUserFn: func(_ context.Context, _ uint, _, _ int) ([]models.PermissionRequest, error) {
			return nil, nil
		},
		listByStatusFn: func(_ context.Context, _ string, _, _ int) ([]models.PermissionRequest, error) {
			return nil, nil
		},
		updateFn:        func(_ context.Context, _ *models.PermissionRequest) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		countByStatusFn: func(_ context.Context, _ string) (int64, error) { return 0, nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

// assertForbiddenError asserts that err is an AppError with code FORBIDDEN.
func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "FORBIDDEN")
}

// assertNotFoundError asserts that err is an AppError with code NOT_FOUND.
func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
