// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"shiftdesk/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var groups = []string{"alpha", "bravo", "charlie", ""}

var clients = []string{"Acme Corp", "Globex", "Initech", "Umbrella"}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rnd *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:  db,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a user with a hashed default password ("password123").
func (f *Factory) CreateUser(role string, overrides ...func(*models.User)) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: fmt.Sprintf("%s%d", gofakeit.Username(), f.rnd.Intn(10000)),
		Email:    gofakeit.Email(),
		Password: string(hash),
		Role:     role,
		Group:    groups[f.rnd.Intn(len(groups))],
		Client:   clients[f.rnd.Intn(len(clients))],
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost persists a feed post authored by the user, with the author's
// identity denormalized the way the feed service does it.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID:    author.ID,
		Username:  author.Username,
		Role:      author.Role,
		Group:     author.Group,
		Client:    author.Client,
		Content:   gofakeit.Paragraph(1, 3, 8, " "),
		CreatedAt: f.pastTime(14),
	}
	for _, override := range overrides {
		override(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment on a post.
func (f *Factory) CreateComment(post *models.Post, author *models.User) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:   post.ID,
		UserID:   author.ID,
		Username: author.Username,
		Role:     author.Role,
		Content:  gofakeit.Sentence(f.rnd.Intn(12) + 3),
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateReaction persists a reaction on a post with a random emoji.
func (f *Factory) CreateReaction(post *models.Post, user *models.User) error {
	reaction := &models.Reaction{
		PostID: post.ID,
		UserID: user.ID,
		Emoji:  models.Emojis[f.rnd.Intn(len(models.Emojis))],
	}
	return f.db.Create(reaction).Error
}

// CreateMessage persists a direct message between two users.
func (f *Factory) CreateMessage(from, to *models.User) (*models.Message, error) {
	msg := &models.Message{
		FromUserID:  from.ID,
		ToUserID:    to.ID,
		Content:     gofakeit.Sentence(f.rnd.Intn(10) + 2),
		ContentType: models.MessageTypeText,
		CreatedAt:   f.pastTime(7),
	}
	if err := f.db.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// CreateAttendance persists a closed attendance record with one break.
func (f *Factory) CreateAttendance(user *models.User, daysAgo int) (*models.AttendanceRecord, error) {
	clockIn := time.Now().UTC().AddDate(0, 0, -daysAgo).Truncate(time.Hour)
	clockOut := clockIn.Add(8 * time.Hour)

	record := &models.AttendanceRecord{
		UserID:   user.ID,
		ClockIn:  clockIn,
		ClockOut: &clockOut,
	}
	if err := f.db.Create(record).Error; err != nil {
		return nil, err
	}

	breakStart := clockIn.Add(4 * time.Hour)
	breakEnd := breakStart.Add(30 * time.Minute)
	br := &models.BreakRecord{
		AttendanceID: record.ID,
		Kind:         models.BreakKindLunch,
		StartedAt:    breakStart,
		EndedAt:      &breakEnd,
	}
	if err := f.db.Create(br).Error; err != nil {
		return nil, err
	}
	record.Breaks = []models.BreakRecord{*br}
	return record, nil
}

// CreateTask persists a kanban task in the creator's group.
func (f *Factory) CreateTask(creator *models.User, status string, position int) (*models.Task, error) {
	task := &models.Task{
		Title:       gofakeit.Sentence(4),
		Description: gofakeit.Paragraph(1, 2, 6, " "),
		Status:      status,
		Position:    position,
		Group:       creator.Group,
		CreatedBy:   creator.ID,
	}
	if err := f.db.Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// CreateNote persists a private note for the user.
func (f *Factory) CreateNote(user *models.User) (*models.Note, error) {
	note := &models.Note{
		UserID:  user.ID,
		Title:   gofakeit.Sentence(3),
		Content: gofakeit.Paragraph(1, 2, 8, " "),
		Pinned:  f.rnd.Intn(4) == 0,
	}
	if err := f.db.Create(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

// CreateIncident persists an open incident report.
func (f *Factory) CreateIncident(reporter *models.User) (*models.Incident, error) {
	severities := []string{
		models.IncidentSeverityLow,
		models.IncidentSeverityMedium,
		models.IncidentSeverityHigh,
	}
	incident := &models.Incident{
		ReporterID:  reporter.ID,
		Title:       gofakeit.Sentence(5),
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		Severity:    severities[f.rnd.Intn(len(severities))],
		Status:      models.IncidentStatusOpen,
	}
	if err := f.db.Create(incident).Error; err != nil {
		return nil, err
	}
	return incident, nil
}

// CreatePermissionRequest persists a pending time-off request.
func (f *Factory) CreatePermissionRequest(user *models.User) (*models.PermissionRequest, error) {
	kinds := []string{
		models.PermissionKindVacation,
		models.PermissionKindSick,
		models.PermissionKindPersonal,
	}
	start := time.Now().UTC().AddDate(0, 0, f.rnd.Intn(30)+1)
	req := &models.PermissionRequest{
		UserID:    user.ID,
		Kind:      kinds[f.rnd.Intn(len(kinds))],
		StartDate: start,
		EndDate:   start.AddDate(0, 0, f.rnd.Intn(5)),
		Reason:    gofakeit.Sentence(6),
		Status:    models.PermissionStatusPending,
	}
	if err := f.db.Create(req).Error; err != nil {
		return nil, err
	}
	return req, nil
}

func (f *Factory) pastTime(maxDays int) time.Time {
	return time.Now().UTC().
		Add(-time.Duration(f.rnd.Intn(maxDays*24)) * time.Hour).
		Add(-time.Duration(f.rnd.Intn(60)) * time.Minute)
}
