package seed

import (
	"fmt"
	"log"

	"shiftdesk/internal/database"
	"shiftdesk/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with demo data: an admin, a supervisor, a set
// of employees across groups, and activity spread over the last two weeks.
func Seed(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 12
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 30
	}

	log.Printf("Seeding database with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear existing data: %w", err)
		}
	}

	f := NewFactory(db)

	// Well-known accounts for manual testing.
	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.MinCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		Username: "admin",
		Email:    "admin@shiftdesk.local",
		Password: string(adminHash),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	supervisor, err := f.CreateUser(models.RoleSupervisor, func(u *models.User) {
		u.Username = "supervisor"
		u.Email = "supervisor@shiftdesk.local"
		u.Group = "alpha"
	})
	if err != nil {
		return fmt.Errorf("failed to create supervisor: %w", err)
	}

	users := []*models.User{admin, supervisor}
	for i := 2; i < opts.NumUsers; i++ {
		u, err := f.CreateUser(models.RoleEmployee)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, u)
	}

	// Feed activity.
	var posts []*models.Post
	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.rnd.Intn(len(users))]
		post, err := f.CreatePost(author)
		if err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		posts = append(posts, post)

		for _, u := range users {
			if f.rnd.Intn(3) == 0 && u.ID != author.ID {
				if err := f.CreateReaction(post, u); err != nil {
					return fmt.Errorf("failed to create reaction: %w", err)
				}
			}
		}
		for c := 0; c < f.rnd.Intn(4); c++ {
			commenter := users[f.rnd.Intn(len(users))]
			if _, err := f.CreateComment(post, commenter); err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
		}
	}

	// Chat threads between random pairs.
	for i := 0; i < len(users)*2; i++ {
		from := users[f.rnd.Intn(len(users))]
		to := users[f.rnd.Intn(len(users))]
		if from.ID == to.ID {
			continue
		}
		if _, err := f.CreateMessage(from, to); err != nil {
			return fmt.Errorf("failed to create message: %w", err)
		}
	}

	// Workforce data.
	for _, u := range users {
		for d := 1; d <= 5; d++ {
			if _, err := f.CreateAttendance(u, d); err != nil {
				return fmt.Errorf("failed to create attendance: %w", err)
			}
		}
		if _, err := f.CreateNote(u); err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}
	}

	statuses := []string{models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusDone}
	for i := 0; i < opts.NumUsers; i++ {
		creator := users[f.rnd.Intn(len(users))]
		if _, err := f.CreateTask(creator, statuses[i%len(statuses)], i); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
	}

	for i := 0; i < opts.NumUsers/2; i++ {
		reporter := users[f.rnd.Intn(len(users))]
		if _, err := f.CreateIncident(reporter); err != nil {
			return fmt.Errorf("failed to create incident: %w", err)
		}
		if _, err := f.CreatePermissionRequest(reporter); err != nil {
			return fmt.Errorf("failed to create permission request: %w", err)
		}
	}

	log.Printf("Seeding complete: %d users, %d posts", len(users), len(posts))
	return nil
}

// clearData deletes all rows in reverse FK order.
func clearData(db *gorm.DB) error {
	all := database.AllModels()
	for i := len(all) - 1; i >= 0; i-- {
		if err := db.Unscoped().Where("1 = 1").Delete(all[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
