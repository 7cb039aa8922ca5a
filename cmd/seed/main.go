package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"blogicum/internal/entity"
	"blogicum/internal/repo/persistent"
	"blogicum/pkg/config"
	"blogicum/pkg/database"
	"blogicum/pkg/logger"
	"blogicum/pkg/s3"
	"blogicum/pkg/slug"

	"golang.org/x/crypto/bcrypt"
)

type seeder struct {
	users      persistent.UserRepository
	categories persistent.CategoryRepository
	locations  persistent.LocationRepository
	posts      persistent.PostRepository
	images     *s3.Client
	httpClient *http.Client
	log        *logger.Logger
}

func main() {
	var withImages bool
	flag.BoolVar(&withImages, "images", false, "download sample images and upload them to S3")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	s := &seeder{
		users:      persistent.NewUserRepository(db),
		categories: persistent.NewCategoryRepository(db),
		locations:  persistent.NewLocationRepository(db),
		posts:      persistent.NewPostRepository(db),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}

	if withImages {
		s.images, err = s3.NewClient(cfg)
		if err != nil {
			log.Error("Failed to create S3 client: %v", err)
			panic(err)
		}
	}

	if err := s.run(); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func (s *seeder) run() error {
	testUsers := []struct {
		username, email, firstName, lastName string
		staff                                bool
	}{
		{"admin", "admin@blogicum.com", "", "", true},
		{"leo", "leo@test.com", "Лев", "Толстой", false},
		{"anna", "anna@test.com", "Анна", "Ахматова", false},
	}

	var authors []*entity.User
	for _, data := range testUsers {
		user, err := s.ensureUser(data.username, data.email, data.firstName, data.lastName, data.staff)
		if err != nil {
			return err
		}
		if !user.IsStaff {
			authors = append(authors, user)
		}
	}

	categories := []struct {
		title, description string
		published          bool
	}{
		{"Путешествия", "Заметки о дорогах и городах.", true},
		{"Кино", "Рецензии и впечатления.", true},
		{"Черновики", "Скрытая категория.", false},
	}

	var categoryIDs []uint
	for _, data := range categories {
		category, err := s.ensureCategory(data.title, data.description, data.published)
		if err != nil {
			return err
		}
		if category != nil {
			categoryIDs = append(categoryIDs, category.ID)
		}
	}

	locationIDs, err := s.ensureLocations("Москва", "Санкт-Петербург", "Казань")
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for i, author := range authors {
		for j := 0; j < 4; j++ {
			post := &entity.Post{
				Title:       fmt.Sprintf("Запись №%d от %s", j+1, author.Username),
				Text:        "Текст публикации.\nВторая строка.",
				PubDate:     now.Add(-time.Duration(i*4+j) * time.Hour),
				IsPublished: true,
				AuthorID:    author.ID,
			}
			if len(categoryIDs) > 0 {
				post.CategoryID = &categoryIDs[(i+j)%len(categoryIDs)]
			}
			if j%2 == 0 && len(locationIDs) > 0 {
				post.LocationID = &locationIDs[j%len(locationIDs)]
			}
			// The last post of every author is scheduled for tomorrow.
			if j == 3 {
				post.PubDate = now.Add(24 * time.Hour)
			}

			if s.images != nil {
				if err := s.attachImage(post, author.ID, j); err != nil {
					s.log.Warn("Skipping image for post %q: %v", post.Title, err)
				}
			}

			if err := s.posts.Create(post); err != nil {
				return fmt.Errorf("failed to create post: %w", err)
			}
			s.log.Info("Created post: %s", post.Title)
		}
	}
	return nil
}

func (s *seeder) ensureUser(username, email, firstName, lastName string, staff bool) (*entity.User, error) {
	existing, err := s.users.GetByUsername(username)
	if err == nil {
		s.log.Info("User %s already exists, skipping", username)
		return existing, nil
	}
	if !errors.Is(err, entity.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:  username,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Password:  string(hashedPassword),
		IsStaff:   staff,
		IsActive:  true,
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", username, err)
	}

	s.log.Info("Created user: %s (%s)", user.Username, user.Email)
	return user, nil
}

func (s *seeder) ensureLocations(names ...string) ([]uint, error) {
	existing, err := s.locations.ListPublished()
	if err != nil {
		return nil, err
	}

	var ids []uint
	if len(existing) > 0 {
		s.log.Info("Locations already exist, skipping")
		for _, location := range existing {
			ids = append(ids, location.ID)
		}
		return ids, nil
	}

	for _, name := range names {
		location := &entity.Location{Name: name, IsPublished: true}
		if err := s.locations.Create(location); err != nil {
			return nil, fmt.Errorf("failed to create location %s: %w", name, err)
		}
		ids = append(ids, location.ID)
	}
	return ids, nil
}

// ensureCategory returns nil when a category with the same slug already exists.
func (s *seeder) ensureCategory(title, description string, published bool) (*entity.Category, error) {
	categorySlug := slug.Make(title)
	exists, err := s.categories.SlugExists(categorySlug)
	if err != nil {
		return nil, err
	}
	if exists {
		s.log.Info("Category %s already exists, skipping", categorySlug)
		return nil, nil
	}

	category := &entity.Category{
		Title:       title,
		Description: description,
		Slug:        categorySlug,
		IsPublished: published,
	}
	if err := s.categories.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category %s: %w", categorySlug, err)
	}
	return category, nil
}

func (s *seeder) attachImage(post *entity.Post, authorID uint, index int) error {
	resp, err := s.httpClient.Get("https://picsum.photos/960/540.jpg")
	if err != nil {
		return fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image source returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read image data: %w", err)
	}
	if len(data) == 0 {
		return errors.New("received empty image data")
	}

	key := fmt.Sprintf("posts_images/%d/seed_%d.jpg", authorID, index)
	url, err := s.images.UploadFile(key, bytes.NewReader(data), "image/jpeg")
	if err != nil {
		return fmt.Errorf("failed to upload image to S3: %w", err)
	}

	post.Image = url
	post.ImageKey = key
	return nil
}
