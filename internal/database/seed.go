// internal/database/seed.go
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/repository"
)

// DemoPassword is shared by every seeded account.
const DemoPassword = "Password123!"

type demoUsers struct {
	msme     *models.User
	admin    *models.User
	villager *models.User
	pending  *models.User
}

// Seed loads the demo dataset. Every step is skipped when its data already
// exists, so running it on each start is safe.
func Seed(ctx context.Context, store *repository.Store) error {
	logrus.Info("Seeding demo data...")

	if err := seedProducts(ctx, store); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}

	users, err := seedUsers(ctx, store)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	if err := seedMsmeProfiles(ctx, store, users); err != nil {
		return fmt.Errorf("seed msme profiles: %w", err)
	}
	if err := seedNews(ctx, store); err != nil {
		return fmt.Errorf("seed news: %w", err)
	}
	if err := seedTourismSpots(ctx, store); err != nil {
		return fmt.Errorf("seed tourism spots: %w", err)
	}
	if err := seedNotifications(ctx, store, users); err != nil {
		return fmt.Errorf("seed notifications: %w", err)
	}

	logrus.Info("Demo data ready")
	return nil
}

func seedProducts(ctx context.Context, store *repository.Store) error {
	existing, err := store.Products.Count(ctx)
	if err != nil || existing > 0 {
		return err
	}

	products := []*models.Product{
		{Name: "Batik Tote", Description: "Handmade batik tote bag", Price: 34.5, Stock: 12, Category: "Accessories"},
		{Name: "Kopi Luwak", Description: "Premium Indonesian coffee beans", Price: 18, Stock: 40, Category: "Beverages"},
		{Name: "Bamboo Basket", Description: "Sustainable bamboo basket from local artisans", Price: 22, Stock: 30, Category: "Handicrafts"},
	}
	for _, product := range products {
		if err := store.Products.Create(ctx, product); err != nil {
			return err
		}
	}
	return nil
}

func seedUsers(ctx context.Context, store *repository.Store) (*demoUsers, error) {
	var (
		users demoUsers
		err   error
	)

	if users.msme, err = ensureUser(ctx, store, "Demo MSME", "msme@example.com", models.UserRoleMsme); err != nil {
		return nil, err
	}
	if users.admin, err = ensureUser(ctx, store, "Village Admin", "admin@example.com", models.UserRoleAdmin); err != nil {
		return nil, err
	}
	if users.villager, err = ensureUser(ctx, store, "Community Member", "villager@example.com", models.UserRoleVillager); err != nil {
		return nil, err
	}
	if users.pending, err = ensureUser(ctx, store, "Pending MSME", "pending.msme@example.com", models.UserRoleMsme); err != nil {
		return nil, err
	}
	return &users, nil
}

func ensureUser(ctx context.Context, store *repository.Store, name, email string, role models.UserRole) (*models.User, error) {
	user, err := store.Users.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	user = &models.User{Name: name, Email: email, Role: role}
	if err := user.SetPassword(DemoPassword); err != nil {
		return nil, err
	}
	if err := store.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func seedMsmeProfiles(ctx context.Context, store *repository.Store, users *demoUsers) error {
	profiles := []*models.MsmeProfile{
		{
			UserID:      users.msme.ID,
			StoreName:   "Warung Sari",
			Category:    "Food & Beverage",
			Description: "Traditional delicacies and daily staples from local farmers.",
			Location:    "Central Market",
			DistanceKm:  0.5,
			Rating:      4.8,
			Status:      models.MsmeStatusApproved,
		},
		{
			UserID:      users.pending.ID,
			StoreName:   "Kerajinan Tangan",
			Category:    "Handicrafts",
			Description: "Handmade crafts awaiting verification.",
			Location:    "Artisan Lane",
			DistanceKm:  1.2,
			Rating:      4.5,
			Status:      models.MsmeStatusPending,
		},
	}

	for _, profile := range profiles {
		_, err := store.MsmeProfiles.FindByUserID(ctx, profile.UserID)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if err := store.MsmeProfiles.Create(ctx, profile); err != nil {
			return err
		}
	}
	return nil
}

func seedNews(ctx context.Context, store *repository.Store) error {
	existing, err := store.News.Count(ctx)
	if err != nil || existing > 0 {
		return err
	}

	items := []*models.NewsItem{
		{
			Title:   "Village Festival Next Week",
			Summary: "Join us for a cultural celebration featuring local MSMEs and performances.",
			Type:    models.NewsTypeEvent,
		},
		{
			Title:   "New MSME Added: Fresh Produce",
			Summary: "Introducing a new farm-to-table experience with organic vegetables.",
			Type:    models.NewsTypeBusiness,
		},
		{
			Title:   "Community Meeting on Saturday",
			Summary: "Discussing infrastructure plans and digital initiatives for the village.",
			Type:    models.NewsTypeAnnouncement,
		},
	}
	for _, item := range items {
		if err := store.News.Create(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func seedTourismSpots(ctx context.Context, store *repository.Store) error {
	existing, err := store.Tourism.Count(ctx)
	if err != nil || existing > 0 {
		return err
	}

	spots := []*models.TourismSpot{
		{
			Name:        "Air Terjun Indah",
			Description: "A hidden waterfall surrounded by lush greenery.",
			ImageURL:    "https://images.unsplash.com/photo-1760292424045-6c3669699efd?auto=format&fit=crop&w=800&q=80",
			Location:    "North Valley",
		},
		{
			Name:        "Sawah Terrace",
			Description: "Panoramic rice fields perfect for sunrise walks.",
			ImageURL:    "https://images.unsplash.com/photo-1737913785137-c2a957ae7565?auto=format&fit=crop&w=800&q=80",
			Location:    "East Ridge",
		},
		{
			Name:        "Kampung Tradisi",
			Description: "Experience traditional crafts and culinary delights.",
			ImageURL:    "https://images.unsplash.com/photo-1576267423048-15c0040fec78?auto=format&fit=crop&w=800&q=80",
			Location:    "Heritage Quarter",
		},
	}
	for _, spot := range spots {
		if err := store.Tourism.Create(ctx, spot); err != nil {
			return err
		}
	}
	return nil
}

func seedNotifications(ctx context.Context, store *repository.Store, users *demoUsers) error {
	existing, err := store.Notifications.Count(ctx)
	if err != nil || existing > 0 {
		return err
	}

	notifications := []*models.Notification{
		{
			Title:        "Welcome to Karya Desa",
			Message:      "Stay tuned for updates from your community.",
			Type:         models.NotificationTypeSystem,
			AuthorID:     &users.admin.ID,
			TargetUserID: &users.villager.ID,
		},
		{
			Title:        "Profile Approved",
			Message:      "Your MSME profile is under review.",
			Type:         models.NotificationTypeAnnouncement,
			AuthorID:     &users.admin.ID,
			TargetUserID: &users.msme.ID,
		},
	}
	for _, notification := range notifications {
		if err := store.Notifications.Create(ctx, notification); err != nil {
			return err
		}
	}
	return nil
}
