// internal/services/community_service.go
package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/karyadesa/karya-desa-backend/internal/apperrors"
	"github.com/karyadesa/karya-desa-backend/internal/i18n"
	"github.com/karyadesa/karya-desa-backend/internal/models"
	"github.com/karyadesa/karya-desa-backend/internal/repository"
)

const (
	homeNewsLimit    = 5
	homeTourismLimit = 6
	homeMsmeLimit    = 6
)

type CommunityService struct {
	users    repository.UserRepository
	profiles repository.MsmeProfileRepository
	news     repository.NewsRepository
	tourism  repository.TourismRepository
	events   EventsCounter
}

type CommunityStats struct {
	EventsCount       int64 `json:"eventsCount"`
	BusinessesCount   int64 `json:"businessesCount"`
	TourismSpotsCount int64 `json:"tourismSpotsCount"`
	ActiveMembers     int64 `json:"activeMembers"`
}

type CommunityMsme struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	DistanceKm float64   `json:"distanceKm"`
	Rating     float64   `json:"rating"`
	Location   string    `json:"location"`
}

type CommunityHome struct {
	Stats        CommunityStats       `json:"stats"`
	News         []models.NewsItem    `json:"news"`
	TourismSpots []models.TourismSpot `json:"tourismSpots"`
	Msmes        []CommunityMsme      `json:"msmes"`
}

type CreateNewsRequest struct {
	Title       string          `json:"title" validate:"required,min=3"`
	Summary     string          `json:"summary" validate:"required,min=10"`
	Type        models.NewsType `json:"type" validate:"required,oneof=event business announcement"`
	PublishedAt *string         `json:"publishedAt" validate:"omitnil,datetime=2006-01-02T15:04:05Z07:00"`
}

type CreateTourismRequest struct {
	Name        string `json:"name" validate:"required,min=3"`
	Description string `json:"description" validate:"required,min=10"`
	ImageURL    string `json:"imageUrl" validate:"required,url"`
	Location    string `json:"location" validate:"required,min=2"`
}

// NewCommunityService wires the home feed. events may be nil when no
// external events source is configured.
func NewCommunityService(
	users repository.UserRepository,
	profiles repository.MsmeProfileRepository,
	news repository.NewsRepository,
	tourism repository.TourismRepository,
	events EventsCounter,
) *CommunityService {
	return &CommunityService{
		users:    users,
		profiles: profiles,
		news:     news,
		tourism:  tourism,
		events:   events,
	}
}

// GetHome assembles the public home feed. Store reads must all succeed; the
// external events count never fails the call.
func (s *CommunityService) GetHome(ctx context.Context) (*CommunityHome, error) {
	var (
		home        = &CommunityHome{}
		profiles    []models.MsmeProfile
		externalCnt int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		home.News, err = s.news.ListLatest(gctx, homeNewsLimit)
		return err
	})
	g.Go(func() (err error) {
		home.TourismSpots, err = s.tourism.ListLatest(gctx, homeTourismLimit)
		return err
	})
	g.Go(func() (err error) {
		profiles, err = s.profiles.ListNearest(gctx, models.MsmeStatusApproved, homeMsmeLimit)
		return err
	})
	g.Go(func() (err error) {
		home.Stats.EventsCount, err = s.news.CountByType(gctx, models.NewsTypeEvent)
		return err
	})
	g.Go(func() (err error) {
		home.Stats.BusinessesCount, err = s.profiles.CountByStatus(gctx, models.MsmeStatusApproved)
		return err
	})
	g.Go(func() (err error) {
		home.Stats.TourismSpotsCount, err = s.tourism.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		home.Stats.ActiveMembers, err = s.users.Count(gctx)
		return err
	})
	if s.events != nil {
		// Uses the parent context so a failed store read does not cancel it
		// mid-flight; Count has its own timeout.
		g.Go(func() error {
			externalCnt = s.events.Count(ctx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, apperrors.Internal("failed to build community home", err)
	}

	home.Stats.EventsCount += int64(externalCnt)

	if home.News == nil {
		home.News = []models.NewsItem{}
	}
	if home.TourismSpots == nil {
		home.TourismSpots = []models.TourismSpot{}
	}
	home.Msmes = make([]CommunityMsme, 0, len(profiles))
	for _, profile := range profiles {
		home.Msmes = append(home.Msmes, CommunityMsme{
			ID:         profile.ID,
			Name:       profile.StoreName,
			Category:   profile.Category,
			DistanceKm: profile.DistanceKm,
			Rating:     profile.Rating,
			Location:   profile.Location,
		})
	}

	return home, nil
}

func requireAdmin(role models.UserRole) error {
	if role != models.UserRoleAdmin {
		return apperrors.Forbidden("Admin access required").WithKey(i18n.KeyAdminOnly)
	}
	return nil
}

func (s *CommunityService) CreateNewsItem(ctx context.Context, req *CreateNewsRequest, authorID *uuid.UUID) (*models.NewsItem, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	item := &models.NewsItem{
		Title:       req.Title,
		Summary:     req.Summary,
		Type:        req.Type,
		CreatedByID: authorID,
	}
	if req.PublishedAt != nil {
		// Already checked by the datetime tag.
		item.PublishedAt, _ = time.Parse(time.RFC3339, *req.PublishedAt)
	}

	if err := s.news.Create(ctx, item); err != nil {
		return nil, apperrors.Internal("failed to create news item", err)
	}

	logrus.WithFields(logrus.Fields{
		"news_id": item.ID,
		"type":    item.Type,
	}).Info("News item published")

	return item, nil
}

// DeleteNewsItem is restricted to admins regardless of route policy.
func (s *CommunityService) DeleteNewsItem(ctx context.Context, id uuid.UUID, role models.UserRole) error {
	if err := requireAdmin(role); err != nil {
		return err
	}
	if err := s.news.Delete(ctx, id); err != nil {
		return notFoundOr(err, apperrors.NotFound("News item not found").WithKey(i18n.KeyNewsNotFound), "failed to delete news item")
	}
	return nil
}

func (s *CommunityService) CreateTourismSpot(ctx context.Context, req *CreateTourismRequest, authorID *uuid.UUID) (*models.TourismSpot, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	spot := &models.TourismSpot{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Location:    req.Location,
		CreatedByID: authorID,
	}
	if err := s.tourism.Create(ctx, spot); err != nil {
		return nil, apperrors.Internal("failed to create tourism spot", err)
	}

	logrus.WithField("tourism_id", spot.ID).Info("Tourism spot published")
	return spot, nil
}

func (s *CommunityService) DeleteTourismSpot(ctx context.Context, id uuid.UUID, role models.UserRole) error {
	if err := requireAdmin(role); err != nil {
		return err
	}
	if err := s.tourism.Delete(ctx, id); err != nil {
		return notFoundOr(err, apperrors.NotFound("Tourism spot not found").WithKey(i18n.KeyTourismNotFound), "failed to delete tourism spot")
	}
	return nil
}
