package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	announcementModel "schoolku_backend/internals/features/communication/announcements/model"
	announcementService "schoolku_backend/internals/features/communication/announcements/service"
	eventModel "schoolku_backend/internals/features/communication/events/model"
	eventService "schoolku_backend/internals/features/communication/events/service"
	articleModel "schoolku_backend/internals/features/home/articles/model"
	articleService "schoolku_backend/internals/features/home/articles/service"
	newsModel "schoolku_backend/internals/features/home/news/model"
	newsService "schoolku_backend/internals/features/home/news/service"
	"schoolku_backend/internals/helpers/dbtime"
)

const (
	homeAnnouncements = 5
	homeEvents        = 5
	homeArticles      = 3
)

type Home struct {
	Announcements []announcementModel.AnnouncementModel
	News          []newsModel.NewsModel
	Events        []eventModel.EventModel
	Articles      []articleModel.ArticleModel
}

// LoadHome: empat blok halaman depan, diambil paralel.
func LoadHome(ctx context.Context, db *gorm.DB, now time.Time) (*Home, error) {
	var h Home
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		h.Announcements, err = announcementService.RecentPublic(gctx, db, dbtime.StartOfDay(now), homeAnnouncements)
		return err
	})
	g.Go(func() (err error) {
		h.News, err = newsService.Active(gctx, db)
		return err
	})
	g.Go(func() (err error) {
		h.Events, err = eventService.Upcoming(gctx, db, now, homeEvents)
		return err
	})
	g.Go(func() (err error) {
		h.Articles, err = articleService.Latest(gctx, db, homeArticles)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &h, nil
}
