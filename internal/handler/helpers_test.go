package handler

import (
	"bytes"
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kahu-edu/badge-portfolio-api/internal/models"
)

const (
	testUserID  = "6f1a2d34-0000-4000-8000-000000000001"
	testBadgeID = "6f1a2d34-0000-4000-8000-000000000002"
	testAppID   = "6f1a2d34-0000-4000-8000-000000000003"
)

func newGinContext(method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

type badgeRepoStub struct {
	badges map[string]models.Badge
}

func (m *badgeRepoStub) ListActive(ctx context.Context, profile *models.GraduateProfile) ([]models.Badge, error) {
	list := make([]models.Badge, 0, len(m.badges))
	for _, b := range m.badges {
		if profile == nil || b.GraduateProfile == *profile {
			list = append(list, b)
		}
	}
	return list, nil
}

func (m *badgeRepoStub) FindByID(ctx context.Context, id string) (*models.Badge, error) {
	if b, ok := m.badges[id]; ok {
		badge := b
		return &badge, nil
	}
	return nil, sql.ErrNoRows
}

func (m *badgeRepoStub) Create(ctx context.Context, badge *models.Badge) error {
	if m.badges == nil {
		m.badges = make(map[string]models.Badge)
	}
	if badge.ID == "" {
		badge.ID = "generated"
	}
	m.badges[badge.ID] = *badge
	return nil
}

func (m *badgeRepoStub) Update(ctx context.Context, badge *models.Badge) error {
	m.badges[badge.ID] = *badge
	return nil
}

type applicationRepoStub struct {
	applications map[string]models.Application
	lastReviewer *string
}

func (m *applicationRepoStub) Create(ctx context.Context, app *models.Application) error {
	if m.applications == nil {
		m.applications = make(map[string]models.Application)
	}
	if app.ID == "" {
		app.ID = "generated"
	}
	m.applications[app.ID] = *app
	return nil
}

func (m *applicationRepoStub) FindByID(ctx context.Context, id string) (*models.Application, error) {
	if a, ok := m.applications[id]; ok {
		app := a
		return &app, nil
	}
	return nil, sql.ErrNoRows
}

func (m *applicationRepoStub) FindDetail(ctx context.Context, id string) (*models.ApplicationDetail, error) {
	if a, ok := m.applications[id]; ok {
		return &models.ApplicationDetail{Application: a, Evidence: []models.Evidence{}}, nil
	}
	return nil, sql.ErrNoRows
}

func (m *applicationRepoStub) ListByUser(ctx context.Context, userID string) ([]models.UserApplication, error) {
	list := make([]models.UserApplication, 0)
	for _, a := range m.applications {
		if a.UserID == userID {
			list = append(list, models.UserApplication{Application: a, Evidence: []models.Evidence{}})
		}
	}
	return list, nil
}

func (m *applicationRepoStub) ListForReview(ctx context.Context) ([]models.ReviewItem, error) {
	list := make([]models.ReviewItem, 0)
	for _, a := range m.applications {
		if a.Status == models.StatusSubmitted {
			list = append(list, models.ReviewItem{Application: a})
		}
	}
	return list, nil
}

func (m *applicationRepoStub) ExistsForUserBadge(ctx context.Context, userID, badgeID string) (bool, error) {
	return false, nil
}

func (m *applicationRepoStub) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, reviewedBy, feedback *string) (*models.Application, error) {
	app, ok := m.applications[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	app.Status = status
	m.lastReviewer = reviewedBy
	now := time.Now().UTC()
	switch {
	case status == models.StatusSubmitted:
		app.SubmittedAt = &now
	case status.Terminal():
		app.ReviewedAt = &now
		app.ReviewedBy = reviewedBy
		app.Feedback = feedback
	}
	m.applications[id] = app
	return &app, nil
}

func catalogBadge() models.Badge {
	return models.Badge{
		ID:                    testBadgeID,
		Name:                  "Kaitiakitanga",
		Description:           "Care for the environment",
		Criteria:              "Complete a conservation project",
		GraduateProfile:       models.ProfileHauora,
		Level:                 1,
		RequiredEvidenceCount: 3,
		IsActive:              true,
	}
}
