package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kahu-edu/badge-portfolio-api/internal/deck"
	"github.com/kahu-edu/badge-portfolio-api/internal/dto"
	appErrors "github.com/kahu-edu/badge-portfolio-api/pkg/errors"
	"github.com/kahu-edu/badge-portfolio-api/pkg/export"
	"github.com/kahu-edu/badge-portfolio-api/pkg/storage"
)

type slideStore interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Exists(filename string) bool
	LatestWithPrefix(prefix, ext string) (string, error)
}

type pdfRenderer interface {
	Render(doc export.Document) ([]byte, error)
}

// SlideConfig carries URL construction settings for deck artifacts.
type SlideConfig struct {
	BaseURL   string
	APIPrefix string
}

// SlideService builds presentation decks from badge data and serves the
// resulting artifacts.
type SlideService struct {
	badges    applicationBadgeReader
	store     slideStore
	renderer  pdfRenderer
	signer    *storage.ShareSigner
	config    SlideConfig
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewSlideService constructs a SlideService.
func NewSlideService(badges applicationBadgeReader, store slideStore, renderer pdfRenderer, signer *storage.ShareSigner, config SlideConfig, validate *validator.Validate, logger *zap.Logger) *SlideService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlideService{
		badges:    badges,
		store:     store,
		renderer:  renderer,
		signer:    signer,
		config:    config,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate builds the slide sequence for a badge and writes the PPTX artifact
// to the artifact store. The badge must exist before any file is written. The
// PDF rendition is produced on first download, not here.
func (s *SlideService) Generate(ctx context.Context, req dto.GenerateSlidesRequest) (*dto.GenerateSlidesResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slides payload")
	}

	badge, err := s.badges.FindByID(ctx, req.BadgeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "badge not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load badge")
	}

	name := req.BadgeName
	if name == "" {
		name = badge.Name
	}
	profile := req.GraduateProfile
	if profile == "" {
		profile = string(badge.GraduateProfile)
	}

	input := deck.Input{
		BadgeName:   name,
		Criteria:    badge.Criteria,
		Profile:     profile,
		GeneratedAt: s.now(),
		Reflections: req.Reflections,
	}
	for _, item := range req.Evidence {
		input.Evidence = append(input.Evidence, deck.EvidenceItem{
			Type:        item.Type,
			Title:       item.Title,
			Description: item.Description,
			Source:      item.Source,
		})
	}
	built := deck.Build(input)

	var pptx bytes.Buffer
	if err := deck.WritePPTX(&pptx, built); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render deck")
	}

	stem := fmt.Sprintf("badge-%s-%d", req.BadgeID, s.now().UnixMilli())
	filename := stem + ".pptx"
	if _, err := s.store.Save(filename, pptx.Bytes()); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store deck")
	}

	s.logger.Info("deck generated",
		zap.String("badge_id", req.BadgeID),
		zap.String("filename", filename),
		zap.Int("slides", len(built.Slides)))

	share, _ := s.shareURL(req.BadgeID, filename)
	return &dto.GenerateSlidesResponse{
		Filename:    filename,
		SlideCount:  len(built.Slides),
		DownloadURL: s.routeURL("/slides/download/" + filename),
		PDFURL:      s.routeURL("/slides/pdf/" + stem + ".pdf"),
		ViewURL:     s.routeURL("/slides/view/" + req.BadgeID),
		ShareURL:    share,
	}, nil
}

// OpenArtifact streams a previously generated artifact. Only flat .pptx and
// .pdf names are served.
func (s *SlideService) OpenArtifact(filename string) (*os.File, error) {
	if !validArtifactName(filename) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid artifact name")
	}
	if !s.store.Exists(filename) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "artifact not found")
	}
	file, err := s.store.Open(filename)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open artifact")
	}
	return file, nil
}

// OpenPDF streams the PDF rendition of a generated deck. The PDF is rendered
// from the badge record on first request, cached next to the PPTX under the
// same stem, and served from the cache afterwards. A PDF name whose PPTX
// sibling was never generated is NotFound.
func (s *SlideService) OpenPDF(ctx context.Context, filename string) (*os.File, error) {
	if !validArtifactName(filename) || !strings.HasSuffix(filename, ".pdf") {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid artifact name")
	}
	if s.store.Exists(filename) {
		return s.OpenArtifact(filename)
	}

	stem := strings.TrimSuffix(filename, ".pdf")
	if !s.store.Exists(stem + ".pptx") {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "artifact not found")
	}
	badgeID, ok := badgeIDFromStem(stem)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "artifact not found")
	}
	badge, err := s.badges.FindByID(ctx, badgeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "badge not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load badge")
	}

	built := deck.Build(deck.Input{
		BadgeName:   badge.Name,
		Criteria:    badge.Criteria,
		Profile:     string(badge.GraduateProfile),
		GeneratedAt: s.now(),
	})
	pdfBytes, err := s.renderer.Render(deck.ToDocument(built))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	if _, err := s.store.Save(filename, pdfBytes); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store pdf")
	}
	s.logger.Info("pdf rendered", zap.String("filename", filename))
	return s.OpenArtifact(filename)
}

// badgeIDFromStem extracts the badge id from an artifact stem shaped
// badge-<badgeId>-<epochMillis>.
func badgeIDFromStem(stem string) (string, bool) {
	rest, ok := strings.CutPrefix(stem, "badge-")
	if !ok {
		return "", false
	}
	i := strings.LastIndex(rest, "-")
	if i <= 0 || i == len(rest)-1 {
		return "", false
	}
	return rest[:i], true
}

// RenderView writes the HTML rendition for a badge.
func (s *SlideService) RenderView(ctx context.Context, badgeID string, w io.Writer) error {
	badge, err := s.badges.FindByID(ctx, badgeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "badge not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load badge")
	}
	if err := deck.RenderHTML(w, *badge); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render view")
	}
	return nil
}

// Share issues a signed link to the newest deck generated for the badge.
func (s *SlideService) Share(ctx context.Context, badgeID string) (*dto.ShareSlidesResponse, error) {
	if _, err := s.badges.FindByID(ctx, badgeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "badge not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load badge")
	}

	latest, err := s.store.LatestWithPrefix("badge-"+badgeID+"-", ".pptx")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to inspect artifact store")
	}
	if latest == "" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no generated deck for badge")
	}

	url, err := s.shareURL(badgeID, latest)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign share link")
	}
	return &dto.ShareSlidesResponse{
		ShareURL: url,
		Message:  "Anyone with this link can download the presentation until it expires.",
	}, nil
}

// ResolveShared validates a share token and opens the artifact it references.
func (s *SlideService) ResolveShared(token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired share link")
	}
	file, err := s.OpenArtifact(relPath)
	if err != nil {
		return nil, "", err
	}
	return file, relPath, nil
}

func (s *SlideService) shareURL(badgeID, filename string) (string, error) {
	if s.signer == nil {
		return "", fmt.Errorf("share signing not configured")
	}
	token, _, err := s.signer.Generate(badgeID, filename)
	if err != nil {
		return "", err
	}
	return s.routeURL("/slides/shared/" + token), nil
}

func (s *SlideService) routeURL(route string) string {
	base := strings.TrimSuffix(s.config.BaseURL, "/")
	prefix := "/" + strings.Trim(s.config.APIPrefix, "/")
	return base + prefix + route
}

func validArtifactName(filename string) bool {
	if filename == "" || strings.ContainsAny(filename, "/\\") || strings.Contains(filename, "..") {
		return false
	}
	return strings.HasSuffix(filename, ".pptx") || strings.HasSuffix(filename, ".pdf")
}
