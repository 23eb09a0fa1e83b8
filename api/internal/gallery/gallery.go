// Package gallery stores children's drawings and tags each with the most
// confident object the detector sees on it.
package gallery

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"tidy-room/api/internal/detector"
	"tidy-room/api/internal/store"
	"tidy-room/api/internal/util"
	"tidy-room/api/internal/vision"
)

var (
	ErrUnknownUser  = errors.New("user not found")
	ErrImageMissing = errors.New("drawing image missing")
)

const thumbSize = 160

type Store interface {
	EnsureUser(ctx context.Context, userID int64) error
	UserExists(ctx context.Context, userID int64) (bool, error)
	Create(ctx context.Context, d store.Drawing) (store.Drawing, error)
	Get(ctx context.Context, id int64) (store.Drawing, error)
	ListByUser(ctx context.Context, userID int64) ([]store.Drawing, error)
}

type Service struct {
	Store    Store
	Detector detector.Detector // optional
	Dir      string

	DetectTimeout time.Duration
}

// Item is a drawing with its image inlined as a data URL. Image is empty and
// Error set when the file is gone.
type Item struct {
	store.Drawing
	Image     string
	Thumbnail string
	Error     string
}

// Upload saves the file, tags it and records it. Detector failures only leave
// the tag empty.
func (s *Service) Upload(ctx context.Context, userID int64, data []byte, filename, description string) (store.Drawing, error) {
	if len(data) == 0 {
		return store.Drawing{}, vision.ErrEmptyImage
	}
	if userID != 0 {
		if err := s.Store.EnsureUser(ctx, userID); err != nil {
			return store.Drawing{}, fmt.Errorf("ensure user: %w", err)
		}
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = util.ExtForMIME(util.SniffMimeHTTP(data))
	}
	name := "dessin_" + uuid.NewString() + ext
	if userID != 0 {
		name = fmt.Sprintf("dessin_user%d_%s%s", userID, uuid.NewString(), ext)
	}
	path := filepath.Join(s.Dir, name)
	if err := util.WriteFileAtomic(path, data); err != nil {
		return store.Drawing{}, err
	}

	d, err := s.Store.Create(ctx, store.Drawing{
		UserID:         userID,
		ImagePath:      path,
		Description:    description,
		DetectedObject: s.tag(ctx, data),
	})
	if err != nil {
		_ = os.Remove(path)
		return store.Drawing{}, fmt.Errorf("save drawing: %w", err)
	}
	log.Printf("gallery: drawing %d user=%d object=%q", d.ID, userID, d.DetectedObject)
	return d, nil
}

func (s *Service) tag(ctx context.Context, data []byte) string {
	if s.Detector == nil {
		return ""
	}
	frame, err := vision.Decode(data)
	if err != nil {
		log.Printf("gallery: decode for tagging: %v", err)
		return ""
	}
	if s.DetectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.DetectTimeout)
		defer cancel()
	}
	dets, err := detector.Run(ctx, s.Detector, frame)
	if err != nil {
		log.Printf("gallery: detection: %v", err)
		return ""
	}
	best := ""
	bestConf := -1.0
	for _, d := range dets {
		if d.Confidence > bestConf {
			best, bestConf = d.Label, d.Confidence
		}
	}
	return best
}

// Get returns store.ErrNotFound or ErrImageMissing.
func (s *Service) Get(ctx context.Context, id int64) (Item, error) {
	d, err := s.Store.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}
	it := s.load(d, false)
	if it.Image == "" {
		return Item{}, ErrImageMissing
	}
	return it, nil
}

// List returns the user's drawings newest first, each with a thumbnail.
func (s *Service) List(ctx context.Context, userID int64) ([]Item, error) {
	ok, err := s.Store.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnknownUser
	}
	ds, err := s.Store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]Item, 0, len(ds))
	for _, d := range ds {
		out = append(out, s.load(d, true))
	}
	return out, nil
}

func (s *Service) load(d store.Drawing, withThumb bool) Item {
	it := Item{Drawing: d}
	b, err := os.ReadFile(d.ImagePath)
	if err != nil {
		it.Error = "image not found"
		return it
	}
	it.Image = util.MakeDataURL(util.SniffMimeHTTP(b), base64.StdEncoding.EncodeToString(b))
	if withThumb {
		it.Thumbnail = thumbnail(b)
	}
	return it
}

func thumbnail(b []byte) string {
	img, err := imaging.Decode(bytes.NewReader(b), imaging.AutoOrientation(true))
	if err != nil {
		return ""
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.Fit(img, thumbSize, thumbSize, imaging.Lanczos), imaging.JPEG); err != nil {
		return ""
	}
	return util.MakeDataURL("image/jpeg", base64.StdEncoding.EncodeToString(buf.Bytes()))
}
