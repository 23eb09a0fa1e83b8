package room

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"tidy-room/api/internal/detector"
	"tidy-room/api/internal/util"
	"tidy-room/api/internal/vision"
)

// ErrImageMissing: the reference record exists but its photo is gone from disk.
var ErrImageMissing = errors.New("reference image missing")

// Service runs reconciliation and the reference/progress operations around it.
// It holds no per-request state; concurrent calls are safe as long as the
// stores are.
type Service struct {
	Detector detector.Detector
	Refs     ReferenceStore
	Progress ProgressStore
	Locale   Locale
	Rand     Rand

	// RoomsDir is where reference photos are written.
	RoomsDir string
	// DetectTimeout bounds one detector call; 0 means only the caller's context.
	DetectTimeout time.Duration
}

func (s *Service) locale() Locale {
	if s.Locale == nil {
		return French
	}
	return s.Locale
}

func (s *Service) generator() Generator {
	return Generator{Locale: s.locale(), Rand: s.Rand}
}

func (s *Service) detect(ctx context.Context, frame vision.Frame) ([]detector.Detection, error) {
	if s.Detector == nil {
		return nil, detector.Unavailable("no detector configured")
	}
	if s.DetectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.DetectTimeout)
		defer cancel()
	}
	return detector.Run(ctx, s.Detector, frame)
}

func decode(image []byte) (vision.Frame, error) {
	frame, err := vision.Decode(image)
	if err != nil {
		return vision.Frame{}, &detector.DetectionError{Err: err}
	}
	return frame, nil
}

// Reconcile compares a photo of the room with the user's reference set and
// returns one task per detected object, most confident first.
//
// Errors: detector.ErrUnavailable, *detector.DetectionError, *StoreError or
// ErrInternal. A missing reference is not an error.
func (s *Service) Reconcile(ctx context.Context, userID int64, image []byte) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("reconcile: user=%d panic: %v", userID, r)
			res, err = Result{}, fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()
	loc := s.locale()

	ref, err := s.Refs.GetReference(ctx, userID)
	if errors.Is(err, ErrNoReference) {
		return Result{Message: loc.NoReference(), Tasks: []GuidanceTask{}}, nil
	}
	if err != nil {
		return Result{}, storeErr("get reference", err)
	}
	refImage := ""
	if ref.ImagePath != "" {
		refImage = filepath.Base(ref.ImagePath)
	}

	frame, err := decode(image)
	if err != nil {
		return Result{}, err
	}
	dets, err := s.detect(ctx, frame)
	if err != nil {
		return Result{}, err
	}
	log.Printf("reconcile: user=%d %dx%d detections=%d references=%d",
		userID, frame.Width(), frame.Height(), len(dets), len(ref.Objects))

	tasks := s.generator().GenerateAll(Match(Enrich(frame, dets), ref.Objects))
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Confidence > tasks[j].Confidence })

	completed, err := s.Progress.Completed(ctx, userID)
	if err != nil {
		return Result{}, storeErr("get progress", err)
	}
	res = Result{
		Message:         loc.TasksFound(len(tasks)),
		Tasks:           tasks,
		TotalTasks:      len(tasks),
		CompletedTasks:  completed,
		ProgressMessage: loc.Progress(LevelOf(completed, len(tasks))),
		ReferenceImage:  refImage,
	}
	if len(tasks) == 0 {
		// пустой список задач: счётчик всё равно отдаём, прогресс = всё готово
		res.Message, res.Tasks = loc.AllTidy(), []GuidanceTask{}
	}
	return res, nil
}

// Capture is the outcome of recording a tidy room.
type Capture struct {
	ObjectsDetected int               `json:"objects_detected"`
	FilePath        string            `json:"file_path"`
	Objects         []ReferenceObject `json:"objects"`
}

// CaptureReference detects objects on the tidy photo, stores the photo and
// replaces the user's reference set. The file is removed again if the store
// rejects the new set.
func (s *Service) CaptureReference(ctx context.Context, userID int64, image []byte) (Capture, error) {
	frame, err := decode(image)
	if err != nil {
		return Capture{}, err
	}
	dets, err := s.detect(ctx, frame)
	if err != nil {
		return Capture{}, err
	}
	objs := BuildReference(frame, dets)

	name := fmt.Sprintf("chambre_%d_%s%s", userID, uuid.NewString(), util.ExtForMIME(util.SniffMimeHTTP(image)))
	path := filepath.Join(s.RoomsDir, name)
	if err := util.WriteFileAtomic(path, image); err != nil {
		return Capture{}, storeErr("save reference image", err)
	}

	ref := Reference{
		UserID:    userID,
		ImagePath: path,
		Width:     frame.Width(),
		Height:    frame.Height(),
		Objects:   objs,
	}
	if err := s.Refs.ReplaceReference(ctx, ref); err != nil {
		_ = os.Remove(path)
		return Capture{}, storeErr("replace reference", err)
	}
	log.Printf("reference: user=%d objects=%d file=%s", userID, len(objs), path)
	return Capture{ObjectsDetected: len(objs), FilePath: path, Objects: objs}, nil
}

// GetReference returns the stored reference; ErrImageMissing if the photo
// was deleted from disk.
func (s *Service) GetReference(ctx context.Context, userID int64) (Reference, error) {
	ref, err := s.Refs.GetReference(ctx, userID)
	if errors.Is(err, ErrNoReference) {
		return Reference{}, err
	}
	if err != nil {
		return Reference{}, storeErr("get reference", err)
	}
	if ref.ImagePath == "" {
		return Reference{}, ErrImageMissing
	}
	if _, err := os.Stat(ref.ImagePath); err != nil {
		return Reference{}, fmt.Errorf("%w: %v", ErrImageMissing, err)
	}
	return ref, nil
}

// CompleteTask increments the counter and phrases it against one task left.
func (s *Service) CompleteTask(ctx context.Context, userID int64) (int, string, error) {
	n, err := s.Progress.Increment(ctx, userID)
	if errors.Is(err, ErrNoReference) {
		return 0, "", err
	}
	if err != nil {
		return 0, "", storeErr("increment progress", err)
	}
	return n, s.locale().Progress(LevelOf(n, n+1)), nil
}

// Completed returns the counter; ErrNoReference when the user never captured a room.
func (s *Service) Completed(ctx context.Context, userID int64) (int, error) {
	if _, err := s.Refs.GetReference(ctx, userID); err != nil {
		if errors.Is(err, ErrNoReference) {
			return 0, err
		}
		return 0, storeErr("get reference", err)
	}
	n, err := s.Progress.Completed(ctx, userID)
	if err != nil {
		return 0, storeErr("get progress", err)
	}
	return n, nil
}

func (s *Service) ResetTasks(ctx context.Context, userID int64) error {
	err := s.Progress.Reset(ctx, userID)
	if errors.Is(err, ErrNoReference) {
		return err
	}
	return storeErr("reset progress", err)
}

// SimpleDetect detects and enriches without a reference. Detections below
// minConfidence are dropped.
func (s *Service) SimpleDetect(ctx context.Context, image []byte, minConfidence float64) ([]DetectedObject, error) {
	frame, err := decode(image)
	if err != nil {
		return nil, err
	}
	dets, err := s.detect(ctx, frame)
	if err != nil {
		return nil, err
	}
	kept := dets[:0:0]
	for _, d := range dets {
		if d.Confidence >= minConfidence {
			kept = append(kept, d)
		}
	}
	return Enrich(frame, kept), nil
}

// Describe picks the most confident detection. ok is false when nothing was found.
func (s *Service) Describe(ctx context.Context, image []byte) (obj DetectedObject, ok bool, err error) {
	frame, err := decode(image)
	if err != nil {
		return DetectedObject{}, false, err
	}
	dets, err := s.detect(ctx, frame)
	if err != nil {
		return DetectedObject{}, false, err
	}
	if len(dets) == 0 {
		return DetectedObject{}, false, nil
	}
	best := 0
	for i, d := range dets {
		if d.Confidence > dets[best].Confidence {
			best = i
		}
	}
	return Enrich(frame, dets[best:best+1])[0], true, nil
}
