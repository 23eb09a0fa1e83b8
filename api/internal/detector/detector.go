package detector

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"tidy-room/api/internal/vision"
)

// Detection: один объект, найденный моделью.
type Detection struct {
	Label      string      `json:"label"`
	Confidence float64     `json:"confidence"`
	Box        vision.Rect `json:"box"`
}

type Detector interface {
	Name() string
	Detect(ctx context.Context, frame vision.Frame) ([]Detection, error)
}

// ClassLister is implemented by detectors that can report the labels they know.
type ClassLister interface {
	Classes(ctx context.Context) ([]string, error)
}

// HealthChecker is implemented by detectors backed by a separate service.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// ErrUnavailable means the model is not loaded or not reachable.
var ErrUnavailable = errors.New("detector unavailable")

// DetectionError is an inference failure on a specific image
// (corrupt data, unsupported format, malformed model output).
type DetectionError struct {
	Err error
}

func (e *DetectionError) Error() string { return "detection failed: " + e.Err.Error() }
func (e *DetectionError) Unwrap() error { return e.Err }

func Failed(format string, args ...any) error {
	return &DetectionError{Err: fmt.Errorf(format, args...)}
}

func Unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnavailable, fmt.Sprintf(format, args...))
}

// Manager holds the detectors configured at start-up and the active one.
// Switching only affects requests that start afterwards.
type Manager struct {
	mu     sync.RWMutex
	byName map[string]Detector
	active string
}

func NewManager(def Detector, others ...Detector) *Manager {
	m := &Manager{byName: map[string]Detector{}}
	if def != nil {
		m.byName[def.Name()] = def
		m.active = def.Name()
	}
	for _, d := range others {
		if d != nil {
			m.byName[d.Name()] = d
		}
	}
	return m
}

// Get returns the active detector or ErrUnavailable when none is configured.
func (m *Manager) Get() (Detector, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.byName[m.active]
	if !ok {
		return nil, Unavailable("no detector configured")
	}
	return d, nil
}

// Use switches the active detector.
func (m *Manager) Use(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byName[name]; !ok {
		return fmt.Errorf("unknown detector %q; available: %s", name, strings.Join(m.namesLocked(), ", "))
	}
	m.active = name
	return nil
}

func (m *Manager) Active() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.namesLocked()
}

func (m *Manager) namesLocked() []string {
	out := make([]string, 0, len(m.byName))
	for n := range m.byName {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Detect runs the active detector. A context deadline is reported as
// ErrUnavailable; other errors that are not already classified become
// DetectionError.
func (m *Manager) Detect(ctx context.Context, frame vision.Frame) ([]Detection, error) {
	d, err := m.Get()
	if err != nil {
		return nil, err
	}
	return Run(ctx, d, frame)
}

// Run calls d and normalises its errors.
func Run(ctx context.Context, d Detector, frame vision.Frame) ([]Detection, error) {
	dets, err := d.Detect(ctx, frame)
	if err == nil {
		return dets, nil
	}
	// клиент ушёл: это не ошибка картинки
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return nil, fmt.Errorf("%s: %w", d.Name(), context.Canceled)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w: %s timed out: %v", ErrUnavailable, d.Name(), err)
	}
	var de *DetectionError
	if errors.Is(err, ErrUnavailable) || errors.As(err, &de) {
		return nil, err
	}
	return nil, &DetectionError{Err: err}
}

// CheckHealth pings the active detector when it has a health endpoint.
// Detectors without one are always healthy.
func (m *Manager) CheckHealth(ctx context.Context) error {
	d, err := m.Get()
	if err != nil {
		return err
	}
	hc, ok := d.(HealthChecker)
	if !ok {
		return nil
	}
	if err := hc.CheckHealth(ctx); err != nil {
		return fmt.Errorf("detector %s: %w", d.Name(), err)
	}
	return nil
}

// Name reports the active detector, so a Manager can stand in for a Detector.
func (m *Manager) Name() string { return m.Active() }
