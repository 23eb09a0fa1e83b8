package room

import (
	"time"

	"tidy-room/api/internal/vision"
)

// DetectedObject is one detection of the current photo with the attributes
// derived from its pixels. It lives for a single request.
type DetectedObject struct {
	Label      string
	Confidence float64
	Box        vision.Rect
	Color      vision.RGB
	ColorName  string
	Size       vision.SizeClass
	Position   vision.Zone
}

// ReferenceObject is a detection recorded when the room was tidy.
// Box is in the reference image's pixel space; Position was computed
// against the reference image's own dimensions.
type ReferenceObject struct {
	Label      string           `json:"name"`
	Box        vision.Rect      `json:"box"`
	Position   vision.Zone      `json:"position"`
	Confidence float64          `json:"confidence"`
	Color      vision.RGB       `json:"color"`
	Size       vision.SizeClass `json:"size"`
}

// Reference: сохранённая «чистая» комната пользователя.
type Reference struct {
	UserID         int64             `json:"user_id"`
	ImagePath      string            `json:"image_path"`
	Width          int               `json:"width"`
	Height         int               `json:"height"`
	Objects        []ReferenceObject `json:"objects"`
	CompletedTasks int               `json:"completed_tasks"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// MatchResult pairs a detection with the reference object it should go back to.
// Target is nil when no unconsumed reference of the same label was left.
type MatchResult struct {
	Detected DetectedObject
	Target   *ReferenceObject
}

// GuidanceTask is one instruction in the reconcile response.
// TargetPosition and TargetBox are both set or both nil.
type GuidanceTask struct {
	Name           string           `json:"detected_object_name"`
	Confidence     float64          `json:"confidence"`
	Box            vision.Rect      `json:"detected_object_box"`
	Color          vision.RGB       `json:"detected_object_color"`
	ColorName      string           `json:"detected_object_color_name"`
	Size           vision.SizeClass `json:"detected_object_size"`
	Position       vision.Zone      `json:"current_position"`
	TargetPosition *vision.Zone     `json:"target_position"`
	TargetBox      *vision.Rect     `json:"target_location_box"`
	Message        string           `json:"guidance_message"`
}

// Result is the reconcile response.
type Result struct {
	Message         string         `json:"message"`
	Tasks           []GuidanceTask `json:"tasks"`
	TotalTasks      int            `json:"total_tasks"`
	CompletedTasks  int            `json:"completed_tasks"`
	ProgressMessage string         `json:"progress_message"`
	ReferenceImage  string         `json:"reference_image,omitempty"`
}
