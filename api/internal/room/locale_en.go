package room

import (
	"fmt"
	"strings"

	"tidy-room/api/internal/vision"
)

type english struct{}

var English Locale = english{}

func (english) Tag() string { return "en" }

func (english) Label(label string) string { return strings.ToLower(label) }

func (english) ColorName(c string) string { return c }

func (english) SizeName(s vision.SizeClass) string { return string(s) }

func (english) ZoneName(z vision.Zone) string {
	z = zoneOrUnknown(z)
	if z.V == vision.Middle && z.H == vision.Center {
		return "in the middle"
	}
	return "at the " + z.String()
}

var enEncouragements = []string{
	"You're doing a great job!",
	"Keep it up!",
	"Super effort!",
	"You're really good at this!",
	"Thanks for helping!",
}

func (english) Encouragements() []string { return enEncouragements }

var enHints = map[string]string{
	"teddy bear":  "Your teddy would love to be back with its friends on the bed!",
	"book":        "Books are happy when they stand in a neat row on the shelf!",
	"sports ball": "The ball needs a rest after all that bouncing!",
	"ball":        "The ball needs a rest after all that bouncing!",
	"car":         "Vroom vroom! The car is driving back to its garage!",
	"toy car":     "Vroom vroom! The little car is driving back to its garage!",
	"doll":        "Your doll is ready for a nap in her spot!",
	"cup":         "A cup put away is a cup that won't break!",
	"backpack":    "Your backpack will be ready for tomorrow!",
	"scissors":    "Scissors always go away carefully!",
	"pencil":      "Pencils like to stay together in their pot!",
}

func (english) Hint(label string) string {
	if h, ok := enHints[strings.ToLower(label)]; ok {
		return h
	}
	return "A place for everything, and your room will look amazing!"
}

func (e english) object(o DetectedObject) string {
	return "the " + e.ColorName(o.ColorName) + " " + e.Label(o.Label)
}

func (e english) Matched(o DetectedObject, target vision.Zone, encouragement, hint string) string {
	dst := e.ZoneName(target)
	msg := fmt.Sprintf("I found %s. It is a %s object %s of your room. ",
		e.object(o), e.SizeName(o.Size), e.ZoneName(o.Position))
	switch o.Size {
	case vision.SizeSmall:
		msg += fmt.Sprintf("Pick it up with one hand and put it back %s of your room.", dst)
	case vision.SizeMedium:
		msg += fmt.Sprintf("Use both hands and put it %s of your room.", dst)
	default:
		msg += fmt.Sprintf("Maybe ask an adult to help you move it %s of your room.", dst)
	}
	return joinNonEmpty(msg, encouragement, hint)
}

func (e english) Unmatched(o DetectedObject, hint string) string {
	msg := fmt.Sprintf("I found %s (%s) %s of your room, but I don't know where it goes. Ask a grown-up.",
		e.object(o), e.SizeName(o.Size), e.ZoneName(o.Position))
	return joinNonEmpty(msg, hint)
}

func (english) NoReference() string {
	return "Ask a grown-up to take a photo of your tidy room first!"
}

func (english) AllTidy() string {
	return "I don't see any toys to put away, or your room is already perfect!"
}

func (english) TasksFound(n int) string { return fmt.Sprintf("I found %d things to put away!", n) }

func (english) Progress(l ProgressLevel) string {
	switch l {
	case ProgressAllDone:
		return "Well done, everything is tidy! You're a tidying champion!"
	case ProgressAlmostDone:
		return "Almost done! Just a little more!"
	case ProgressHalfway:
		return "More than halfway there! Great work!"
	case ProgressGoodStart:
		return "Good start! Keep going!"
	default:
		return "Let's go! Every thing you put away counts!"
	}
}

func (english) ReferenceSaved() string { return "Reference photo uploaded" }

func (english) ResetDone() string { return "Task counter reset." }

func (english) ObjectsFound(n int) string { return fmt.Sprintf("I found %d object(s)!", n) }

var enFacts = map[string]string{
	"book":        "Books help us learn and dream!",
	"sports ball": "Balls bounce and roll! You can play with it!",
	"pencil":      "With pencils you can draw beautiful things!",
	"car":         "Cars take us everywhere! Vroom vroom!",
	"toy car":     "Cars take us everywhere! Vroom vroom!",
	"teddy bear":  "Teddies are soft and perfect for hugs!",
	"doll":        "Dolls can be your friends when you play!",
}

func (e english) Describe(o DetectedObject) string {
	var size string
	switch o.Size {
	case vision.SizeSmall:
		size = "tiny and cute"
	case vision.SizeMedium:
		size = "just the right size to play with"
	default:
		size = "quite big and impressive"
	}
	fact, ok := enFacts[strings.ToLower(o.Label)]
	if !ok {
		fact = "What an interesting thing!"
	}
	color := e.ColorName(o.ColorName)
	article := "a"
	if color != "" && strings.ContainsRune("aeiou", rune(color[0])) {
		article = "an"
	}
	return fmt.Sprintf("I can see you're holding %s %s %s! It is %s. %s",
		article, color, e.Label(o.Label), size, fact)
}

func (english) NothingInHand() string {
	return "I can't see anything clearly in your hands! Can you bring it a bit closer to the camera?"
}
