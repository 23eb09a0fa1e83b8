package telegram

import (
	"sync"
)

const (
	modeAwaitReference = "await_reference"

	maxSide = 1600
)

var chatMode sync.Map // chatID -> string: "", "await_reference"

// хелперы
func setMode(chatID int64, mode string) { chatMode.Store(chatID, mode) }
func getMode(chatID int64) string {
	if v, ok := chatMode.Load(chatID); ok {
		if s, _ := v.(string); s != "" {
			return s
		}
	}
	return ""
}
func clearMode(chatID int64) { chatMode.Delete(chatID) }
