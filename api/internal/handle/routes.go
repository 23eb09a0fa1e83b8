package handle

import "net/http"

// Routes registers every endpoint on mux.
func (h *Handle) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Tidy room assistant API"})
	})

	mux.HandleFunc("POST /detect_objects/", h.DetectObjects)
	mux.HandleFunc("POST /simple_detect_objects/", h.SimpleDetect)
	mux.HandleFunc("POST /describe_object/", h.DescribeObject)

	mux.HandleFunc("POST /chambre/upload_reference/", h.UploadReference)
	mux.HandleFunc("GET /chambre/get_reference/", h.GetReference)
	mux.HandleFunc("POST /complete_task/", h.CompleteTask)
	mux.HandleFunc("POST /reset_tasks/", h.ResetTasks)

	mux.HandleFunc("POST /chat_with_assistant/", h.ChatWithAssistant)
	mux.HandleFunc("POST /recognize_speech/", h.RecognizeSpeech)
	mux.HandleFunc("POST /recognize_hand_gesture/", h.RecognizeHandGesture)
	mux.HandleFunc("POST /log-activity/", h.LogActivity)

	mux.HandleFunc("POST /dessins/upload/", h.UploadDrawing)
	mux.HandleFunc("GET /dessins/{id}", h.GetDrawing)
	mux.HandleFunc("GET /dessins/utilisateur/{user_id}", h.ListDrawings)

	mux.HandleFunc("GET /available_classes", h.AvailableClasses)
	mux.HandleFunc("POST /switch_detector", h.SwitchDetector)
}
