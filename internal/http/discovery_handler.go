package http

import "net/http"

// DiscoveryHandler serves the classifier and the shopping assistant.
type DiscoveryHandler struct {
	classifier Classifier
	assistant  Assistant
}

func NewDiscoveryHandler(classifier Classifier, assistant Assistant) *DiscoveryHandler {
	return &DiscoveryHandler{classifier: classifier, assistant: assistant}
}

func (h *DiscoveryHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	results, err := h.classifier.Classify(r.Context(), req.Categories)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, toClassifyResponseDTO(results))
}

func (h *DiscoveryHandler) Assistant(w http.ResponseWriter, r *http.Request) {
	var req AssistantRequestDTO
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, AssistantResponseDTO{Response: h.assistant.Reply(r.Context(), req.Message)})
}
