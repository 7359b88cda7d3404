package api

import (
	"encoding/json"
	"net/http"
)

type ModelsResponse struct {
	Models  []string `json:"models"`
	Default string   `json:"default"`
}

type AnswerRequest struct {
	Model    string `json:"model"`
	Question string `json:"question"`
}

type AnswerResponse struct {
	Answer string `json:"answer"`
}

const maxRequestBody = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
