package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"finpulse/config"
	"finpulse/internal/app"
	"finpulse/models"
	"finpulse/services"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxChatMessageBytes bounds the chat request body
const maxChatMessageBytes = 16 * 1024

// Handler handles HTTP API requests
type Handler struct {
	app *app.App
	cfg *config.Config
}

// NewHandler creates a new Handler
func NewHandler(application *app.App, cfg *config.Config) *Handler {
	return &Handler{app: application, cfg: cfg}
}

// userID resolves the acting user. There is no auth layer; clients identify
// themselves with a header and anonymous traffic shares one bucket.
func userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return "default"
}

// HandleHealth returns the health status of the application
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
		"services": map[string]string{
			"database": "unknown",
		},
	}

	if h.app.Repo() != nil {
		if err := h.app.Repo().Health(r.Context()); err == nil {
			status["services"].(map[string]string)["database"] = "connected"
		} else {
			status["services"].(map[string]string)["database"] = "disconnected"
			status["status"] = "degraded"
		}
	} else {
		status["services"].(map[string]string)["database"] = "not_configured"
	}

	cbStatus := services.GetGlobalRegistry().Status()
	status["circuit_breakers"] = cbStatus
	for _, cb := range cbStatus {
		if cb.State == "open" {
			status["status"] = "degraded"
			break
		}
	}

	h.jsonResponse(w, status)
}

// ChatRequest is the body for POST /api/chat
type ChatRequest struct {
	Message string `json:"message"`
}

// HandleChat runs one chatbot turn. The chatbot never fails, so the only
// error paths here are malformed requests.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxChatMessageBytes))
	if err != nil {
		h.jsonError(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	var req ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		h.jsonError(w, "message is required", http.StatusBadRequest)
		return
	}

	response := h.app.Chat(r.Context(), req.Message)
	h.jsonResponse(w, map[string]string{"response": response})
}

// HandleFeedStatus reports per-channel connection state
func (h *Handler) HandleFeedStatus(w http.ResponseWriter, r *http.Request) {
	channels, connected := h.app.FeedStatus()
	h.jsonResponse(w, map[string]interface{}{
		"connected": connected,
		"channels":  channels,
	})
}

// SubscribeRequest is the body for POST /api/feed/subscribe
type SubscribeRequest struct {
	Symbols []string `json:"symbols"`
}

// HandleSubscribe updates the stock-channel watch list
func (h *Handler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if len(req.Symbols) == 0 {
		h.jsonError(w, "symbols is required", http.StatusBadRequest)
		return
	}

	symbols := make([]string, 0, len(req.Symbols))
	for _, s := range req.Symbols {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			symbols = append(symbols, s)
		}
	}

	h.app.SubscribeToStocks(symbols)
	h.jsonResponse(w, map[string]interface{}{"subscribed": symbols})
}

// HandleTicks returns the latest cached tick per symbol
func (h *Handler) HandleTicks(w http.ResponseWriter, r *http.Request) {
	ticks := h.app.LatestTicks()
	h.jsonResponse(w, map[string]interface{}{
		"ticks": ticks,
		"count": len(ticks),
	})
}

// HandlePortfolio returns the last portfolio snapshot from the feed
func (h *Handler) HandlePortfolio(w http.ResponseWriter, r *http.Request) {
	snapshot := h.app.Portfolio()
	if snapshot == nil {
		h.jsonError(w, "no portfolio snapshot received yet", http.StatusNotFound)
		return
	}
	h.jsonResponse(w, snapshot)
}

// HandleQuotes fetches quotes on demand for ?symbols=AAPL,MSFT
func (h *Handler) HandleQuotes(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("symbols")
	if raw == "" {
		h.jsonError(w, "symbols query parameter is required", http.StatusBadRequest)
		return
	}

	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			symbols = append(symbols, s)
		}
	}
	if len(symbols) == 0 {
		h.jsonError(w, "symbols query parameter is required", http.StatusBadRequest)
		return
	}

	quotes, source := h.app.Quotes(r.Context(), symbols)
	h.jsonResponse(w, map[string]interface{}{
		"quotes": quotes,
		"source": source,
	})
}

// HandleListPreferences lists a user's stored preference keys
func (h *Handler) HandleListPreferences(w http.ResponseWriter, r *http.Request) {
	keys, err := h.app.ListPreferenceKeys(r.Context(), userID(r))
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	h.jsonResponse(w, map[string]interface{}{"keys": keys})
}

// HandleGetPreference returns one stored preference value
func (h *Handler) HandleGetPreference(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	value, err := h.app.GetPreference(r.Context(), userID(r), key)
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if value == nil {
		h.jsonError(w, "preference not found", http.StatusNotFound)
		return
	}
	h.jsonResponse(w, map[string]interface{}{"key": key, "value": value})
}

// HandleSetPreference stores a preference value. The body is the raw JSON
// value to store.
func (h *Handler) HandleSetPreference(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	body, err := io.ReadAll(io.LimitReader(r.Body, maxChatMessageBytes))
	if err != nil || len(body) == 0 {
		h.jsonError(w, "a JSON body is required", http.StatusBadRequest)
		return
	}
	if !json.Valid(body) {
		h.jsonError(w, "body is not valid JSON", http.StatusBadRequest)
		return
	}

	if err := h.app.SetPreference(r.Context(), userID(r), key, body); err != nil {
		h.jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	h.jsonResponse(w, map[string]string{"status": "ok"})
}

// HandleDeletePreference removes a stored preference value
func (h *Handler) HandleDeletePreference(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := h.app.DeletePreference(r.Context(), userID(r), key); err != nil {
		h.jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	h.jsonResponse(w, map[string]string{"status": "ok"})
}

// HandleGetSavedArticles returns a user's bookmarked articles
func (h *Handler) HandleGetSavedArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.app.GetSavedArticles(r.Context(), userID(r), h.ParseLimitParam(r, 50))
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	h.jsonResponse(w, map[string]interface{}{
		"articles": articles,
		"count":    len(articles),
	})
}

// HandleSaveArticle bookmarks an article for the user
func (h *Handler) HandleSaveArticle(w http.ResponseWriter, r *http.Request) {
	var article models.SavedArticle
	if err := json.NewDecoder(r.Body).Decode(&article); err != nil {
		h.jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if article.Title == "" || article.URL == "" {
		h.jsonError(w, "title and url are required", http.StatusBadRequest)
		return
	}
	article.UserID = userID(r)

	if err := h.app.SaveArticle(r.Context(), &article); err != nil {
		h.jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	h.jsonResponse(w, article)
}

// HandleDeleteSavedArticle removes a bookmark
func (h *Handler) HandleDeleteSavedArticle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.jsonError(w, "invalid article id", http.StatusBadRequest)
		return
	}

	if err := h.app.DeleteSavedArticle(r.Context(), userID(r), id); err != nil {
		h.jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	h.jsonResponse(w, map[string]string{"status": "ok"})
}

// HandleGetAlertPreferences returns the user's alert settings
func (h *Handler) HandleGetAlertPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.app.GetAlertPreferences(r.Context(), userID(r))
	if err != nil {
		h.jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	h.jsonResponse(w, prefs)
}

// HandleSetAlertPreferences stores the user's alert settings
func (h *Handler) HandleSetAlertPreferences(w http.ResponseWriter, r *http.Request) {
	var prefs models.AlertPreferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		h.jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	prefs.UserID = userID(r)

	if err := h.app.SetAlertPreferences(r.Context(), &prefs); err != nil {
		h.jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	h.jsonResponse(w, prefs)
}

// ParseLimitParam reads a positive ?limit= query parameter with a default
func (h *Handler) ParseLimitParam(r *http.Request, defaultLimit int) int {
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			return l
		}
	}
	return defaultLimit
}

func (h *Handler) jsonResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
