package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/bigboy/appconfig/internal/locale"
	"github.com/bigboy/appconfig/internal/membership"
	"github.com/bigboy/appconfig/internal/orderstatus"
	"github.com/bigboy/appconfig/internal/table"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

const cacheControl = "public, max-age=300"

// Handler serves the configuration table over HTTP.
type Handler struct {
	table table.Table

	clock     func() time.Time
	startedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler serving tbl.
func NewHandler(tbl table.Table, opts ...HandlerOption) *Handler {
	h := &Handler{
		table: tbl,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.startedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		BuildMode: h.table.Mode().String(),
		Timestamp: h.clock(),
		StartedAt: h.startedAt,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(w, r)
	writeCacheableJSON(w, r, h.table.Snapshot(lang))
}

func (h *Handler) handleStorageKeys(w http.ResponseWriter, r *http.Request) {
	writeCacheableJSON(w, r, h.table.StorageKeys())
}

func (h *Handler) handleColors(w http.ResponseWriter, r *http.Request) {
	writeCacheableJSON(w, r, h.table.ColorMap())
}

func (h *Handler) handleMembershipTiers(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(w, r)
	writeCacheableJSON(w, r, tiersResponse{Tiers: h.table.TierViews(lang)})
}

func (h *Handler) handleMembershipTier(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(w, r)
	tier, err := membership.Parse(r.PathValue("code"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown membership tier", err.Error(), "valid codes: "+joinCodes(h.table.MembershipTiers()))
		return
	}
	view, err := table.TierViewOf(tier, lang)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeCacheableJSON(w, r, view)
}

func (h *Handler) handleOrderStatuses(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(w, r)
	writeCacheableJSON(w, r, statusesResponse{Statuses: h.table.StatusViews(lang)})
}

func (h *Handler) handleOrderStatus(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(w, r)
	status, err := orderstatus.Parse(r.PathValue("code"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Unknown order status", err.Error(), "valid codes: "+joinCodes(h.table.OrderStatuses()))
		return
	}
	writeCacheableJSON(w, r, table.StatusViewOf(status, lang))
}

func (h *Handler) handleMembershipProgress(w http.ResponseWriter, r *http.Request) {
	lang := requestLanguage(w, r)
	raw := strings.TrimSpace(r.URL.Query().Get("spending"))
	if raw == "" {
		writeError(w, http.StatusBadRequest, "Invalid request", "spending query parameter is required")
		return
	}
	spending, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || spending < 0 {
		writeError(w, http.StatusBadRequest, "Invalid request", "spending must be a non-negative integer")
		return
	}

	p := membership.ProgressFor(spending)
	resp := progressResponse{
		CurrentTier:    p.Current.String(),
		CurrentLabel:   p.Current.Label(lang),
		TotalSpending:  p.TotalSpending,
		SpendingToNext: p.SpendingToNext,
	}
	if p.HasNext() {
		next, label := p.Next.String(), p.Next.Label(lang)
		resp.NextTier = &next
		resp.NextLabel = &label
	}
	writeJSON(w, http.StatusOK, resp)
}

func requestLanguage(w http.ResponseWriter, r *http.Request) language.Tag {
	lang := locale.Match(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
	w.Header().Set("Content-Language", lang.String())
	w.Header().Add("Vary", "Accept-Language")
	return lang
}

func joinCodes[T ~string](codes []T) string {
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type tiersResponse struct {
	Tiers []table.TierView `json:"tiers"`
}

type statusesResponse struct {
	Statuses []table.StatusView `json:"statuses"`
}

type progressResponse struct {
	CurrentTier    string  `json:"currentTier"`
	CurrentLabel   string  `json:"currentLabel"`
	NextTier       *string `json:"nextTier"`
	NextLabel      *string `json:"nextLabel"`
	TotalSpending  int64   `json:"totalSpending"`
	SpendingToNext int64   `json:"spendingToNext"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	BuildMode string    `json:"buildMode"`
	Timestamp time.Time `json:"timestamp"`
	StartedAt time.Time `json:"startedAt"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// writeCacheableJSON writes payload with an ETag derived from its encoding and
// answers 304 when the client already holds that version.
func writeCacheableJSON(w http.ResponseWriter, r *http.Request, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	sum := sha256.Sum256(body)
	etag := `"` + hex.EncodeToString(sum[:8]) + `"`

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", cacheControl)
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(append(body, '\n'))
}

// etagMatches reports whether an If-None-Match header value names etag.
// Weak validators compare equal to their strong form.
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
