package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"peselgate/internal/platform/middleware"
	dErrors "peselgate/pkg/domain-errors"
	audit "peselgate/pkg/platform/audit"
	"peselgate/pkg/platform/httputil"
	"peselgate/pkg/requestcontext"
)

const defaultAuditLimit = 50

// AuditLister exposes the recent audit trail to the admin surface.
type AuditLister interface {
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
	Emit(ctx context.Context, event audit.Event) error
}

// AdminHandler serves operator-only endpoints behind bearer auth.
type AdminHandler struct {
	audit     AuditLister
	validator middleware.TokenValidator
	logger    *slog.Logger
}

func NewAdminHandler(auditLister AuditLister, validator middleware.TokenValidator, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{audit: auditLister, validator: validator, logger: logger}
}

// Register registers the admin routes with the chi router.
func (h *AdminHandler) Register(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.validator, h.logger))
		r.Get("/audit", h.handleListAudit)
	})
}

type auditListResponse struct {
	Events []auditEventView `json:"events"`
}

type auditEventView struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Timestamp   string `json:"timestamp"`
	Action      string `json:"action"`
	Outcome     string `json:"outcome,omitempty"`
	Reason      string `json:"reason,omitempty"`
	SubjectHash string `json:"subject_hash,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
	ClientIP    string `json:"client_ip,omitempty"`
	UserAgent   string `json:"user_agent,omitempty"`
}

func (h *AdminHandler) handleListAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	events, err := h.audit.ListRecent(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list audit events",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events"))
		return
	}

	_ = h.audit.Emit(ctx, audit.Event{
		Action:    audit.ActionAuditListQueried,
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
	})

	views := make([]auditEventView, 0, len(events))
	for _, event := range events {
		views = append(views, auditEventView{
			ID:          event.ID,
			Category:    string(event.Category),
			Timestamp:   event.Timestamp.UTC().Format(time.RFC3339Nano),
			Action:      event.Action,
			Outcome:     event.Outcome,
			Reason:      event.Reason,
			SubjectHash: event.SubjectHash,
			RequestID:   event.RequestID,
			ClientIP:    event.ClientIP,
			UserAgent:   event.UserAgent,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, auditListResponse{Events: views})
}
