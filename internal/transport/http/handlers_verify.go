package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"peselgate/internal/verify"
	dErrors "peselgate/pkg/domain-errors"
	"peselgate/pkg/platform/httputil"
	"peselgate/pkg/requestcontext"
)

// VerifyService defines the verification operations the handler needs.
type VerifyService interface {
	Verify(ctx context.Context, input string) (*verify.Result, error)
	VerifyBatch(ctx context.Context, inputs []string) ([]*verify.Result, error)
}

// VerifyHandler serves the public verification endpoints.
type VerifyHandler struct {
	service VerifyService
	logger  *slog.Logger
}

func NewVerifyHandler(service VerifyService, logger *slog.Logger) *VerifyHandler {
	return &VerifyHandler{service: service, logger: logger}
}

// Register registers the verification routes with the chi router.
func (h *VerifyHandler) Register(r chi.Router) {
	r.Post("/verify", h.handleVerify)
	r.Post("/verify/batch", h.handleVerifyBatch)
}

type verifyRequest struct {
	Pesel string `json:"pesel"`
}

type verifyBatchRequest struct {
	Pesels []string `json:"pesels"`
}

type verifyBatchResponse struct {
	Results []*verify.Result `json:"results"`
}

func (h *VerifyHandler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[verifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if err := validatePeselInput(req.Pesel); err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Verify(ctx, req.Pesel)
	if err != nil {
		h.writeServiceError(w, r, "verification failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *VerifyHandler) handleVerifyBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[verifyBatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if len(req.Pesels) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "pesels array must not be empty"))
		return
	}
	if len(req.Pesels) > verify.MaxBatchSize {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "batch exceeds maximum size"))
		return
	}
	for _, input := range req.Pesels {
		if err := validatePeselInput(input); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}

	results, err := h.service.VerifyBatch(ctx, req.Pesels)
	if err != nil {
		h.writeServiceError(w, r, "batch verification failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, verifyBatchResponse{Results: results})
}

func (h *VerifyHandler) writeServiceError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}

// validatePeselInput performs shape checks only; the domain decides
// validity. Keeping the transport strict about shape means malformed
// payloads never reach the service or the audit trail.
func validatePeselInput(input string) error {
	if !govalidator.StringLength(input, "11", "11") {
		return dErrors.New(dErrors.CodeInvalidInput, "pesel must be exactly 11 characters")
	}
	if !govalidator.IsNumeric(input) {
		return dErrors.New(dErrors.CodeInvalidInput, "pesel must contain only digits")
	}
	return nil
}
