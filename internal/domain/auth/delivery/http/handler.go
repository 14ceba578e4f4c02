package http

import (
	"encoding/json"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/iotaledger/e-commerce-tools/internal/domain/auth/deps"
	"github.com/iotaledger/e-commerce-tools/internal/domain/auth/dto"
	pkgerrors "github.com/iotaledger/e-commerce-tools/pkg/errors"
	"github.com/iotaledger/e-commerce-tools/pkg/httputil"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	useCase deps.AuthService
	mapper  *pkgerrors.Mapper
	logger  zerolog.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(useCase deps.AuthService, mapper *pkgerrors.Mapper, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		useCase: useCase,
		mapper:  mapper,
		logger:  logger.With().Str("handler", "auth").Logger(),
	}
}

// GetNonce handles GET /api/v1/authentication/prove-ownership/{identityId}
func (h *AuthHandler) GetNonce(ctx *fasthttp.RequestCtx) {
	identityID, _ := ctx.UserValue("identityId").(string)

	nonce, err := h.useCase.GetNonce(ctx, identityID)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteOK(ctx, dto.NonceResponse{Nonce: nonce})
}

// ProveOwnership handles POST /api/v1/authentication/prove-ownership/{identityId}
func (h *AuthHandler) ProveOwnership(ctx *fasthttp.RequestCtx) {
	identityID, _ := ctx.UserValue("identityId").(string)

	var req dto.ProveOwnershipBody
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		httputil.WriteError(ctx, fasthttp.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.useCase.ProveOwnership(ctx, identityID, req.SignedNonce)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteOK(ctx, dto.ProveOwnershipResponse{JWT: token})
}

// handleError maps domain errors to HTTP responses
func (h *AuthHandler) handleError(ctx *fasthttp.RequestCtx, err error) {
	status, message := h.mapper.MapErrorToHTTP(err)
	httputil.WriteError(ctx, status, message)
}
