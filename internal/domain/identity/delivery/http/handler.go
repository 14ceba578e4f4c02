package http

import (
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/iotaledger/e-commerce-tools/internal/domain/identity/deps"
	"github.com/iotaledger/e-commerce-tools/internal/domain/identity/entities"
	pkgerrors "github.com/iotaledger/e-commerce-tools/pkg/errors"
	"github.com/iotaledger/e-commerce-tools/pkg/httputil"
)

const defaultSearchLimit = 100

// IdentityHandler handles identity registry HTTP requests
type IdentityHandler struct {
	useCase deps.IdentityService
	mapper  *pkgerrors.Mapper
	logger  zerolog.Logger
}

// NewIdentityHandler creates a new identity handler
func NewIdentityHandler(useCase deps.IdentityService, mapper *pkgerrors.Mapper, logger zerolog.Logger) *IdentityHandler {
	return &IdentityHandler{
		useCase: useCase,
		mapper:  mapper,
		logger:  logger.With().Str("handler", "identity").Logger(),
	}
}

// AddIdentity handles POST /api/v1/identities. Registration is public:
// a token can only be issued to an identity that is already registered.
func (h *IdentityHandler) AddIdentity(ctx *fasthttp.RequestCtx) {
	var identity entities.Identity
	if err := json.Unmarshal(ctx.PostBody(), &identity); err != nil {
		httputil.WriteError(ctx, fasthttp.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.useCase.AddIdentity(ctx, &identity); err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteCreated(ctx, &identity)
}

// GetIdentity handles GET /api/v1/identities/{identityId}
func (h *IdentityHandler) GetIdentity(ctx *fasthttp.RequestCtx) {
	identityID, _ := ctx.UserValue("identityId").(string)

	identity, err := h.useCase.GetIdentity(ctx, identityID)
	if err != nil {
		h.handleError(ctx, err)
		return
	}
	if identity == nil {
		httputil.WriteError(ctx, fasthttp.StatusNotFound, "identity does not exist")
		return
	}

	httputil.WriteOK(ctx, identity)
}

// UpdateIdentity handles PUT /api/v1/identities/{identityId}
func (h *IdentityHandler) UpdateIdentity(ctx *fasthttp.RequestCtx) {
	identityID, _ := ctx.UserValue("identityId").(string)
	actingIdentityID := httputil.CallerIdentity(ctx)

	var identity entities.Identity
	if err := json.Unmarshal(ctx.PostBody(), &identity); err != nil {
		httputil.WriteError(ctx, fasthttp.StatusBadRequest, "invalid request body")
		return
	}
	identity.IdentityID = identityID

	if err := h.useCase.UpdateIdentity(ctx, &identity, actingIdentityID); err != nil {
		h.handleError(ctx, err)
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
}

// DeleteIdentity handles DELETE /api/v1/identities/{identityId}
func (h *IdentityHandler) DeleteIdentity(ctx *fasthttp.RequestCtx) {
	identityID, _ := ctx.UserValue("identityId").(string)
	actingIdentityID := httputil.CallerIdentity(ctx)

	if err := h.useCase.DeleteIdentity(ctx, identityID, actingIdentityID); err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteNoContent(ctx)
}

// SearchIdentities handles GET /api/v1/identities/search. Supports
// username, limit and index query parameters.
func (h *IdentityHandler) SearchIdentities(ctx *fasthttp.RequestCtx) {
	username := string(ctx.QueryArgs().Peek("username"))

	limit := defaultSearchLimit
	if raw := ctx.QueryArgs().Peek("limit"); len(raw) > 0 {
		parsed, err := strconv.Atoi(string(raw))
		if err != nil || parsed < 0 {
			httputil.WriteError(ctx, fasthttp.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	offset := 0
	if raw := ctx.QueryArgs().Peek("index"); len(raw) > 0 {
		parsed, err := strconv.Atoi(string(raw))
		if err != nil || parsed < 0 {
			httputil.WriteError(ctx, fasthttp.StatusBadRequest, "index must be a positive integer")
			return
		}
		offset = parsed * limit
	}

	identities, err := h.useCase.SearchIdentities(ctx, username, limit, offset)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteOK(ctx, identities)
}

// handleError maps domain errors to HTTP responses
func (h *IdentityHandler) handleError(ctx *fasthttp.RequestCtx, err error) {
	status, message := h.mapper.MapErrorToHTTP(err)
	httputil.WriteError(ctx, status, message)
}
