package http

import (
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/iotaledger/e-commerce-tools/internal/domain/subscription/deps"
	"github.com/iotaledger/e-commerce-tools/internal/domain/subscription/dto"
	"github.com/iotaledger/e-commerce-tools/internal/domain/subscription/entities"
	pkgerrors "github.com/iotaledger/e-commerce-tools/pkg/errors"
	"github.com/iotaledger/e-commerce-tools/pkg/httputil"
)

// SubscriptionHandler handles subscription HTTP requests
type SubscriptionHandler struct {
	useCase deps.SubscriptionService
	mapper  *pkgerrors.Mapper
	logger  zerolog.Logger
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(useCase deps.SubscriptionService, mapper *pkgerrors.Mapper, logger zerolog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		useCase: useCase,
		mapper:  mapper,
		logger:  logger.With().Str("handler", "subscription").Logger(),
	}
}

// RequestSubscription handles POST /api/v1/subscriptions/request/{channelAddress}
func (h *SubscriptionHandler) RequestSubscription(ctx *fasthttp.RequestCtx) {
	channelAddress, _ := ctx.UserValue("channelAddress").(string)
	identityID := httputil.CallerIdentity(ctx)

	var req dto.RequestSubscriptionBody
	if len(ctx.PostBody()) > 0 {
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			httputil.WriteError(ctx, fasthttp.StatusBadRequest, "invalid request body")
			return
		}
	}

	resp, err := h.useCase.RequestSubscription(ctx, channelAddress, identityID, &req)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteCreated(ctx, resp)
}

// GetSubscriptions handles GET /api/v1/subscriptions/{channelAddress}.
// An optional is-authorized query parameter filters by authorization
// status.
func (h *SubscriptionHandler) GetSubscriptions(ctx *fasthttp.RequestCtx) {
	channelAddress, _ := ctx.UserValue("channelAddress").(string)

	var isAuthorized *bool
	if raw := ctx.QueryArgs().Peek("is-authorized"); len(raw) > 0 {
		parsed, err := strconv.ParseBool(string(raw))
		if err != nil {
			httputil.WriteError(ctx, fasthttp.StatusBadRequest, "is-authorized must be a boolean")
			return
		}
		isAuthorized = &parsed
	}

	subscriptions, err := h.useCase.GetSubscriptions(ctx, channelAddress, isAuthorized)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteOK(ctx, subscriptions)
}

// GetSubscription handles GET /api/v1/subscriptions/{channelAddress}/{identityId}
func (h *SubscriptionHandler) GetSubscription(ctx *fasthttp.RequestCtx) {
	channelAddress, _ := ctx.UserValue("channelAddress").(string)
	identityID, _ := ctx.UserValue("identityId").(string)

	sub, err := h.useCase.GetSubscription(ctx, channelAddress, identityID)
	if err != nil {
		h.handleError(ctx, err)
		return
	}
	if sub == nil {
		httputil.WriteError(ctx, fasthttp.StatusNotFound, "no subscription found")
		return
	}

	httputil.WriteOK(ctx, sub)
}

// AddSubscription handles POST /api/v1/subscriptions/{channelAddress}/{identityId}
func (h *SubscriptionHandler) AddSubscription(ctx *fasthttp.RequestCtx) {
	channelAddress, _ := ctx.UserValue("channelAddress").(string)
	identityID, _ := ctx.UserValue("identityId").(string)

	var sub entities.Subscription
	if err := json.Unmarshal(ctx.PostBody(), &sub); err != nil {
		httputil.WriteError(ctx, fasthttp.StatusBadRequest, "invalid request body")
		return
	}
	sub.ChannelAddress = channelAddress
	sub.IdentityID = identityID

	if err := h.useCase.AddSubscription(ctx, &sub); err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteCreated(ctx, &sub)
}

// UpdateSubscription handles PUT /api/v1/subscriptions/{channelAddress}/{identityId}
func (h *SubscriptionHandler) UpdateSubscription(ctx *fasthttp.RequestCtx) {
	channelAddress, _ := ctx.UserValue("channelAddress").(string)
	identityID, _ := ctx.UserValue("identityId").(string)
	actingIdentityID := httputil.CallerIdentity(ctx)

	var patch dto.SubscriptionPatch
	if err := json.Unmarshal(ctx.PostBody(), &patch); err != nil {
		httputil.WriteError(ctx, fasthttp.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.useCase.UpdateSubscription(ctx, channelAddress, identityID, actingIdentityID, &patch); err != nil {
		h.handleError(ctx, err)
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
}

// DeleteSubscription handles DELETE /api/v1/subscriptions/{channelAddress}/{identityId}
func (h *SubscriptionHandler) DeleteSubscription(ctx *fasthttp.RequestCtx) {
	channelAddress, _ := ctx.UserValue("channelAddress").(string)
	identityID, _ := ctx.UserValue("identityId").(string)
	actingIdentityID := httputil.CallerIdentity(ctx)

	if err := h.useCase.DeleteSubscription(ctx, channelAddress, identityID, actingIdentityID); err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteNoContent(ctx)
}

// handleError maps domain errors to HTTP responses
func (h *SubscriptionHandler) handleError(ctx *fasthttp.RequestCtx, err error) {
	status, message := h.mapper.MapErrorToHTTP(err)
	httputil.WriteError(ctx, status, message)
}
