package http

import (
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/iotaledger/e-commerce-tools/internal/domain/channelinfo/deps"
	"github.com/iotaledger/e-commerce-tools/internal/domain/channelinfo/entities"
	pkgerrors "github.com/iotaledger/e-commerce-tools/pkg/errors"
	"github.com/iotaledger/e-commerce-tools/pkg/httputil"
)

const defaultSearchLimit = 100

// ChannelInfoHandler handles channel info HTTP requests
type ChannelInfoHandler struct {
	useCase deps.ChannelInfoService
	mapper  *pkgerrors.Mapper
	logger  zerolog.Logger
}

// NewChannelInfoHandler creates a new channel info handler
func NewChannelInfoHandler(useCase deps.ChannelInfoService, mapper *pkgerrors.Mapper, logger zerolog.Logger) *ChannelInfoHandler {
	return &ChannelInfoHandler{
		useCase: useCase,
		mapper:  mapper,
		logger:  logger.With().Str("handler", "channel_info").Logger(),
	}
}

// GetChannelInfo handles GET /api/v1/channel-info/channel/{channelAddress}
func (h *ChannelInfoHandler) GetChannelInfo(ctx *fasthttp.RequestCtx) {
	channelAddress, _ := ctx.UserValue("channelAddress").(string)

	info, err := h.useCase.GetChannelInfo(ctx, channelAddress)
	if err != nil {
		h.handleError(ctx, err)
		return
	}
	if info == nil {
		httputil.WriteError(ctx, fasthttp.StatusNotFound, "channel does not exist")
		return
	}

	httputil.WriteOK(ctx, info)
}

// AddChannelInfo handles POST /api/v1/channel-info/channel/{channelAddress}.
// The authenticated caller becomes the channel author.
func (h *ChannelInfoHandler) AddChannelInfo(ctx *fasthttp.RequestCtx) {
	channelAddress, _ := ctx.UserValue("channelAddress").(string)

	var info entities.ChannelInfo
	if len(ctx.PostBody()) > 0 {
		if err := json.Unmarshal(ctx.PostBody(), &info); err != nil {
			httputil.WriteError(ctx, fasthttp.StatusBadRequest, "invalid request body")
			return
		}
	}
	info.ChannelAddress = channelAddress
	info.AuthorID = httputil.CallerIdentity(ctx)

	if err := h.useCase.AddChannelInfo(ctx, &info); err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteCreated(ctx, &info)
}

// UpdateChannelInfo handles PUT /api/v1/channel-info/channel/{channelAddress}
func (h *ChannelInfoHandler) UpdateChannelInfo(ctx *fasthttp.RequestCtx) {
	channelAddress, _ := ctx.UserValue("channelAddress").(string)
	actingIdentityID := httputil.CallerIdentity(ctx)

	var info entities.ChannelInfo
	if err := json.Unmarshal(ctx.PostBody(), &info); err != nil {
		httputil.WriteError(ctx, fasthttp.StatusBadRequest, "invalid request body")
		return
	}
	info.ChannelAddress = channelAddress

	if err := h.useCase.UpdateChannelInfo(ctx, &info, actingIdentityID); err != nil {
		h.handleError(ctx, err)
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
}

// DeleteChannelInfo handles DELETE /api/v1/channel-info/channel/{channelAddress}
func (h *ChannelInfoHandler) DeleteChannelInfo(ctx *fasthttp.RequestCtx) {
	channelAddress, _ := ctx.UserValue("channelAddress").(string)
	actingIdentityID := httputil.CallerIdentity(ctx)

	if err := h.useCase.DeleteChannelInfo(ctx, channelAddress, actingIdentityID); err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteNoContent(ctx)
}

// SearchChannelInfo handles GET /api/v1/channel-info/search. Supports
// author-id, limit and index query parameters.
func (h *ChannelInfoHandler) SearchChannelInfo(ctx *fasthttp.RequestCtx) {
	authorID := string(ctx.QueryArgs().Peek("author-id"))

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

	channels, err := h.useCase.SearchChannelInfo(ctx, authorID, limit, offset)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteOK(ctx, channels)
}

// handleError maps domain errors to HTTP responses
func (h *ChannelInfoHandler) handleError(ctx *fasthttp.RequestCtx, err error) {
	status, message := h.mapper.MapErrorToHTTP(err)
	httputil.WriteError(ctx, status, message)
}
