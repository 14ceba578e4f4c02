package httputil

import (
	"encoding/json"

	"github.com/valyala/fasthttp"
)

// ErrorResponse is the error body returned on 4xx/5xx responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)

	body, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBody([]byte(`{"error":"failed to marshal response"}`))
		return
	}

	ctx.SetBody(body)
}

// WriteOK writes a 200 JSON response
func WriteOK(ctx *fasthttp.RequestCtx, data interface{}) {
	WriteJSON(ctx, fasthttp.StatusOK, data)
}

// WriteCreated writes a 201 JSON response
func WriteCreated(ctx *fasthttp.RequestCtx, data interface{}) {
	WriteJSON(ctx, fasthttp.StatusCreated, data)
}

// WriteError writes an error JSON response
func WriteError(ctx *fasthttp.RequestCtx, status int, message string) {
	WriteJSON(ctx, status, ErrorResponse{Error: message})
}

// WriteNoContent writes an empty 204 response
func WriteNoContent(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusNoContent)
}
