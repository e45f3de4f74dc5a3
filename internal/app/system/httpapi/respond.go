// Package httpapi defines the JSON response envelope shared by every API
// endpoint, and the helpers handlers use to write it.
//
// Every response has the shape
//
//	{ "success": bool, "data"?: ..., "error"?: "...",
//	  "errors"?: [{"field","message"}], "count"?: n, "pagination"?: {...} }
//
// Clients render a single human-readable message per error envelope; raw
// storage error text must never reach them. Handlers log the underlying
// error server-side and send the generic message instead.
package httpapi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// FieldError is one violated field in a validation failure. Validation
// responses carry every violated field, not just the first.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PageInfo mirrors the pagination block of list responses. Next/Prev are
// present only when the corresponding page exists.
type PageInfo struct {
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
	Total int64    `json:"total"`
	Next  *PageRef `json:"next,omitempty"`
	Prev  *PageRef `json:"prev,omitempty"`
}

// PageRef points at an adjacent page.
type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// HasNext reports whether a following page exists.
func (p PageInfo) HasNext() bool { return p.Next != nil }

// HasPrev reports whether a preceding page exists.
func (p PageInfo) HasPrev() bool { return p.Prev != nil }

// NewPageInfo computes pagination metadata for an offset-paged list.
func NewPageInfo(page, limit int, total int64) PageInfo {
	info := PageInfo{Page: page, Limit: limit, Total: total}
	if int64(page*limit) < total {
		info.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		info.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return info
}

// envelope is the wire shape of every response.
type envelope struct {
	Success    bool         `json:"success"`
	Data       any          `json:"data,omitempty"`
	Error      string       `json:"error,omitempty"`
	Errors     []FieldError `json:"errors,omitempty"`
	Count      *int         `json:"count,omitempty"`
	Pagination *PageInfo    `json:"pagination,omitempty"`
	Token      string       `json:"token,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("encode response failed", zap.Error(err))
	}
}

// OK writes a 200 success envelope with data.
func OK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

// Created writes a 201 success envelope with data.
func Created(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: data})
}

// OKList writes a 200 success envelope with a count matching the number of
// returned items.
func OKList(w http.ResponseWriter, data any, count int) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Count: &count})
}

// OKPage writes a 200 success envelope for a paginated list. Count is the
// number of items on this page; pagination carries the total and the
// next/prev references.
func OKPage(w http.ResponseWriter, data any, count int, page PageInfo) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Count: &count, Pagination: &page})
}

// OKToken writes a 200 login envelope carrying the session token alongside
// the group data.
func OKToken(w http.ResponseWriter, token string, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Token: token, Data: data})
}

// ValidationFailed writes a 400 envelope listing every violated field.
func ValidationFailed(w http.ResponseWriter, errs []FieldError) {
	writeJSON(w, http.StatusBadRequest, envelope{
		Success: false,
		Error:   "Validation failed",
		Errors:  errs,
	})
}

// BadRequest writes a 400 envelope with a single message.
func BadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: msg})
}

// Unauthorized writes a 401 envelope. Used both for bad credentials and for
// missing/unknown session references.
func Unauthorized(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusUnauthorized, envelope{Success: false, Error: msg})
}

// Forbidden writes a 403 envelope for ownership mismatches.
func Forbidden(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusForbidden, envelope{Success: false, Error: msg})
}

// NotFound writes a 404 envelope.
func NotFound(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusNotFound, envelope{Success: false, Error: msg})
}

// ServerError writes an opaque 500 envelope. The causing error is logged by
// the caller, never echoed to the client.
func ServerError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, envelope{Success: false, Error: "Server error"})
}
