package domain

import (
	"context"
	"errors"
	"fmt"
)

// OrderRow is one line of the admin orders table.
type OrderRow struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Customer      string `json:"customer"`
	Date          string `json:"date"`
	Amount        string `json:"amount"`
	PaymentStatus string `json:"paymentStatus"`
	Fulfillment   string `json:"fulfillment"`
}

// Artifact is one rendered invoice ready for download.
type Artifact struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}

// ExportSummary reports the outcome of a batch export. Archive is set
// when the successes were packaged into a zip; Files carries the
// individual artifacts otherwise.
type ExportSummary struct {
	Succeeded    int        `json:"succeeded"`
	Failed       int        `json:"failed"`
	FailedOrders []string   `json:"failedOrders,omitempty"`
	Archive      *Artifact  `json:"archive,omitempty"`
	Files        []Artifact `json:"files,omitempty"`
}

// SessionInfo is a live preview handle returned to the UI.
type SessionInfo struct {
	ID       string
	Document Document
	Artifact Artifact
}

// Service exposes the invoice operations consumed by the HTTP surface.
type Service interface {
	ListOrders(ctx context.Context) ([]OrderRow, error)
	Generate(ctx context.Context, orderName string, override *Document) (*Document, error)
	View(ctx context.Context, orderName string) (SessionInfo, error)
	Download(ctx context.Context, orderName string, override *Document) (Artifact, error)
	ExportSelection(ctx context.Context, orderNames []string) (ExportSummary, error)

	UpdatePreview(ctx context.Context, sessionID, path, value string) (Document, error)
	CommitPreview(ctx context.Context, sessionID string) (SessionInfo, error)
	ClosePreview(ctx context.Context, sessionID string)
}

var (
	ErrOrderNotFound   = errors.New("order_not_found")
	ErrInvalidOrder    = errors.New("invalid_order")
	ErrSessionNotFound = errors.New("preview_session_not_found")
	ErrUnknownField    = errors.New("unknown_preview_field")
)

// ValidationError marks a required order field the assembler could not
// accept. It unwraps to ErrInvalidOrder.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid_order: %s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidOrder }
