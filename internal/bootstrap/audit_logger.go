package bootstrap

import "context"

// AuditLog adalah satu entri jejak operasional (bukan log debug).
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
