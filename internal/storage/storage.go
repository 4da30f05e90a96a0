// Package storage persists finished and in-flight interview sessions. The
// session loop treats persistence as best-effort: every call may fail or be
// backed by the no-op store without affecting the interview itself.
package storage

import "github.com/sharvarianand/intervuex/internal/interview"

// Store is the persistence collaborator contract.
type Store interface {
	CreateSession(id string, mode interview.Mode, persona string) error
	AppendTurn(sessionID string, turn interview.Turn) error
	StoreReport(sessionID string, report interview.Report) error
	Close() error
}

// Noop is the degraded, non-durable mode used when no database is
// configured or the configured one failed to open.
type Noop struct{}

func (Noop) CreateSession(string, interview.Mode, string) error { return nil }
func (Noop) AppendTurn(string, interview.Turn) error            { return nil }
func (Noop) StoreReport(string, interview.Report) error         { return nil }
func (Noop) Close() error                                       { return nil }
