package storage

import (
	"context"

	"github.com/spacesedan/personaforge/internal/models"
)

// Store persists a completed persona and returns an artifact reference the
// status consumer can hand out.
type Store interface {
	SavePersona(ctx context.Context, record models.PersonaRecord) (string, error)
}
