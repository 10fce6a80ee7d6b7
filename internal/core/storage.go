package core

import "context"

type RecordStore interface {
	Append(ctx context.Context, user UserID, rec Interaction) error
	Clear(ctx context.Context, user UserID) error
	Get(ctx context.Context, user UserID) ([]Interaction, error)
	Count(ctx context.Context, user UserID) int
}
