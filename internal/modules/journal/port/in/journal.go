package in

import (
	"context"

	"mapty/internal/modules/journal/dto"
)

type Usecase interface {
	Show(ctx context.Context, id string) (dto.CardOutput, error)
	ExportGPX(ctx context.Context, input dto.ExportGPXInput) (dto.ExportOutput, error)
	ExportNotes(ctx context.Context, input dto.ExportNotesInput) (dto.ExportOutput, error)
}
