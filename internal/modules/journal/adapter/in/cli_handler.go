package in

import (
	"context"

	"mapty/internal/modules/journal/dto"
	journalin "mapty/internal/modules/journal/port/in"
)

type CLIHandler struct {
	usecase journalin.Usecase
}

func NewCLIHandler(usecase journalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context, id string) (dto.CardOutput, error) {
	return h.usecase.Show(ctx, id)
}

func (h CLIHandler) ExportGPX(ctx context.Context, path string) (dto.ExportOutput, error) {
	return h.usecase.ExportGPX(ctx, dto.ExportGPXInput{Path: path})
}

func (h CLIHandler) ExportNotes(ctx context.Context, dir string) (dto.ExportOutput, error) {
	return h.usecase.ExportNotes(ctx, dto.ExportNotesInput{Dir: dir})
}
