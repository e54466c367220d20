package usecase

import (
	"context"

	"mapty/internal/modules/journal/dto"
	journalin "mapty/internal/modules/journal/port/in"
	"mapty/internal/modules/journal/service"
)

type Interactor struct {
	svc *service.JournalService
}

func NewInteractor(svc *service.JournalService) journalin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Show(ctx context.Context, id string) (dto.CardOutput, error) {
	e, err := i.svc.Find(ctx, id)
	if err != nil {
		return dto.CardOutput{}, err
	}
	return dto.CardOutput{ID: e.ID, Title: e.Title, Markdown: service.Card(e)}, nil
}

func (i *Interactor) ExportGPX(ctx context.Context, input dto.ExportGPXInput) (dto.ExportOutput, error) {
	n, err := i.svc.ExportGPX(ctx, input.Path)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{Count: n, Paths: []string{input.Path}}, nil
}

func (i *Interactor) ExportNotes(ctx context.Context, input dto.ExportNotesInput) (dto.ExportOutput, error) {
	paths, err := i.svc.ExportNotes(ctx, input.Dir)
	if err != nil {
		return dto.ExportOutput{Count: len(paths), Paths: paths}, err
	}
	return dto.ExportOutput{Count: len(paths), Paths: paths}, nil
}
