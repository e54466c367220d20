package dto

type ExportGPXInput struct {
	Path string
}

type ExportNotesInput struct {
	Dir string
}

type ExportOutput struct {
	Count int
	Paths []string
}

type CardOutput struct {
	ID       string
	Title    string
	Markdown string
}
