package out

import (
	hclog "github.com/hashicorp/go-hclog"

	"mapty/internal/modules/workout/dto"
	workoutout "mapty/internal/modules/workout/port/out"
)

// The headless adapters back the controller for non-interactive commands:
// nothing is drawn, alerts go to the log.

type HeadlessMap struct{}

func (HeadlessMap) LoadMap(dto.LatLng, int) (workoutout.MapWidget, error) { return HeadlessMap{}, nil }
func (HeadlessMap) AddTileLayer(string, string)                           {}
func (HeadlessMap) OnClick(func(dto.LatLng))                              {}
func (HeadlessMap) AddMarker(dto.LatLng, dto.PopupOptions, string)        {}
func (HeadlessMap) PanTo(dto.LatLng, int, dto.PanOptions)                 {}

type HeadlessForm struct{}

func (HeadlessForm) Show()                  {}
func (HeadlessForm) Hide()                  {}
func (HeadlessForm) FocusDistance()         {}
func (HeadlessForm) ToggleMetricRows()      {}
func (HeadlessForm) Values() dto.FormValues { return dto.FormValues{} }
func (HeadlessForm) OnSubmit(func())        {}
func (HeadlessForm) OnTypeChange(func())    {}

type HeadlessList struct{}

func (HeadlessList) InsertAfterForm(dto.Entry) {}
func (HeadlessList) OnSelect(func(string))     {}

type LogAlerter struct {
	logger hclog.Logger
}

func NewLogAlerter(logger hclog.Logger) workoutout.Alerter {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return LogAlerter{logger: logger}
}

func (a LogAlerter) Alert(message string) {
	a.logger.Warn(message)
}

type NoopReloader struct{}

func (NoopReloader) Reload() {}
