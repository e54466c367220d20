package out

import (
	"context"

	"mapty/internal/modules/workout/dto"
)

// MapLoader initialises the map view centred on a position.
type MapLoader interface {
	LoadMap(center dto.LatLng, zoom int) (MapWidget, error)
}

type MapWidget interface {
	AddTileLayer(urlTemplate, attribution string)
	OnClick(handler func(at dto.LatLng))
	AddMarker(at dto.LatLng, popup dto.PopupOptions, content string)
	PanTo(at dto.LatLng, zoom int, opts dto.PanOptions)
}

type Locator interface {
	CurrentPosition(ctx context.Context) (dto.LatLng, error)
}

// SnapshotStore is a string key-value store with local-storage semantics.
type SnapshotStore interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
	Close() error
}

type FormView interface {
	Show()
	Hide()
	FocusDistance()
	ToggleMetricRows()
	Values() dto.FormValues
	OnSubmit(handler func())
	OnTypeChange(handler func())
}

type ListView interface {
	InsertAfterForm(entry dto.Entry)
	OnSelect(handler func(id string))
}

type Alerter interface {
	Alert(message string)
}

type Reloader interface {
	Reload()
}
