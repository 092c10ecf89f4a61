package models

import "encoding/json"

// PluginData is the plugin_data.json sidecar stored next to the study
type PluginData struct {
	// General holds informational metadata about who wrote the project
	General General `json:"general"`

	// Groups is owned by the groups model and stored verbatim
	Groups json.RawMessage `json:"groups"`

	// Application is only present when an extension was attached at save time
	Application *ApplicationData `json:"application,omitempty"`
}

// General is recorded on save and logged on open; it never blocks loading
type General struct {
	// PluginVersion is the version of the plugin that wrote the project
	PluginVersion string `json:"version_plugin"`

	// SalomeVersion is the version of the host platform that wrote the study
	SalomeVersion string `json:"version_salome"`

	// CreationTime is a human-readable local timestamp
	CreationTime string `json:"creation_time"`

	// OperatingSystem is the OS tag of the writer (e.g. "linux")
	OperatingSystem string `json:"operating_system"`
}

// ApplicationData identifies the extension to rebuild and its opaque state
type ApplicationData struct {
	// Module is the registry identifier of the extension factory
	Module string `json:"application_module"`

	// Data is owned by the extension and handed back to it unchanged
	Data json.RawMessage `json:"application_data"`
}

// HasApplication reports whether an extension section is present
func (p *PluginData) HasApplication() bool {
	return p.Application != nil
}
