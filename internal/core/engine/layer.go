package engine

import "github.com/zeusync/hotreload/internal/core/project"

// Color is an RGB color with 0-255 channels.
type Color struct {
	R, G, B int
}

// Layer is a named drawing layer of a scene. Whether it is a lighting layer and its
// rendering type are fixed at creation.
type Layer struct {
	name                  string
	visible               bool
	lighting              bool
	followBaseLayerCamera bool
	ambientLight          Color
	renderingType         string
	zIndex                int
	effects               *EffectSet
}

func newLayer(data project.LayerData, zIndex int) *Layer {
	return &Layer{
		name:                  data.Name,
		visible:               data.Visibility,
		lighting:              data.IsLightingLayer,
		followBaseLayerCamera: data.FollowBaseLayerCamera,
		ambientLight:          Color{R: data.AmbientLightColorR, G: data.AmbientLightColorG, B: data.AmbientLightColorB},
		renderingType:         data.RenderingType,
		zIndex:                zIndex,
		effects:               NewEffectSet(data.Effects),
	}
}

func (l *Layer) Name() string                    { return l.name }
func (l *Layer) IsVisible() bool                 { return l.visible }
func (l *Layer) SetVisible(v bool)               { l.visible = v }
func (l *Layer) IsLightingLayer() bool           { return l.lighting }
func (l *Layer) RenderingType() string           { return l.renderingType }
func (l *Layer) FollowsBaseLayerCamera() bool    { return l.followBaseLayerCamera }
func (l *Layer) SetFollowBaseLayerCamera(v bool) { l.followBaseLayerCamera = v }
func (l *Layer) AmbientLightColor() Color        { return l.ambientLight }
func (l *Layer) SetAmbientLightColor(c Color)    { l.ambientLight = c }
func (l *Layer) ZIndex() int                     { return l.zIndex }
func (l *Layer) SetZIndex(z int)                 { l.zIndex = z }
func (l *Layer) Effects() *EffectSet             { return l.effects }
