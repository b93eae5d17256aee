package images

import (
	"fmt"

	"photoshare/internal/domain"
)

// Crop modes and artistic effects supported by the engine. Anything
// outside these sets never leaves the process.
var cropModes = map[string]bool{
	"fill":  true,
	"fit":   true,
	"scale": true,
	"crop":  true,
	"thumb": true,
	"pad":   true,
	"limit": true,
}

var effects = map[string]bool{
	"al_dente":  true,
	"athena":    true,
	"audrey":    true,
	"aurora":    true,
	"frost":     true,
	"hokusai":   true,
	"incognito": true,
	"peacock":   true,
	"primavera": true,
	"quartz":    true,
	"red_rock":  true,
	"sizzle":    true,
	"sonnet":    true,
	"ukulele":   true,
	"zorro":     true,
}

// TransformDescriptor is the validated, canonical form of a crop or
// effect request, ready to be serialized for the engine.
type TransformDescriptor struct {
	Kind   domain.TransformKind
	Width  int
	Height int
	Mode   string
	Effect string
}

func BuildCrop(width, height int, mode string) (TransformDescriptor, error) {
	if width <= 0 || height <= 0 {
		return TransformDescriptor{}, ErrInvalidTransform
	}
	if !cropModes[mode] {
		return TransformDescriptor{}, ErrInvalidTransform
	}
	return TransformDescriptor{
		Kind:   domain.TransformCrop,
		Width:  width,
		Height: height,
		Mode:   mode,
	}, nil
}

func BuildEffect(name string) (TransformDescriptor, error) {
	if !effects[name] {
		return TransformDescriptor{}, ErrInvalidTransform
	}
	return TransformDescriptor{
		Kind:   domain.TransformEffect,
		Effect: name,
	}, nil
}

// Transformation renders the descriptor in the engine's URL-parameter
// syntax, e.g. "c_fill,w_400,h_300" or "e_art:zorro".
func (d TransformDescriptor) Transformation() string {
	if d.Kind == domain.TransformCrop {
		return fmt.Sprintf("c_%s,w_%d,h_%d", d.Mode, d.Width, d.Height)
	}
	return fmt.Sprintf("e_art:%s", d.Effect)
}
