package iconset

// StyleProfile names a visual style and carries the descriptor text appended
// to every prompt generated under it.
type StyleProfile struct {
	Name       string
	Descriptor string
}

// StyleProfiles maps the enumerated style identifiers to their profiles.
// Initialized once at startup and never mutated.
var StyleProfiles = map[int]StyleProfile{
	1: {Name: "flat minimal", Descriptor: "flat minimal design, simple geometric shapes, solid colors"},
	2: {Name: "3d render", Descriptor: "soft 3D render, subtle shadows, rounded volumes, studio lighting"},
	3: {Name: "line art", Descriptor: "clean line art, uniform stroke width, outlined shapes, no fill"},
	4: {Name: "gradient glass", Descriptor: "modern glassmorphism, smooth gradients, translucent layers"},
	5: {Name: "pixel art", Descriptor: "retro pixel art, crisp pixels, limited palette"},
}

// VariationDescriptors distinguish the four icons within one batch. Order is
// load-bearing: entry i belongs to task index i.
var VariationDescriptors = [VariationCount]string{
	"front-facing view, perfectly centered composition",
	"slight three-quarter angle, centered composition",
	"top-down perspective, centered composition",
	"isometric perspective, centered composition",
}
