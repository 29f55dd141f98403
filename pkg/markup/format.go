package markup

import "fmt"

// Format identifies one of the fixed output representations of a plot.
type Format string

const (
	// FormatMPLD3 emits an interactive script+markup fragment. The identifier
	// is kept for compatibility with existing templates and settings.
	FormatMPLD3 Format = "mpld3"
	// FormatSVG emits inline vector markup.
	FormatSVG Format = "svg"
	// FormatPNG emits a base64 encoded raster image.
	FormatPNG Format = "png"
)

// DefaultFormat is used when neither the caller nor the settings pick one.
const DefaultFormat = FormatMPLD3

var formats = []Format{FormatMPLD3, FormatSVG, FormatPNG}

// Formats returns the allow-list in its canonical order.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat performs the membership check against Formats. Matching is
// exact; "PNG" is not a valid format.
func ParseFormat(value string) (Format, error) {
	for _, format := range formats {
		if string(format) == value {
			return format, nil
		}
	}
	return "", fmt.Errorf("markup: %w: %q (available: %v)", ErrInvalidFormat, value, formats)
}

// Valid reports whether f belongs to the allow-list.
func (f Format) Valid() bool {
	_, err := ParseFormat(string(f))
	return err == nil
}

func (f Format) String() string {
	return string(f)
}
