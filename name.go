package n64tex

import (
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/bodgit/n64tex/texture"
)

const paletteExt = ".tlut"

// Textures may be named <name>.<width>x<height>.<format>
var namePattern = regexp.MustCompile(`\.([0-9]+)x([0-9]+)\.([A-Za-z0-9]+)$`)

// ParseName extracts the format and dimensions from a filename following
// the <name>.<width>x<height>.<format> convention, for example
// "logo.32x16.rgba16".
func ParseName(path string) (f texture.Format, width, height int, ok bool) {
	m := namePattern.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return
	}

	var err error
	if f, err = texture.ParseFormat(m[3]); err != nil {
		return
	}
	if width, err = strconv.Atoi(m[1]); err != nil || width == 0 {
		return
	}
	if height, err = strconv.Atoi(m[2]); err != nil || height == 0 {
		return
	}

	return f, width, height, true
}

// OutputName returns the default output filename for input. PNG images get
// the extension of the target format appended, textures get ".png".
func OutputName(input string, isPNG bool, f texture.Format) string {
	if isPNG {
		return input + "." + f.String()
	}
	return input + ".png"
}
