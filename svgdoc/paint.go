package svgdoc

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// ParseColor converts a CSS colour string. "none" and "transparent" map to a
// fully transparent colour.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "none", "transparent":
		return color.NRGBA{}, nil
	case "":
		return color.NRGBA{}, fmt.Errorf("svgdoc: empty color")
	}
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("svgdoc: parse color %q: %w", s, err)
	}
	r, g, b, a := c.RGBA255()
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// Fill returns the declared fill of e: the fill declaration in its style
// attribute, then its fill attribute, then the nearest ancestor's. The empty
// string means no fill was declared anywhere.
func (e *Element) Fill() string {
	for el := e; el != nil; el = el.Parent {
		if v := styleProperty(el, "fill"); v != "" {
			return v
		}
		if v, ok := el.Attr("fill"); ok && strings.TrimSpace(v) != "" && v != "inherit" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// ResolveFill parses e's fill, falling back to def when it is missing or
// unparsable.
func (e *Element) ResolveFill(def color.NRGBA) color.NRGBA {
	v := e.Fill()
	if v == "" {
		return def
	}
	c, err := ParseColor(v)
	if err != nil {
		return def
	}
	return c
}

func styleProperty(e *Element, prop string) string {
	style, ok := e.Attr("style")
	if !ok {
		return ""
	}
	for _, decl := range strings.Split(style, ";") {
		kv := strings.SplitN(decl, ":", 2)
		if len(kv) != 2 {
			continue
		}
		if strings.TrimSpace(kv[0]) == prop {
			v := strings.TrimSpace(kv[1])
			if v == "inherit" {
				return ""
			}
			return v
		}
	}
	return ""
}

// Size reads the width and height attributes as plain or px lengths. ok is
// false when either is missing, relative or not positive.
func (e *Element) Size() (w, h float64, ok bool) {
	w, okW := parseLength(e, "width")
	h, okH := parseLength(e, "height")
	if !okW || !okH {
		return 0, 0, false
	}
	return w, h, true
}

func parseLength(e *Element, name string) (float64, bool) {
	v, ok := e.Attr(name)
	if !ok {
		if sv := styleProperty(e, name); sv != "" {
			v = sv
		} else {
			return 0, false
		}
	}
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return f, true
}
