package bivariate

import (
	"encoding/xml"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Style document layout. Element and attribute names follow the QGIS
// renderer-v2 element written by the bivariate renderer plugin.
type styleDocument struct {
	XMLName        xml.Name            `xml:"renderer-v2"`
	Type           string              `xml:"type,attr"`
	Method         *methodElement      `xml:"classificationMethod"`
	Field1         nameElement         `xml:"field_name_1"`
	Field2         nameElement         `xml:"field_name_2"`
	Ranges1        []rangeElement      `xml:"ranges_1>range_1"`
	Ranges2        []rangeElement      `xml:"ranges_2>range_2"`
	Symbols        []symbolElement     `xml:"symbols>symbol"`
	ExistingLabels *valueElement       `xml:"existing_labels"`
	Ramp           *bivariateRampEntry `xml:"BivariateColorRamp"`
}

type nameElement struct {
	Name string `xml:"name,attr"`
}

type valueElement struct {
	Value string `xml:"value,attr"`
}

type methodElement struct {
	ID          string             `xml:"id,attr"`
	LabelFormat labelFormatElement `xml:"labelFormat"`
}

type labelFormatElement struct {
	Format             string `xml:"format,attr"`
	Precision          string `xml:"labelprecision,attr"`
	TrimTrailingZeroes string `xml:"trimtrailingzeroes,attr"`
}

type rangeElement struct {
	Lower string `xml:"lower,attr"`
	Upper string `xml:"upper,attr"`
	Label string `xml:"label,attr"`
}

type symbolElement struct {
	Color string `xml:"color,attr"`
	Label string `xml:"label,attr"`
}

type bivariateRampEntry struct {
	Type            string             `xml:"type,attr"`
	Name            string             `xml:"name,attr,omitempty"`
	NumberOfClasses string             `xml:"number_of_classes,attr"`
	MixingMethod    string             `xml:"color_mixing_method,attr,omitempty"`
	ColorRamps      []colorRampElement `xml:"colorramp"`
	Colors          []valueElement     `xml:"colors>color"`
}

type colorRampElement struct {
	Name    string        `xml:"name,attr"`
	Type    string        `xml:"type,attr"`
	Options optionElement `xml:"Option"`
}

type optionElement struct {
	Type    string          `xml:"type,attr"`
	Name    string          `xml:"name,attr,omitempty"`
	Value   string          `xml:"value,attr,omitempty"`
	Options []optionElement `xml:"Option"`
}

// Save writes the renderer as a style document: fields, classification
// method, class ranges, cached symbols, observed pairs and colour ramp.
func (r *Renderer) Save(w io.Writer) error {
	doc := styleDocument{
		Type:   RendererType,
		Method: saveMethod(r.method),
		Field1: nameElement{Name: r.field1},
		Field2: nameElement{Name: r.field2},
		Ranges1: saveRanges(r.classes1),
		Ranges2: saveRanges(r.classes2),
		ExistingLabels: &valueElement{
			Value: strings.Join(r.ExistingLabels(), "|"),
		},
		Ramp: saveRamp(r.ramp),
	}
	for _, key := range slices.Sorted(maps.Keys(r.cache)) {
		doc.Symbols = append(doc.Symbols, symbolElement{
			Color: r.cache[key].Color.Name(),
			Label: key,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("save style: %w", err)
	}
	return enc.Close()
}

func saveMethod(m ClassificationMethod) *methodElement {
	lf := m.LabelFormat()
	return &methodElement{
		ID: m.ID(),
		LabelFormat: labelFormatElement{
			Format:             lf.Format,
			Precision:          strconv.Itoa(lf.Precision),
			TrimTrailingZeroes: boolAttr(lf.TrimTrailingZeroes),
		},
	}
}

func saveRanges(classes []ClassRange) []rangeElement {
	out := make([]rangeElement, len(classes))
	for i, c := range classes {
		out[i] = rangeElement{
			Lower: formatFloat(c.Lower),
			Upper: formatFloat(c.Upper),
			Label: c.Label,
		}
	}
	return out
}

func saveRamp(ramp ColorRamp) *bivariateRampEntry {
	e := &bivariateRampEntry{
		Type:            string(ramp.Type()),
		Name:            ramp.Name(),
		NumberOfClasses: strconv.Itoa(ramp.NumberOfClasses()),
	}
	switch ramp := ramp.(type) {
	case *GradientRamp:
		e.MixingMethod = ramp.Mixing().Name()
		e.ColorRamps = []colorRampElement{
			saveGradient("color_ramp_1", ramp.Ramp1()),
			saveGradient("color_ramp_2", ramp.Ramp2()),
		}
	case *ManualRamp:
		for _, row := range ramp.Colors() {
			for _, c := range row {
				e.Colors = append(e.Colors, valueElement{Value: c.Name()})
			}
		}
	}
	return e
}

func saveGradient(name string, g Gradient) colorRampElement {
	props := g.Properties()
	opts := make([]optionElement, 0, len(props))
	for _, k := range slices.Sorted(maps.Keys(props)) {
		opts = append(opts, optionElement{Type: "QString", Name: k, Value: props[k]})
	}
	return colorRampElement{
		Name:    name,
		Type:    "gradient",
		Options: optionElement{Type: "Map", Options: opts},
	}
}

// Load reads a renderer from a style document written by Save. Names are
// resolved through reg; nil means NewRegistry.
//
// A missing or empty existing_labels attribute loads as no observed pairs.
// An unknown classification method, mixing method or ramp type is logged and
// the default kept. Malformed numbers, colours and colour tables are errors
// wrapping ErrConfig.
func Load(rd io.Reader, reg *Registry) (*Renderer, error) {
	var doc styleDocument
	if err := xml.NewDecoder(rd).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode style: %v", ErrConfig, err)
	}
	if doc.Type != RendererType {
		return nil, fmt.Errorf("%w: renderer type %q, want %q", ErrConfig, doc.Type, RendererType)
	}

	r := NewRenderer(WithRegistry(reg), WithFields(doc.Field1.Name, doc.Field2.Name))
	log := Logger()

	if doc.Method != nil {
		if m, ok := r.registry.Classifications.ByID(doc.Method.ID); ok {
			lf, err := loadLabelFormat(doc.Method.LabelFormat, m.LabelFormat())
			if err != nil {
				return nil, err
			}
			m.SetLabelFormat(lf)
			r.method = m
		} else {
			log.Warn("bivariate: unknown classification method, keeping default",
				"id", doc.Method.ID, "default", r.method.ID())
		}
	}

	var err error
	if r.classes1, err = loadRanges(doc.Ranges1); err != nil {
		return nil, err
	}
	if r.classes2, err = loadRanges(doc.Ranges2); err != nil {
		return nil, err
	}

	if doc.Ramp != nil {
		ramp, err := loadRamp(doc.Ramp, r.registry)
		if err != nil {
			return nil, err
		}
		if ramp != nil {
			r.ramp = ramp
		}
	}
	if err := checkClasses(r.ramp, r.classes1, r.classes2); err != nil {
		return nil, err
	}

	for _, s := range doc.Symbols {
		c, err := ParseColor(s.Color)
		if err != nil {
			return nil, fmt.Errorf("symbol %q: %w", s.Label, err)
		}
		r.cache[s.Label] = DefaultFillSymbol().WithColor(c)
	}

	if doc.ExistingLabels != nil && doc.ExistingLabels.Value != "" {
		for _, key := range strings.Split(doc.ExistingLabels.Value, "|") {
			r.existing[key] = struct{}{}
		}
	}

	log.Debug("bivariate: loaded style", "renderer", r.String())
	return r, nil
}

func loadLabelFormat(e labelFormatElement, def LabelFormat) (LabelFormat, error) {
	lf := def
	if e.Format != "" {
		lf.Format = e.Format
	}
	if e.Precision != "" {
		p, err := strconv.Atoi(e.Precision)
		if err != nil {
			return LabelFormat{}, fmt.Errorf("%w: label precision %q", ErrConfig, e.Precision)
		}
		lf.Precision = p
	}
	if e.TrimTrailingZeroes != "" {
		lf.TrimTrailingZeroes = e.TrimTrailingZeroes == "1" || e.TrimTrailingZeroes == "true"
	}
	return lf, nil
}

func loadRanges(elems []rangeElement) ([]ClassRange, error) {
	if len(elems) == 0 {
		return nil, nil
	}
	out := make([]ClassRange, len(elems))
	for i, e := range elems {
		lo, err := strconv.ParseFloat(e.Lower, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: range lower %q", ErrConfig, e.Lower)
		}
		hi, err := strconv.ParseFloat(e.Upper, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: range upper %q", ErrConfig, e.Upper)
		}
		out[i] = ClassRange{Label: e.Label, Lower: lo, Upper: hi}
	}
	return out, nil
}

// maxManualClasses bounds the table size read from a style document.
const maxManualClasses = 256

// loadRamp returns nil, nil for an unknown ramp type.
func loadRamp(e *bivariateRampEntry, reg *Registry) (ColorRamp, error) {
	n, err := strconv.Atoi(e.NumberOfClasses)
	if err != nil {
		return nil, fmt.Errorf("%w: number_of_classes %q", ErrConfig, e.NumberOfClasses)
	}

	switch RampType(e.Type) {
	case RampGradient:
		return loadGradientRamp(e, n, reg)
	case RampManual:
		if n < 2 || n > maxManualClasses {
			return nil, fmt.Errorf("%w: manual ramp number_of_classes %d out of range [2, %d]",
				ErrConfig, n, maxManualClasses)
		}
		if len(e.Colors) != n*n {
			return nil, fmt.Errorf("%w: manual ramp has %d colours, want %d", ErrConfig, len(e.Colors), n*n)
		}
		table := make([][]Color, n)
		for i := range table {
			table[i] = make([]Color, n)
			for j := range table[i] {
				c, err := ParseColor(e.Colors[i*n+j].Value)
				if err != nil {
					return nil, err
				}
				table[i][j] = c
			}
		}
		ramp, err := NewManualRamp(table)
		if err != nil {
			return nil, err
		}
		if e.Name != "" {
			ramp.SetName(e.Name)
		}
		return ramp, nil
	default:
		Logger().Warn("bivariate: unknown colour ramp type, keeping default", "type", e.Type)
		return nil, nil
	}
}

func loadGradientRamp(e *bivariateRampEntry, n int, reg *Registry) (ColorRamp, error) {
	def := reg.DefaultRamp().(*GradientRamp)

	mixing := def.Mixing()
	if e.MixingMethod != "" {
		if m, ok := reg.Mixing.ByName(e.MixingMethod); ok {
			mixing = m
		} else {
			Logger().Warn("bivariate: unknown mixing method, keeping default",
				"name", e.MixingMethod, "default", mixing.Name())
		}
	}

	ramps := [2]Gradient{def.Ramp1(), def.Ramp2()}
	for k, cr := range e.ColorRamps {
		if k >= len(ramps) {
			break
		}
		props := make(map[string]string, len(cr.Options.Options))
		for _, o := range cr.Options.Options {
			props[o.Name] = o.Value
		}
		g, err := gradientFromProperties(props)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cr.Name, err)
		}
		ramps[k] = g
	}

	name := def.Name()
	if e.Name != "" {
		name = e.Name
	}
	return NewGradientRamp(name, ramps[0], ramps[1], mixing, n)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func boolAttr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
